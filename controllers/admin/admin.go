package admincontroller

import (
	"github.com/gin-gonic/gin"

	"github.com/saqibam92/BlashBerry-nextjs/controllers/response"
	"github.com/saqibam92/BlashBerry-nextjs/services"
)

// GetDashboardStats returns active products, customers, orders and delivered
// sales (minor units).
func GetDashboardStats(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := admin.Stats(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, stats)
	}
}
