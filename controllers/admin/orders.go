package admincontroller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/saqibam92/BlashBerry-nextjs/controllers/response"
	"github.com/saqibam92/BlashBerry-nextjs/models"
	"github.com/saqibam92/BlashBerry-nextjs/services"
)

// GetOrders backs the back-office order table. Query: status, page, limit
func GetOrders(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var f models.OrderFilter
		if raw := c.Query("status"); raw != "" {
			status, err := models.ParseOrderStatus(raw)
			if err != nil {
				response.Error(c, err)
				return
			}
			f.Status = status
		}
		f.Page, _ = strconv.Atoi(c.Query("page"))
		f.Limit, _ = strconv.Atoi(c.Query("limit"))

		list, p, err := admin.ListOrders(c.Request.Context(), f)
		if err != nil {
			response.Error(c, err)
			return
		}
		if list == nil {
			list = []models.Order{}
		}
		response.Paginated(c, list, p)
	}
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func UpdateOrderStatus(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := response.IDParam(c, "id")
		if !ok {
			return
		}
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, response.BindError(err))
			return
		}
		order, err := admin.UpdateOrderStatus(c.Request.Context(), id, req.Status)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, order)
	}
}
