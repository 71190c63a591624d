package productcontroller

import (
	"github.com/gin-gonic/gin"

	"github.com/saqibam92/BlashBerry-nextjs/controllers/response"
	"github.com/saqibam92/BlashBerry-nextjs/services"
)

// UpdateProduct applies a partial update; omitted fields keep their value.
func UpdateProduct(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := response.IDParam(c, "id")
		if !ok {
			return
		}
		var in services.ProductInput
		if err := c.ShouldBindJSON(&in); err != nil {
			response.Error(c, response.BindError(err))
			return
		}
		p, err := admin.UpdateProduct(c.Request.Context(), id, in)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, p)
	}
}
