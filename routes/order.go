package routes

import (
	"github.com/gin-gonic/gin"

	ordercontroller "github.com/saqibam92/BlashBerry-nextjs/controllers/order"
	"github.com/saqibam92/BlashBerry-nextjs/middleware"
)

func SetupOrderRoutes(api *gin.RouterGroup, d Deps) {
	svc := d.Services.Orders
	requireAuth := middleware.RequireAuth(d.Auth)

	orders := api.Group("/orders")
	{
		// guest or signed-in checkout
		orders.POST("", middleware.OptionalAuth(d.Auth), ordercontroller.PlaceOrderHandler(svc))

		orders.GET("/my-orders", requireAuth, ordercontroller.GetMyOrdersHandler(svc))
		orders.GET("/:id", requireAuth, ordercontroller.GetOrderHandler(svc))

		// admin
		orders.GET("", requireAuth, middleware.RequireAdmin(), ordercontroller.GetAllOrdersHandler(svc))
		orders.PUT("/:id/status", requireAuth, middleware.RequireAdmin(), ordercontroller.UpdateOrderStatusHandler(svc))
	}
}
