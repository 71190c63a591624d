package routes

import (
	"github.com/gin-gonic/gin"

	admincontroller "github.com/saqibam92/BlashBerry-nextjs/controllers/admin"
	productcontroller "github.com/saqibam92/BlashBerry-nextjs/controllers/product"
	usercontroller "github.com/saqibam92/BlashBerry-nextjs/controllers/user"
	"github.com/saqibam92/BlashBerry-nextjs/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires an admin token.
func SetupAdminRoutes(api *gin.RouterGroup, d Deps) {
	admin := d.Services.Admin
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RequireAuth(d.Auth), middleware.RequireAdmin())
	{
		adminGroup.GET("/stats", admincontroller.GetDashboardStats(admin))

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.GET("", productcontroller.GetAllCategories(admin))
			categoryAdmin.POST("", productcontroller.CreateCategory(admin))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(admin))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(admin))
		}

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.GET("", productcontroller.AdminGetProducts(admin))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(d.Services.Spreadsheet))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(d.Services.Spreadsheet))
			productAdmin.GET("/:id", productcontroller.AdminGetProduct(admin))
			productAdmin.POST("", productcontroller.CreateProduct(admin))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(admin))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(admin))
		}

		// ─────────── User Management ───────────
		userAdmin := adminGroup.Group("/users")
		{
			userAdmin.GET("", usercontroller.GetAllUsers(admin))
			userAdmin.POST("", usercontroller.CreateUser(admin))
			userAdmin.PUT("/:id", usercontroller.UpdateUser(admin))
			userAdmin.DELETE("/:id", usercontroller.DeleteUser(admin))
		}

		// ─────────── Orders ───────────
		adminGroup.GET("/orders", admincontroller.GetOrders(admin))
		adminGroup.PUT("/orders/:id/status", admincontroller.UpdateOrderStatus(admin))

		// ─────────── Banners ───────────
		bannerAdmin := adminGroup.Group("/banners")
		{
			bannerAdmin.GET("", admincontroller.GetBanners(admin))
			bannerAdmin.POST("", admincontroller.CreateBanner(admin))
			bannerAdmin.PUT("/:id", admincontroller.UpdateBanner(admin))
			bannerAdmin.DELETE("/:id", admincontroller.DeleteBanner(admin))
		}
		adminGroup.POST("/upload/banner", admincontroller.UploadBanner(d.Uploads))
	}
}
