package routes

import (
	"github.com/gin-gonic/gin"

	productcontroller "github.com/saqibam92/BlashBerry-nextjs/controllers/product"
	"github.com/saqibam92/BlashBerry-nextjs/middleware"
)

// SetupProductRoutes registers the public catalog: "/products/*" and
// "/category/*".
func SetupProductRoutes(api *gin.RouterGroup, d Deps) {
	catalog := d.Services.Catalog

	products := api.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(catalog))
		products.GET("/search", productcontroller.SearchProducts(catalog)) // ?term=
		products.GET("/featured", productcontroller.FeaturedProducts(catalog))
		products.GET("/banners/active", productcontroller.GetActiveBanners(catalog))
		products.GET("/:slug", productcontroller.GetProductBySlug(catalog))
		products.GET("/:slug/similar", productcontroller.GetSimilarProducts(catalog))
		products.POST("/:slug/reviews", middleware.RequireAuth(d.Auth), productcontroller.AddReview(d.Services.Reviews))
	}

	api.GET("/category/categories", productcontroller.GetActiveCategories(catalog))
}
