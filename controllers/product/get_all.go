package productcontroller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/saqibam92/BlashBerry-nextjs/controllers/response"
	"github.com/saqibam92/BlashBerry-nextjs/models"
	"github.com/saqibam92/BlashBerry-nextjs/services"
)

// GetProducts lists active products.
// Query: category (comma-joined ids), size, minPrice, maxPrice, rating, sort, page, limit, search
func GetProducts(catalog *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.Query("page"))
		limit, _ := strconv.Atoi(c.Query("limit"))
		list, p, err := catalog.ListProducts(c.Request.Context(), services.ProductQuery{
			Category: c.Query("category"),
			Size:     c.Query("size"),
			MinPrice: c.Query("minPrice"),
			MaxPrice: c.Query("maxPrice"),
			Rating:   c.Query("rating"),
			Sort:     c.Query("sort"),
			Search:   c.Query("search"),
			Page:     page,
			Limit:    limit,
		})
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Paginated(c, nonNil(list), p)
	}
}

func SearchProducts(catalog *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := catalog.SearchProducts(c.Request.Context(), c.Query("term"))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, nonNil(list))
	}
}

func FeaturedProducts(catalog *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := catalog.FeaturedProducts(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, nonNil(list))
	}
}

func GetActiveBanners(catalog *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := catalog.ActiveBanners(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		if list == nil {
			list = []models.Banner{}
		}
		response.OK(c, list)
	}
}

// AdminGetProducts lists every product, inactive ones included.
// Query: category (single id), search
func AdminGetProducts(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := admin.ListProducts(c.Request.Context(), services.AdminProductQuery{
			CategoryID: c.Query("category"),
			Search:     c.Query("search"),
		})
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, nonNil(list))
	}
}

func nonNil(list []models.Product) []models.Product {
	if list == nil {
		return []models.Product{}
	}
	return list
}
