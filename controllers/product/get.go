package productcontroller

import (
	"github.com/gin-gonic/gin"

	"github.com/saqibam92/BlashBerry-nextjs/controllers/response"
	"github.com/saqibam92/BlashBerry-nextjs/services"
)

// GetProductBySlug returns one active product with its category.
// URL param: /products/:slug
func GetProductBySlug(catalog *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := catalog.GetProductBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, p)
	}
}

func GetSimilarProducts(catalog *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := catalog.SimilarProducts(c.Request.Context(), c.Param("slug"))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, nonNil(list))
	}
}

// AdminGetProduct loads any product by id for the edit form.
func AdminGetProduct(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := response.IDParam(c, "id")
		if !ok {
			return
		}
		p, err := admin.GetProduct(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, p)
	}
}
