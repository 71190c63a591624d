package productcontroller

import (
	"github.com/gin-gonic/gin"

	"github.com/saqibam92/BlashBerry-nextjs/controllers/response"
	"github.com/saqibam92/BlashBerry-nextjs/models"
	"github.com/saqibam92/BlashBerry-nextjs/services"
)

// GetActiveCategories is the storefront category list, by priority.
func GetActiveCategories(catalog *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := catalog.ActiveCategories(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, categories(list))
	}
}

func GetAllCategories(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := admin.ListCategories(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, categories(list))
	}
}

func CreateCategory(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.CategoryInput
		if err := c.ShouldBindJSON(&in); err != nil {
			response.Error(c, response.BindError(err))
			return
		}
		cat, err := admin.CreateCategory(c.Request.Context(), in)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Created(c, cat)
	}
}

func UpdateCategory(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := response.IDParam(c, "id")
		if !ok {
			return
		}
		var in services.CategoryInput
		if err := c.ShouldBindJSON(&in); err != nil {
			response.Error(c, response.BindError(err))
			return
		}
		cat, err := admin.UpdateCategory(c.Request.Context(), id, in)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, cat)
	}
}

// DeleteCategory answers 400 while products still use the category.
func DeleteCategory(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := response.IDParam(c, "id")
		if !ok {
			return
		}
		if err := admin.DeleteCategory(c.Request.Context(), id); err != nil {
			response.Error(c, err)
			return
		}
		response.Message(c, "Category deleted successfully")
	}
}

func categories(list []models.Category) []models.Category {
	if list == nil {
		return []models.Category{}
	}
	return list
}
