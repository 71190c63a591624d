package admincontroller

import (
	"github.com/gin-gonic/gin"

	"github.com/saqibam92/BlashBerry-nextjs/controllers/response"
	"github.com/saqibam92/BlashBerry-nextjs/models"
	"github.com/saqibam92/BlashBerry-nextjs/services"
	"github.com/saqibam92/BlashBerry-nextjs/uploads"
)

const bannerSubdir = "banners"

func GetBanners(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := admin.ListBanners(c.Request.Context())
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

func CreateBanner(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.BannerInput
		if err := c.ShouldBindJSON(&in); err != nil {
			response.Error(c, response.BindError(err))
			return
		}
		b, err := admin.CreateBanner(c.Request.Context(), in)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Created(c, b)
	}
}

func UpdateBanner(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := response.IDParam(c, "id")
		if !ok {
			return
		}
		var in services.BannerInput
		if err := c.ShouldBindJSON(&in); err != nil {
			response.Error(c, response.BindError(err))
			return
		}
		b, err := admin.UpdateBanner(c.Request.Context(), id, in)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, b)
	}
}

func DeleteBanner(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := response.IDParam(c, "id")
		if !ok {
			return
		}
		if err := admin.DeleteBanner(c.Request.Context(), id); err != nil {
			response.Error(c, err)
			return
		}
		response.Message(c, "Banner deleted successfully")
	}
}

// UploadBanner stores the multipart "image" file and returns its public URL.
// The banner record itself is created separately with that URL.
func UploadBanner(store *uploads.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile("image")
		if err != nil {
			response.Error(c, models.NewValidationError("No image uploaded", models.FieldError{Field: "image", Message: "required"}))
			return
		}
		url, err := store.Save(fh, bannerSubdir)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, gin.H{"imageUrl": url})
	}
}
