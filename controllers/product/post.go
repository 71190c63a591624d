package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saqibam92/BlashBerry-nextjs/controllers/response"
	"github.com/saqibam92/BlashBerry-nextjs/middleware"
	"github.com/saqibam92/BlashBerry-nextjs/models"
	"github.com/saqibam92/BlashBerry-nextjs/services"
)

func CreateProduct(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.ProductInput
		if err := c.ShouldBindJSON(&in); err != nil {
			response.Error(c, response.BindError(err))
			return
		}
		p, err := admin.CreateProduct(c.Request.Context(), in)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Created(c, p)
	}
}

type reviewRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment" binding:"required"`
}

// AddReview posts the caller's review of the product at /products/:slug.
func AddReview(reviews *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := middleware.Identity(c)
		if !ok {
			response.Error(c, models.ErrUnauthorized)
			return
		}
		var req reviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, response.BindError(err))
			return
		}
		if _, err := reviews.AddReview(c.Request.Context(), c.Param("slug"), *id, req.Rating, req.Comment); err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, response.Envelope{Success: true, Message: "Review added"})
	}
}
