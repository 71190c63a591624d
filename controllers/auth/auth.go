package authcontroller

import (
	"github.com/gin-gonic/gin"

	"github.com/saqibam92/BlashBerry-nextjs/controllers/response"
	"github.com/saqibam92/BlashBerry-nextjs/middleware"
	"github.com/saqibam92/BlashBerry-nextjs/models"
	"github.com/saqibam92/BlashBerry-nextjs/services"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type googleRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

func Register(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, response.BindError(err))
			return
		}
		sess, err := svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Created(c, sess)
	}
}

func Login(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, response.BindError(err))
			return
		}
		sess, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, sess)
	}
}

func AdminLogin(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, response.BindError(err))
			return
		}
		sess, err := svc.AdminLogin(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, sess)
	}
}

// GoogleLogin exchanges a Firebase ID token for a storefront session.
func GoogleLogin(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req googleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, response.BindError(err))
			return
		}
		sess, err := svc.GoogleLogin(c.Request.Context(), req.IDToken)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, sess)
	}
}

func Me(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := middleware.Identity(c)
		if !ok {
			response.Error(c, models.ErrUnauthorized)
			return
		}
		u, err := svc.Me(c.Request.Context(), id.UserID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, u)
	}
}
