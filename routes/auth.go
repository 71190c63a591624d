package routes

import (
	"github.com/gin-gonic/gin"

	authcontroller "github.com/saqibam92/BlashBerry-nextjs/controllers/auth"
	"github.com/saqibam92/BlashBerry-nextjs/middleware"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, d Deps) {
	svc := d.Services.Auth
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authcontroller.Register(svc))
		authGroup.POST("/login", authcontroller.Login(svc))
		authGroup.POST("/admin/login", authcontroller.AdminLogin(svc))
		authGroup.POST("/google", authcontroller.GoogleLogin(svc))
		authGroup.GET("/me", middleware.RequireAuth(d.Auth), authcontroller.Me(svc))
	}
}
