package usercontroller

import (
	"github.com/gin-gonic/gin"

	"github.com/saqibam92/BlashBerry-nextjs/controllers/response"
	"github.com/saqibam92/BlashBerry-nextjs/models"
	"github.com/saqibam92/BlashBerry-nextjs/services"
)

func GetAllUsers(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := admin.ListUsers(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		if users == nil {
			users = []models.User{}
		}
		response.OK(c, users)
	}
}

func CreateUser(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.UserInput
		if err := c.ShouldBindJSON(&in); err != nil {
			response.Error(c, response.BindError(err))
			return
		}
		u, err := admin.CreateUser(c.Request.Context(), in)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Created(c, u)
	}
}

func UpdateUser(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := response.IDParam(c, "id")
		if !ok {
			return
		}
		var in services.UserInput
		if err := c.ShouldBindJSON(&in); err != nil {
			response.Error(c, response.BindError(err))
			return
		}
		u, err := admin.UpdateUser(c.Request.Context(), id, in)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, u)
	}
}

func DeleteUser(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := response.IDParam(c, "id")
		if !ok {
			return
		}
		if err := admin.DeleteUser(c.Request.Context(), id); err != nil {
			response.Error(c, err)
			return
		}
		response.Message(c, "User deleted successfully.")
	}
}
