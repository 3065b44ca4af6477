package routes

import (
	"github.com/zattar/dashboard_end/controllers"
	"github.com/zattar/dashboard_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes wires the user management routes (admin only).
func RegisterUserRoutes(router *gin.Engine) {
	users := router.Group("/api/users")
	users.Use(middleware.AuthMiddleware())
	users.Use(middleware.AdminOnly())

	users.GET("", controllers.GetAllUsers)
	users.POST("", controllers.CreateUser)
	users.PUT("/:id", controllers.UpdateUser)
	users.DELETE("/:id", controllers.DeleteUser)
}
