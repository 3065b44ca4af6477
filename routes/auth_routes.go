package routes

import (
	"github.com/zattar/dashboard_end/controllers"
	"github.com/zattar/dashboard_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes wires the authentication routes.
func RegisterAuthRoutes(router *gin.Engine) {
	auth := router.Group("/api/auth")

	auth.POST("/login", controllers.Login)
	auth.GET("/me", middleware.AuthMiddleware(), controllers.GetCurrentUser)
}
