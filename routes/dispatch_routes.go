package routes

import (
	"github.com/zattar/dashboard_end/controllers"
	"github.com/zattar/dashboard_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterDispatchRoutes wires the outbound campaign dispatch route.
func RegisterDispatchRoutes(router *gin.Engine) {
	dispatch := router.Group("/api/dispatch")
	dispatch.Use(middleware.AuthMiddleware())

	dispatch.POST("", controllers.PostDispatch)
}
