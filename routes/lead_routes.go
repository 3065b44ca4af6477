package routes

import (
	"github.com/zattar/dashboard_end/controllers"
	"github.com/zattar/dashboard_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterLeadRoutes wires the lead listing routes.
func RegisterLeadRoutes(router *gin.Engine) {
	leads := router.Group("/api/leads")
	leads.Use(middleware.AuthMiddleware())

	leads.GET("", controllers.GetLeads)
	leads.GET("/campaigns", controllers.GetCampaignNames)
}
