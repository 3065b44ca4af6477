package routes

import (
	"github.com/zattar/dashboard_end/controllers"
	"github.com/zattar/dashboard_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterReportRoutes wires the analytics routes.
func RegisterReportRoutes(router *gin.Engine) {
	reports := router.Group("/api/reports")
	reports.Use(middleware.AuthMiddleware())
	reports.GET("", controllers.GetReports)

	campaigns := router.Group("/api/campaigns")
	campaigns.Use(middleware.AuthMiddleware())
	campaigns.GET("/stats", controllers.GetCampaignStats)
}
