package routes

import (
	"github.com/zattar/dashboard_end/repository"
	"github.com/zattar/dashboard_end/utils"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every route group.
func RegisterRoutes(router *gin.Engine) {
	RegisterAuthRoutes(router)
	RegisterUserRoutes(router)
	RegisterLeadRoutes(router)
	RegisterReportRoutes(router)
	RegisterDispatchRoutes(router)

	// health check
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// database status
	router.GET("/api/db-status", func(c *gin.Context) {
		status, err := repository.GetDatabaseStatus()
		if err != nil {
			utils.ErrorResponse(c, "Erro ao obter status do banco: "+err.Error(), 500)
			return
		}
		c.JSON(200, status)
	})
}
