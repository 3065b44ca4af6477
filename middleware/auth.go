package middleware

import (
	"net/http"
	"strings"

	"github.com/zattar/dashboard_end/models"
	"github.com/zattar/dashboard_end/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stores its claims in the
// request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Acesso não autorizado",
				"code":    "MISSING_TOKEN",
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Acesso não autorizado",
				"code":    "MISSING_TOKEN",
			})
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.Logger.Error().Err(err).Msg("token validation failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Token inválido: " + err.Error(),
				"code":    "INVALID_TOKEN",
			})
			return
		}

		if claims["id"] == nil || claims["role"] == nil || claims["email"] == nil {
			utils.Logger.Warn().Interface("claims", claims).Msg("token payload missing required fields")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Token incompleto",
				"code":    "INVALID_TOKEN",
			})
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// AdminOnly refuses any caller whose role is not admin. The authorization
// model is a binary admin flag, nothing finer grained.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := utils.GetUser(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Usuário não autenticado",
				"code":    "UNAUTHENTICATED",
			})
			return
		}

		if !utils.IsAdmin(models.UserRole(user.Role)) {
			utils.Logger.Info().
				Str("email", user.Email).
				Str("role", user.Role).
				Str("path", c.Request.URL.Path).
				Msg("admin access refused")

			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Apenas administradores podem acessar este recurso",
				"code":    "INSUFFICIENT_PERMISSION",
			})
			return
		}

		c.Next()
	}
}
