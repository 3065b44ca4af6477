package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zattar/dashboard_end/models"
	"github.com/zattar/dashboard_end/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(adminOnly bool) *gin.Engine {
	router := gin.New()
	group := router.Group("/protected")
	group.Use(AuthMiddleware())
	if adminOnly {
		group.Use(AdminOnly())
	}
	group.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func tokenFor(t *testing.T, role models.UserRole) string {
	t.Helper()
	token, err := utils.GenerateToken(models.User{
		ID:    primitive.NewObjectID(),
		Email: "someone@zattar.com.br",
		Name:  "Someone",
		Role:  role,
	})
	require.NoError(t, err)
	return token
}

func doGet(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	w := doGet(protectedRouter(false), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	w := doGet(protectedRouter(false), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	w := doGet(protectedRouter(false), "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	token := tokenFor(t, models.UserRoleUSER)
	w := doGet(protectedRouter(false), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminOnlyRefusesUserRole(t *testing.T) {
	token := tokenFor(t, models.UserRoleUSER)
	w := doGet(protectedRouter(true), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminOnlyAllowsAdmin(t *testing.T) {
	token := tokenFor(t, models.UserRoleADMIN)
	w := doGet(protectedRouter(true), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}
