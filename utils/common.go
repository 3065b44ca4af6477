package utils

import (
	"fmt"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// LoginUser is the identity extracted from a validated token.
type LoginUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// GetUser reads the authenticated user from the gin context. The auth
// middleware stores the token claims under "user".
func GetUser(c *gin.Context) (*LoginUser, error) {
	currentUser, exists := c.Get("user")
	if !exists {
		return nil, fmt.Errorf("unauthenticated request")
	}

	claims, ok := currentUser.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", currentUser)
	}

	id, ok := claims["id"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid user id in claims")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid role in claims")
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)

	return &LoginUser{
		ID:    id,
		Email: email,
		Name:  name,
		Role:  role,
	}, nil
}
