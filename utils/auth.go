package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/zattar/dashboard_end/config"
	"github.com/zattar/dashboard_end/models"

	"github.com/dgrijalva/jwt-go"
)

var jwtSecret = []byte(config.LoadConfig().JWTKey)

// HashPassword hashes a password with sha256.
func HashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return hex.EncodeToString(hash[:])
}

// VerifyPassword checks the presented password against the stored value.
// The legacy user table stored plaintext, so a direct comparison is kept as a
// fallback behind the hashed check.
func VerifyPassword(password string, storedPassword string) bool {
	hashed := HashPassword(password)
	if subtle.ConstantTimeCompare([]byte(hashed), []byte(storedPassword)) == 1 {
		return true
	}

	// legacy plaintext rows
	return subtle.ConstantTimeCompare([]byte(password), []byte(storedPassword)) == 1
}

// GenerateToken issues a signed JWT for the user.
func GenerateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID.Hex(),
		"email": user.Email,
		"name":  user.Name,
		"role":  string(user.Role),
		"exp":   time.Now().Add(time.Hour * 24 * 30).Unix(), // 30 days
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		Logger.Error().Err(err).Msg("failed to sign token")
		return "", err
	}

	return tokenString, nil
}

// ParseToken validates a JWT and returns its claims.
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// IsAdmin reports whether the role grants access to user management. The
// authorization model is binary: admin or not.
func IsAdmin(role models.UserRole) bool {
	return role == models.UserRoleADMIN
}
