package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zattar/dashboard_end/models"
	"github.com/zattar/dashboard_end/repository"
	"github.com/zattar/dashboard_end/utils"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// HTTP methods worth auditing.
var loggedMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
	http.MethodPatch:  true,
}

// Paths excluded from the audit trail.
var excludedPaths = map[string]bool{
	"/api/health":     true,
	"/api/db-status":  true,
	"/api/auth/login": true,
}

// sensitive request fields never persisted
var sensitiveFields = []string{"password", "senha", "token"}

// OperationLoggerMiddleware records mutating requests to the operation_logs
// collection with the operator identity from the token.
func OperationLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !shouldLogOperation(c) {
			c.Next()
			return
		}

		startTime := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		var requestBody interface{}
		if c.Request.Body != nil {
			requestBodyBytes, err := io.ReadAll(c.Request.Body)
			if err == nil {
				c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBodyBytes))

				if strings.Contains(c.Request.Header.Get("Content-Type"), "application/json") {
					if err := json.Unmarshal(requestBodyBytes, &requestBody); err != nil {
						requestBody = string(requestBodyBytes)
					}
				}
				// multipart bodies are not captured, only their metadata
			}
		}

		c.Next()

		responseTime := time.Since(startTime).Milliseconds()
		operatorID, operatorName, operatorRole := extractOperator(c)

		var errorMessage string
		if len(c.Errors) > 0 {
			errorMessage = c.Errors.String()
		}

		operationLog := models.OperationLog{
			Method:        method,
			Path:          path,
			OperatorID:    operatorID,
			OperatorName:  operatorName,
			OperatorRole:  operatorRole,
			RequestBody:   sanitizeBody(requestBody),
			StatusCode:    c.Writer.Status(),
			Success:       c.Writer.Status() < http.StatusBadRequest,
			ErrorMessage:  errorMessage,
			OperationTime: startTime,
			ResponseTime:  responseTime,
			IPAddress:     c.ClientIP(),
			UserAgent:     c.Request.UserAgent(),
		}

		if err := saveOperationLog(&operationLog); err != nil {
			utils.Logger.Error().Err(err).Msg("failed to save operation log")
		}
	}
}

// shouldLogOperation filters out reads and excluded paths.
func shouldLogOperation(c *gin.Context) bool {
	if excludedPaths[c.Request.URL.Path] {
		return false
	}
	return loggedMethods[c.Request.Method]
}

// extractOperator reads the operator identity from the token claims.
func extractOperator(c *gin.Context) (string, string, string) {
	operatorID := "anonymous"
	operatorName := "anonymous"
	operatorRole := "UNKNOWN"

	if userClaims, exists := c.Get("user"); exists {
		if claims, ok := userClaims.(jwt.MapClaims); ok {
			if id, ok := claims["id"].(string); ok {
				operatorID = id
			}
			if name, ok := claims["name"].(string); ok {
				operatorName = name
			}
			if role, ok := claims["role"].(string); ok {
				operatorRole = role
			}
		}
	}

	return operatorID, operatorName, operatorRole
}

// sanitizeBody strips credential fields from a captured request body.
func sanitizeBody(body interface{}) interface{} {
	asMap, ok := body.(map[string]interface{})
	if !ok {
		return body
	}

	sanitized := make(map[string]interface{}, len(asMap))
	for k, v := range asMap {
		sanitized[k] = v
	}
	for _, field := range sensitiveFields {
		if _, exists := sanitized[field]; exists {
			sanitized[field] = "******"
		}
	}

	return sanitized
}

// saveOperationLog persists the log entry with a short timeout.
func saveOperationLog(operationLog *models.OperationLog) error {
	saveCtx, cancel := context.WithTimeout(repository.GetContext(), 5*time.Second)
	defer cancel()

	collection := repository.Collection(repository.OperationLogsCollection)
	_, err := collection.InsertOne(saveCtx, operationLog)
	return err
}
