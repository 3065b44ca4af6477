package middleware

import (
	"github.com/zattar/dashboard_end/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached to the context into responses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// a handler already wrote an error response
		if c.Writer.Status() >= 400 {
			return
		}

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			utils.HandleError(c, err.Err)
			return
		}
	}
}
