package middleware

import (
	"cafe-menu-api/apperr"
	"cafe-menu-api/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler turns the last error attached with c.Error into the JSON envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := apperr.StatusCode(err)
		if status >= 500 {
			logger.L().Errorw("request failed", "path", c.Request.URL.Path, "error", err)
		}
		c.JSON(status, gin.H{"error": apperr.PublicMessage(err)})
	}
}

// Recovery answers panics with the generic 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.L().Errorw("panic recovered", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(500, gin.H{"error": "internal server error"})
	})
}

// NotFound is installed as the NoRoute handler.
func NotFound(c *gin.Context) {
	_ = c.Error(apperr.NotFound("resource not found"))
}
