package middleware

import (
	"net/http"

	"cafe-menu-api/apperr"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// MaxBodySize rejects requests whose body exceeds limit bytes.
func MaxBodySize(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			_ = c.Error(apperr.TooLarge("request body too large"))
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// IsBodyTooLarge reports whether err came from reading past the MaxBodySize limit.
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
