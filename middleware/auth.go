package middleware

import (
	"cafe-menu-api/models"
	"cafe-menu-api/services"

	"github.com/gin-gonic/gin"
)

const userKey = "user"

// AuthRequired verifies the bearer token and stores the resolved user in the context.
// The stored user is nil when the token is valid but its subject no longer exists.
func AuthRequired(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the caller resolved by AuthRequired, or nil.
func CurrentUser(c *gin.Context) *models.User {
	val, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := val.(*models.User)
	return user
}
