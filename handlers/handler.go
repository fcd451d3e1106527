package handlers

import (
	"cafe-menu-api/apperr"
	"cafe-menu-api/middleware"
	"cafe-menu-api/services"

	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

// Handler holds the services the HTTP endpoints delegate to.
type Handler struct {
	Auth   *services.AuthService
	Menu   *services.MenuService
	Images *services.ImageService
}

func New(auth *services.AuthService, menu *services.MenuService, images *services.ImageService) *Handler {
	return &Handler{Auth: auth, Menu: menu, Images: images}
}

func bindError(err error, msg string) error {
	if middleware.IsBodyTooLarge(err) {
		return apperr.TooLarge("request body too large")
	}
	return apperr.BadRequest(msg)
}

// actor names the authenticated caller for audit logs.
func actor(c *gin.Context) string {
	if user := middleware.CurrentUser(c); user != nil {
		return user.Username
	}
	return "<deleted user>"
}
