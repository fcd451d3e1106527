package handlers

import (
	"net/http"

	"cafe-menu-api/apperr"
	"cafe-menu-api/logger"
	"cafe-menu-api/services"
	"cafe-menu-api/static"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// UploadImage stores the multipart "image" field in the upload directory
func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		_ = c.Error(bindError(err, "no file was uploaded"))
		return
	}

	name, err := h.Images.Save(file)
	if err != nil {
		_ = c.Error(err)
		return
	}

	logger.L().Infow("image uploaded", "filename", name, "by", actor(c))
	c.JSON(http.StatusOK, gin.H{
		"message":   "Image uploaded",
		"image_url": services.PublicURL(name),
		"filename":  name,
	})
}

// ServeImage returns a stored image, or the default image when it does not exist
func (h *Handler) ServeImage(c *gin.Context) {
	path, ok := h.Images.Lookup(c.Param("filename"))
	if !ok {
		c.Data(http.StatusOK, static.DefaultImageType, static.DefaultImage)
		return
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		_ = c.Error(apperr.Internal(err, "failed to read image"))
		return
	}
	c.Header("Content-Type", mtype.String())
	c.File(path)
}
