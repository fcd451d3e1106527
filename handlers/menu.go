package handlers

import (
	"net/http"
	"strconv"

	"cafe-menu-api/apperr"
	"cafe-menu-api/logger"
	"cafe-menu-api/models"
	"cafe-menu-api/repository"
	"cafe-menu-api/services"

	"github.com/gin-gonic/gin"
)

func menuItemJSON(item *models.MenuItem) gin.H {
	return gin.H{
		"id":          item.ID,
		"name":        item.Name,
		"description": item.Description,
		"category":    item.Category,
		"price":       item.Price,
		"discount":    item.Discount,
		"status":      item.Status,
		"badge":       item.Badge,
		"image":       item.Image(),
		"created_at":  item.CreatedAt,
		"updated_at":  item.UpdatedAt,
	}
}

func itemID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.NotFound("menu item not found")
	}
	return uint(id), nil
}

func bindFields(c *gin.Context) (services.MenuItemFields, error) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil || body == nil {
		return services.MenuItemFields{}, bindError(err, "request body must be a JSON object")
	}
	return services.ParseMenuItemFields(body)
}

// ListMenuItems returns the catalog, optionally filtered by category and search term
func (h *Handler) ListMenuItems(c *gin.Context) {
	items, err := h.Menu.List(repository.MenuFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	result := make([]gin.H, 0, len(items))
	for i := range items {
		result = append(result, menuItemJSON(&items[i]))
	}
	c.JSON(http.StatusOK, result)
}

// GetMenuItem returns a single item
func (h *Handler) GetMenuItem(c *gin.Context) {
	id, err := itemID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	item, err := h.Menu.Get(id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, menuItemJSON(item))
}

// CreateMenuItem adds an item to the catalog
func (h *Handler) CreateMenuItem(c *gin.Context) {
	fields, err := bindFields(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	item, err := h.Menu.Create(fields)
	if err != nil {
		_ = c.Error(err)
		return
	}
	logger.L().Infow("menu item created", "id", item.ID, "by", actor(c))
	c.JSON(http.StatusCreated, gin.H{
		"message": "Menu item created",
		"item": gin.H{
			"id":         item.ID,
			"name":       item.Name,
			"category":   item.Category,
			"price":      item.Price,
			"created_at": item.CreatedAt,
		},
	})
}

// UpdateMenuItem applies a partial update
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	id, err := itemID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	fields, err := bindFields(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	item, err := h.Menu.Update(id, fields)
	if err != nil {
		_ = c.Error(err)
		return
	}
	logger.L().Infow("menu item updated", "id", item.ID, "by", actor(c))
	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item updated",
		"item": gin.H{
			"id":         item.ID,
			"name":       item.Name,
			"updated_at": item.UpdatedAt,
		},
	})
}

// DeleteMenuItem removes an item and its uploaded image
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	id, err := itemID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.Menu.Delete(id); err != nil {
		_ = c.Error(err)
		return
	}
	logger.L().Infow("menu item deleted", "id", id, "by", actor(c))
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}
