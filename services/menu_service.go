package services

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"cafe-menu-api/apperr"
	"cafe-menu-api/logger"
	"cafe-menu-api/models"
	"cafe-menu-api/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// MenuItemFields carries the recognized fields of a create or update body.
// A nil pointer means the field was absent.
type MenuItemFields struct {
	Name        *string
	Description *string
	Category    *string
	Price       *int
	Discount    *int
	Status      *models.MenuStatus
	Badge       *string
	ImageSet    bool
	Image       *string // nil with ImageSet clears the reference
}

// ParseMenuItemFields picks the recognized keys out of a decoded JSON object,
// coercing price and discount to integers.
func ParseMenuItemFields(body map[string]interface{}) (MenuItemFields, error) {
	var f MenuItemFields
	var err error

	if f.Name, err = stringField(body, "name"); err != nil {
		return f, err
	}
	if f.Description, err = stringField(body, "description"); err != nil {
		return f, err
	}
	if f.Category, err = stringField(body, "category"); err != nil {
		return f, err
	}
	if f.Badge, err = stringField(body, "badge"); err != nil {
		return f, err
	}
	if f.Price, err = intField(body, "price"); err != nil {
		return f, err
	}
	if f.Discount, err = intField(body, "discount"); err != nil {
		return f, err
	}

	if v, ok := body["status"]; ok {
		s, isString := v.(string)
		status := models.MenuStatus(s)
		if !isString || !status.Valid() {
			return f, apperr.BadRequest("status must be 'available' or 'unavailable'")
		}
		f.Status = &status
	}

	if v, ok := body["image"]; ok {
		f.ImageSet = true
		switch img := v.(type) {
		case nil:
		case string:
			f.Image = &img
		default:
			return f, apperr.BadRequest("image must be a string")
		}
	}
	return f, nil
}

func stringField(body map[string]interface{}, key string) (*string, error) {
	v, ok := body[key]
	if !ok {
		return nil, nil
	}
	s, isString := v.(string)
	if !isString {
		return nil, apperr.BadRequest(key + " must be a string")
	}
	return &s, nil
}

// intField accepts JSON numbers (fractions truncated), Go integers and numeric strings.
// An explicit null or empty string counts as absent.
func intField(body map[string]interface{}, key string) (*int, error) {
	v, ok := body[key]
	if !ok || v == nil {
		return nil, nil
	}
	bad := apperr.BadRequest(key + " must be an integer")
	var n int64
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || x > math.MaxInt32 || x < math.MinInt32 {
			return nil, bad
		}
		n = int64(x)
	case int:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			f, ferr := x.Float64()
			if ferr != nil {
				return nil, bad
			}
			i = int64(f)
		}
		n = i
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil, nil
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, bad
		}
		n = i
	default:
		return nil, bad
	}
	if n > math.MaxInt32 || n < math.MinInt32 {
		return nil, bad
	}
	i := int(n)
	return &i, nil
}

// MenuService implements the catalog operations.
type MenuService struct {
	repo   *repository.MenuRepository
	images *ImageService
}

func NewMenuService(repo *repository.MenuRepository, images *ImageService) *MenuService {
	return &MenuService{repo: repo, images: images}
}

func (s *MenuService) List(filter repository.MenuFilter) ([]models.MenuItem, error) {
	items, err := s.repo.List(filter)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list menu items")
	}
	return items, nil
}

func (s *MenuService) Get(id uint) (*models.MenuItem, error) {
	item, err := s.repo.FindByID(id)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load menu item")
	}
	if item == nil {
		return nil, apperr.NotFound("menu item not found")
	}
	return item, nil
}

// Create requires name, category and a non-zero price. Everything else gets its default.
func (s *MenuService) Create(f MenuItemFields) (*models.MenuItem, error) {
	if f.Name == nil || *f.Name == "" || f.Category == nil || *f.Category == "" || f.Price == nil || *f.Price == 0 {
		return nil, apperr.BadRequest("name, category and price are required")
	}

	item := &models.MenuItem{
		Name:     *f.Name,
		Category: *f.Category,
		Price:    *f.Price,
		Status:   models.StatusAvailable,
	}
	if f.Description != nil {
		item.Description = *f.Description
	}
	if f.Discount != nil {
		item.Discount = *f.Discount
	}
	if f.Status != nil {
		item.Status = *f.Status
	}
	if f.Badge != nil {
		item.Badge = *f.Badge
	}
	if f.Image != nil && *f.Image != "" {
		item.ImageURL = f.Image
	}

	if err := s.repo.Create(item); err != nil {
		return nil, apperr.Internal(err, "failed to create menu item")
	}
	return item, nil
}

// Update overwrites only the fields present in f. updated_at is refreshed even when f is empty.
func (s *MenuService) Update(id uint, f MenuItemFields) (*models.MenuItem, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if f.Name != nil {
		item.Name = *f.Name
	}
	if f.Description != nil {
		item.Description = *f.Description
	}
	if f.Category != nil {
		item.Category = *f.Category
	}
	if f.Price != nil {
		item.Price = *f.Price
	}
	if f.Discount != nil {
		item.Discount = *f.Discount
	}
	if f.Status != nil {
		item.Status = *f.Status
	}
	if f.Badge != nil {
		item.Badge = *f.Badge
	}
	if f.ImageSet {
		item.ImageURL = f.Image
	}

	if err := s.repo.Save(item); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("menu item not found")
		}
		return nil, apperr.Internal(err, "failed to update menu item")
	}
	return s.Get(id)
}

// Delete removes the item and then, when it points into the upload directory, its image file.
// The file is only touched after the row is gone; failing to remove it is logged, not returned.
func (s *MenuService) Delete(id uint) error {
	item, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(item.ID); err != nil {
		return apperr.Internal(err, "failed to delete menu item")
	}

	if name, ok := item.ManagedImageName(); ok {
		if err := s.images.Remove(name); err != nil {
			logger.L().Warnw("menu item deleted but its image was not removed", "id", item.ID, "image", name, "error", err)
		}
	}
	return nil
}
