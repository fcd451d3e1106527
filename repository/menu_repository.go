package repository

import (
	"strings"

	"cafe-menu-api/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// MenuFilter narrows List. Empty fields do not filter.
type MenuFilter struct {
	Category string
	Search   string
}

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

// List returns matching items, newest first.
func (r *MenuRepository) List(f MenuFilter) ([]models.MenuItem, error) {
	query := r.DB.Model(&models.MenuItem{})
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
		query = query.Where(`search_text LIKE ? ESCAPE '\'`, pattern)
	}

	items := []models.MenuItem{}
	err := query.Order("created_at DESC").Order("id DESC").Find(&items).Error
	return items, err
}

// FindByID returns (nil, nil) when the item does not exist.
func (r *MenuRepository) FindByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.DB.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *MenuRepository) Create(item *models.MenuItem) error {
	item.SearchText = item.FoldedSearchText()
	return r.DB.Create(item).Error
}

// Save writes every column and refreshes updated_at. It reports
// gorm.ErrRecordNotFound when the row disappeared in the meantime.
func (r *MenuRepository) Save(item *models.MenuItem) error {
	item.SearchText = item.FoldedSearchText()
	res := r.DB.Model(item).Select("*").Updates(item)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *MenuRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&models.MenuItem{}, id).Error
	})
}

// BackfillSearchText fills search_text for rows written before the column existed.
func (r *MenuRepository) BackfillSearchText() error {
	var items []models.MenuItem
	if err := r.DB.Where("search_text = '' OR search_text IS NULL").Find(&items).Error; err != nil {
		return err
	}
	for i := range items {
		err := r.DB.Model(&items[i]).UpdateColumn("search_text", items[i].FoldedSearchText()).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
