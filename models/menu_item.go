package models

import (
	"strings"
	"time"
)

// MenuStatus is the availability of a menu item. Any value may follow any other.
type MenuStatus string

const (
	StatusAvailable   MenuStatus = "available"
	StatusUnavailable MenuStatus = "unavailable"
)

func (s MenuStatus) Valid() bool {
	return s == StatusAvailable || s == StatusUnavailable
}

// ImagePathPrefix is the public path under which managed uploads are served.
const ImagePathPrefix = "/api/images/"

type MenuItem struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"size:200;not null"`
	Description string     `json:"description" gorm:"type:text;not null;default:''"`
	Category    string     `json:"category" gorm:"size:50;not null;index"`
	Price       int        `json:"price" gorm:"not null"`     // minor currency unit
	Discount    int        `json:"discount" gorm:"default:0"` // percent
	Status      MenuStatus `json:"status" gorm:"size:20;not null;default:'available'"`
	Badge       string     `json:"badge" gorm:"size:50;default:''"`
	ImageURL    *string    `json:"image_url" gorm:"size:500"`
	SearchText  string     `json:"-" gorm:"type:text;not null;default:''"` // lowercased name and description
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Image returns the stored reference, or the per-category image path when none is set.
func (m *MenuItem) Image() string {
	if m.ImageURL != nil && *m.ImageURL != "" {
		return *m.ImageURL
	}
	return ImagePathPrefix + m.Category
}

// FoldedSearchText is the case-folded text the search filter matches against.
// Folding happens in Go because SQLite's LOWER only handles ASCII.
func (m *MenuItem) FoldedSearchText() string {
	return strings.ToLower(m.Name + "\n" + m.Description)
}

// ManagedImageName returns the upload file name when the image lives in the managed directory.
func (m *MenuItem) ManagedImageName() (string, bool) {
	if m.ImageURL == nil || !strings.HasPrefix(*m.ImageURL, ImagePathPrefix) {
		return "", false
	}
	name := *m.ImageURL
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if name == "" || name == "." || name == ".." {
		return "", false
	}
	return name, true
}
