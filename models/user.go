package models

import (
	"time"
)

// User is the administrative account. It is seeded at startup and never changed through the API.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:80;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:200;not null"`
	CreatedAt    time.Time `json:"created_at"`
}
