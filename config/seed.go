package config

import (
	"cafe-menu-api/logger"
	"cafe-menu-api/models"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the administrative account if no user with that name exists yet.
func SeedAdmin(db *gorm.DB, username, password string) error {
	if username == "" || password == "" {
		return errors.New("admin username and password must not be empty")
	}

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to look up admin user")
	}
	if count > 0 {
		logger.L().Infow("admin user already exists", "username", username)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "failed to hash admin password")
	}
	user := models.User{Username: username, PasswordHash: string(hash)}
	if err := db.Create(&user).Error; err != nil {
		return errors.Wrap(err, "failed to create admin user")
	}
	logger.L().Infow("seeded admin user", "username", username)
	return nil
}
