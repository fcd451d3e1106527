package config

import (
	"cafe-menu-api/models"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB connects using the driver selected by DATABASE_URL.
// A nil gormCfg gets the default warn-level logger.
func OpenDB(cfg *Config, gormCfg *gorm.Config) (*gorm.DB, error) {
	if gormCfg == nil {
		gormCfg = &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	}

	var dialector gorm.Dialector
	switch dialect, dsn := cfg.Dialect(); dialect {
	case DialectPostgres:
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.MenuItem{}); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}
	return nil
}
