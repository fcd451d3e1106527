package config

import (
	"path/filepath"
	"testing"

	"cafe-menu-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedAdminIsIdempotent(t *testing.T) {
	db, err := OpenDB(&Config{DatabaseURL: filepath.Join(t.TempDir(), "seed.db")}, nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	require.NoError(t, SeedAdmin(db, "admin", "1025"))
	require.NoError(t, SeedAdmin(db, "admin", "other"))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].PasswordHash), []byte("1025")))
}

func TestSeedAdminRejectsEmptyCredentials(t *testing.T) {
	db, err := OpenDB(&Config{DatabaseURL: filepath.Join(t.TempDir(), "seed.db")}, nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	assert.Error(t, SeedAdmin(db, "admin", ""))
}
