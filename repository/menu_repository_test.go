package repository

import (
	"testing"

	"cafe-menu-api/models"
	"cafe-menu-api/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"latte", "latte"},
		{"100%", `100\%`},
		{"flat_white", `flat\_white`},
		{`a\b`, `a\\b`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeLike(tt.in), tt.in)
	}
}

func TestBackfillSearchText(t *testing.T) {
	repo := NewMenuRepository(testdb.New(t))
	item := &models.MenuItem{Name: "Crème Brûlée", Category: "dessert", Price: 200, Status: models.StatusAvailable}
	require.NoError(t, repo.Create(item))
	require.NoError(t, repo.DB.Model(item).UpdateColumn("search_text", "").Error)

	found, err := repo.List(MenuFilter{Search: "BRÛLÉE"})
	require.NoError(t, err)
	assert.Empty(t, found)

	require.NoError(t, repo.BackfillSearchText())

	found, err = repo.List(MenuFilter{Search: "BRÛLÉE"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, item.ID, found[0].ID)
}
