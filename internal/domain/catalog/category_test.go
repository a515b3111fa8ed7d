package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("creates category with valid inputs", func(t *testing.T) {
		category, err := NewCategory("Indoor Plants", "Plants that thrive indoors")
		require.NoError(t, err)
		require.NotNil(t, category)

		assert.Equal(t, "Indoor Plants", category.Name)
		assert.Equal(t, "Plants that thrive indoors", category.Description)
		assert.NotEmpty(t, category.ID)

		events := category.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCategoryCreated, events[0].EventType())
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		category, err := NewCategory("  Succulents ", "")
		require.NoError(t, err)
		assert.Equal(t, "Succulents", category.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCategory("   ", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})
}

func TestCategory_Update(t *testing.T) {
	category, err := NewCategory("Cacti", "")
	require.NoError(t, err)
	category.ClearDomainEvents()

	require.NoError(t, category.Update("Cacti & Succulents", "Low-water plants"))
	assert.Equal(t, "Cacti & Succulents", category.Name)
	assert.Equal(t, "Low-water plants", category.Description)
	assert.Equal(t, 2, category.GetVersion())

	events := category.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeCategoryUpdated, events[0].EventType())
}
