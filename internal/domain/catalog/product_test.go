package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		categoryID := uuid.New()
		product, err := NewProduct("Monstera Deliciosa", "", "A split-leaf classic", decimal.NewFromInt(250), 10, &categoryID)
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "Monstera Deliciosa", product.Name)
		assert.Equal(t, "monstera-deliciosa", product.Slug)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(250)))
		assert.Equal(t, 10, product.Inventory)
		assert.True(t, product.IsActive)
		assert.Equal(t, &categoryID, product.CategoryID)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("derives slug from name when empty", func(t *testing.T) {
		product, err := NewProduct("Ficus  Lyrata!", "", "", decimal.NewFromInt(100), 1, nil)
		require.NoError(t, err)
		assert.Equal(t, "ficus-lyrata", product.Slug)
	})

	t.Run("keeps unicode letters in slug", func(t *testing.T) {
		product, err := NewProduct("گل رز", "", "", decimal.NewFromInt(50), 1, nil)
		require.NoError(t, err)
		assert.Equal(t, "گل-رز", product.Slug)
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product, err := NewProduct("Snake Plant", "", "", decimal.NewFromInt(80), 5, nil)
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())

		event, ok := events[0].(*ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, product.ID, event.ProductID)
		assert.Equal(t, product.Slug, event.Slug)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("  ", "", "", decimal.NewFromInt(10), 1, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct("Plant", "", "", decimal.NewFromInt(-1), 1, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})

	t.Run("fails with price above maximum", func(t *testing.T) {
		_, err := NewProduct("Plant", "", "", MaxAmount.Add(decimal.NewFromInt(1)), 1, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "allowed maximum")
	})

	t.Run("fails with inventory above maximum", func(t *testing.T) {
		_, err := NewProduct("Plant", "", "", decimal.NewFromInt(10), MaxInventory+1, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "allowed maximum")
	})
}

func TestProduct_Inventory(t *testing.T) {
	newProduct := func(t *testing.T, stock int) *Product {
		t.Helper()
		product, err := NewProduct("Pothos", "", "", decimal.NewFromInt(40), stock, nil)
		require.NoError(t, err)
		return product
	}

	t.Run("decreases inventory", func(t *testing.T) {
		product := newProduct(t, 10)
		require.NoError(t, product.DecreaseInventory(4))
		assert.Equal(t, 6, product.Inventory)
	})

	t.Run("fails when quantity exceeds stock", func(t *testing.T) {
		product := newProduct(t, 3)
		err := product.DecreaseInventory(4)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Insufficient stock")
		assert.Equal(t, 3, product.Inventory)
	})

	t.Run("restores inventory", func(t *testing.T) {
		product := newProduct(t, 3)
		require.NoError(t, product.RestoreInventory(2))
		assert.Equal(t, 5, product.Inventory)
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		product := newProduct(t, 3)
		require.Error(t, product.DecreaseInventory(0))
		require.Error(t, product.RestoreInventory(-1))
	})

	t.Run("reports stock availability", func(t *testing.T) {
		product := newProduct(t, 2)
		assert.True(t, product.InStock(2))
		assert.False(t, product.InStock(3))
		assert.False(t, product.InStock(0))
	})
}

func TestProduct_ActivateDeactivate(t *testing.T) {
	product, err := NewProduct("Aloe Vera", "", "", decimal.NewFromInt(30), 2, nil)
	require.NoError(t, err)

	product.Deactivate()
	assert.False(t, product.IsActive)

	product.Activate()
	assert.True(t, product.IsActive)
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Monstera Deliciosa", "monstera-deliciosa"},
		{"  Fiddle-Leaf Fig  ", "fiddle-leaf-fig"},
		{"Plant #42 (large)", "plant-42-large"},
		{"گل رز قرمز", "گل-رز-قرمز"},
		{"---", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "slugify %q", tc.in)
	}
}
