package shopping

import (
	"testing"

	"github.com/google/uuid"
	"github.com/plantstore/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, price int64, inventory int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("Monstera", "", "", decimal.NewFromInt(price), inventory, nil)
	require.NoError(t, err)
	return product
}

func TestCart_AddItem(t *testing.T) {
	t.Run("adds a new line", func(t *testing.T) {
		cart := NewCart()
		product := newTestProduct(t, 100, 5)

		require.NoError(t, cart.AddItem(product, 2))
		require.Len(t, cart.Items, 1)
		assert.Equal(t, product.ID, cart.Items[0].ProductID)
		assert.Equal(t, 2, cart.Items[0].Quantity)
	})

	t.Run("merges quantities for the same product", func(t *testing.T) {
		cart := NewCart()
		product := newTestProduct(t, 100, 5)

		require.NoError(t, cart.AddItem(product, 2))
		require.NoError(t, cart.AddItem(product, 3))
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 5, cart.Items[0].Quantity)
	})

	t.Run("rejects merged quantity beyond inventory", func(t *testing.T) {
		cart := NewCart()
		product := newTestProduct(t, 100, 4)

		require.NoError(t, cart.AddItem(product, 3))
		err := cart.AddItem(product, 2)
		require.Error(t, err)
		assert.Equal(t, 3, cart.Items[0].Quantity)
	})

	t.Run("rejects inactive products", func(t *testing.T) {
		cart := NewCart()
		product := newTestProduct(t, 100, 4)
		product.Deactivate()

		require.Error(t, cart.AddItem(product, 1))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		cart := NewCart()
		require.Error(t, cart.AddItem(newTestProduct(t, 100, 4), 0))
	})
}

func TestCart_UpdateAndRemove(t *testing.T) {
	cart := NewCart()
	product := newTestProduct(t, 100, 5)
	require.NoError(t, cart.AddItem(product, 2))
	itemID := cart.Items[0].ID

	require.NoError(t, cart.UpdateItem(itemID, product, 4))
	assert.Equal(t, 4, cart.Items[0].Quantity)

	require.Error(t, cart.UpdateItem(itemID, product, 6), "quantity beyond inventory")
	require.Error(t, cart.UpdateItem(uuid.New(), product, 1), "unknown item")

	require.NoError(t, cart.RemoveItem(itemID))
	assert.True(t, cart.IsEmpty())
	require.Error(t, cart.RemoveItem(itemID))
}

func TestCart_Total(t *testing.T) {
	cart := NewCart()
	fern := newTestProduct(t, 150, 10)
	palm := newTestProduct(t, 400, 10)

	require.NoError(t, cart.AddItem(fern, 2))
	require.NoError(t, cart.AddItem(palm, 1))

	// Products are loaded on the lines in tests by hand, as the
	// repository would after a fetch.
	cart.Items[0].Product = fern
	cart.Items[1].Product = palm

	assert.True(t, cart.Total().Equal(decimal.NewFromInt(700)))
}
