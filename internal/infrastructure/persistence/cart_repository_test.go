package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/plantstore/backend/internal/domain/shopping"
)

func TestGormCartRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)

	monstera := mustProduct(t, db, "Monstera Deliciosa", 120, 10, nil)
	aloe := mustProduct(t, db, "Aloe Vera", 45, 20, nil)

	cart := shopping.NewCart()
	require.NoError(t, cart.AddItem(monstera, 2))
	require.NoError(t, cart.AddItem(aloe, 1))
	require.NoError(t, repo.Save(ctx, cart))

	itemID := func(productID uuid.UUID) uuid.UUID {
		for _, item := range cart.Items {
			if item.ProductID == productID {
				return item.ID
			}
		}
		t.Fatalf("no cart item for product %s", productID)
		return uuid.Nil
	}

	t.Run("reloads items with products", func(t *testing.T) {
		found, err := repo.FindByID(ctx, cart.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 2)

		for _, item := range found.Items {
			require.NotNil(t, item.Product)
		}
		assert.True(t, found.Total().Equal(monstera.Price.Mul(decimal.NewFromInt(2)).Add(aloe.Price)))
	})

	t.Run("removing an item deletes its row", func(t *testing.T) {
		require.NoError(t, cart.RemoveItem(itemID(aloe.ID)))
		require.NoError(t, repo.Save(ctx, cart))

		found, err := repo.FindByID(ctx, cart.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 1)
		assert.Equal(t, monstera.ID, found.Items[0].ProductID)
	})

	t.Run("quantity updates persist", func(t *testing.T) {
		require.NoError(t, cart.UpdateItem(itemID(monstera.ID), monstera, 5))
		require.NoError(t, repo.Save(ctx, cart))

		found, err := repo.FindByID(ctx, cart.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 1)
		assert.Equal(t, 5, found.Items[0].Quantity)
	})

	t.Run("saving the cart never writes the product", func(t *testing.T) {
		loaded, err := repo.FindByID(ctx, cart.ID)
		require.NoError(t, err)
		loaded.Items[0].Product.Name = "Tampered"
		require.NoError(t, repo.Save(ctx, loaded))

		fresh, err := NewGormProductRepository(db).FindByID(ctx, monstera.ID)
		require.NoError(t, err)
		assert.Equal(t, "Monstera Deliciosa", fresh.Name)
	})

	t.Run("delete removes cart and items", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, cart.ID))

		_, err := repo.FindByID(ctx, cart.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		var count int64
		require.NoError(t, db.Model(&shopping.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("missing cart maps to not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
