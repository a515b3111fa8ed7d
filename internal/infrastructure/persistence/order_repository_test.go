package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantstore/backend/internal/application/trade"
	"github.com/plantstore/backend/internal/domain/identity"
	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/plantstore/backend/internal/domain/shopping"
	domaintrade "github.com/plantstore/backend/internal/domain/trade"
)

func TestGormOrderRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)

	userID := uuid.New()
	product := mustProduct(t, db, "Monstera Deliciosa", 120, 10, nil)
	address, err := identity.NewAddress(userID, "Sara Ahmadi", "Tehran", "Tehran", "12 Valiasr St", "1234567890", "+989123456789")
	require.NoError(t, err)

	order, err := domaintrade.NewOrder(userID, address)
	require.NoError(t, err)
	require.NoError(t, order.AddItem(product.ID, product.Name, 2, product.Price))
	require.NoError(t, order.Place())
	require.NoError(t, repo.Save(ctx, order))

	t.Run("reloads order with items", func(t *testing.T) {
		found, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 1)
		assert.Equal(t, product.ID, found.Items[0].ProductID)
		assert.True(t, found.TotalPrice.Equal(order.TotalPrice))
		assert.Equal(t, "Sara Ahmadi", found.ReceiverName)
	})

	t.Run("lists by user", func(t *testing.T) {
		orders, err := repo.FindByUser(ctx, userID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, orders, 1)

		orders, err = repo.FindByUser(ctx, uuid.New(), shared.DefaultFilter())
		require.NoError(t, err)
		assert.Empty(t, orders)

		count, err := repo.CountByUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("status filter", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["status"] = "pending"
		orders, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, orders, 1)

		filter.Filters["status"] = "shipped"
		orders, err = repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("status changes persist", func(t *testing.T) {
		require.NoError(t, order.TransitionTo(domaintrade.OrderStatusProcessing))
		require.NoError(t, repo.Save(ctx, order))

		found, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, domaintrade.OrderStatusProcessing, found.Status)
	})

	t.Run("exists by product", func(t *testing.T) {
		exists, err := repo.ExistsByProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByProduct(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGormTradeTransactionScopeRollsBack(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	scope := NewGormTradeTransactionScope(db)

	product := mustProduct(t, db, "Aloe Vera", 45, 20, nil)
	cart := shopping.NewCart()
	require.NoError(t, cart.AddItem(product, 3))
	require.NoError(t, NewGormCartRepository(db).Save(ctx, cart))

	boom := shared.NewDomainError("BOOM", "forced failure")

	err := scope.Execute(ctx, func(repos trade.TransactionalRepositories) error {
		fresh, err := repos.ProductRepo().FindByID(ctx, product.ID)
		if err != nil {
			return err
		}
		if err := fresh.DecreaseInventory(3); err != nil {
			return err
		}
		if err := repos.ProductRepo().Save(ctx, fresh); err != nil {
			return err
		}
		if err := repos.CartRepo().Delete(ctx, cart.ID); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Everything inside the scope was rolled back
	fresh, err := NewGormProductRepository(db).FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, fresh.Inventory)

	reloaded, err := NewGormCartRepository(db).FindByID(ctx, cart.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Items, 1)
}
