package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apptrade "github.com/plantstore/backend/internal/application/trade"
	"github.com/plantstore/backend/internal/domain/catalog"
	"github.com/plantstore/backend/internal/domain/engagement"
	"github.com/plantstore/backend/internal/domain/identity"
	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/plantstore/backend/internal/domain/shopping"
	"github.com/plantstore/backend/internal/domain/trade"
)

// setupPostgresDB starts a disposable PostgreSQL container and migrates the
// schema into it. Tests that call it are skipped in -short mode so the suite
// stays runnable without Docker.
func setupPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("plantstore_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&identity.User{},
		&identity.Address{},
		&catalog.Category{},
		&catalog.Product{},
		&catalog.ProductImage{},
		&shopping.Cart{},
		&shopping.CartItem{},
		&shopping.WishlistItem{},
		&engagement.Review{},
		&engagement.ReviewLike{},
		&trade.Order{},
		&trade.OrderItem{},
	))

	return db
}

// TestCheckoutFlowPostgres drives a full cart-to-order checkout through the
// real transaction scope against PostgreSQL, then verifies the read-model
// annotations pick up the paid order.
func TestCheckoutFlowPostgres(t *testing.T) {
	db := setupPostgresDB(t)
	ctx := context.Background()

	user, err := identity.NewUser("buyer@example.com", "secret-pass-1")
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(db).Save(ctx, user))

	address, err := identity.NewAddress(user.ID, "Sara Ahmadi", "Tehran", "Tehran", "12 Valiasr St", "1234567890", "+989123456789")
	require.NoError(t, err)
	require.NoError(t, NewGormAddressRepository(db).Save(ctx, address))

	product, err := catalog.NewProduct("Monstera Deliciosa", "monstera-deliciosa", "A large tropical plant", decimal.NewFromInt(120), 10, nil)
	require.NoError(t, err)
	productRepo := NewGormProductRepository(db)
	require.NoError(t, productRepo.Save(ctx, product))

	cart := shopping.NewCart()
	require.NoError(t, cart.AddItem(product, 3))
	cartRepo := NewGormCartRepository(db)
	require.NoError(t, cartRepo.Save(ctx, cart))

	scope := NewGormTradeTransactionScope(db)

	var placed *trade.Order
	err = scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		loaded, err := repos.CartRepo().FindByID(ctx, cart.ID)
		if err != nil {
			return err
		}

		order, err := trade.NewOrder(user.ID, address)
		if err != nil {
			return err
		}
		for _, item := range loaded.Items {
			p, err := repos.ProductRepo().FindByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if err := p.DecreaseInventory(item.Quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().Save(ctx, p); err != nil {
				return err
			}
			if err := order.AddItem(p.ID, p.Name, item.Quantity, p.Price); err != nil {
				return err
			}
		}
		if err := order.Place(); err != nil {
			return err
		}
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}
		if err := repos.CartRepo().Delete(ctx, loaded.ID); err != nil {
			return err
		}
		placed = order
		return nil
	})
	require.NoError(t, err)

	orderRepo := NewGormOrderRepository(db)
	reloaded, err := orderRepo.FindByID(ctx, placed.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, "Monstera Deliciosa", reloaded.Items[0].ProductName)
	assert.True(t, decimal.NewFromInt(360).Equal(reloaded.TotalPrice))
	assert.Equal(t, "Sara Ahmadi", reloaded.ReceiverName)

	stocked, err := productRepo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, stocked.Inventory)

	_, err = cartRepo.FindByID(ctx, cart.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// Unpaid orders do not count towards sales.
	stats, err := productRepo.Stats(ctx, product.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.SalesCount)

	require.NoError(t, reloaded.MarkPayment(trade.PaymentStatusPaid))
	require.NoError(t, orderRepo.Save(ctx, reloaded))

	stats, err = productRepo.Stats(ctx, product.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.SalesCount)

	items, err := productRepo.List(ctx, catalog.ProductQuery{Filter: shared.DefaultFilter()})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.EqualValues(t, 3, items[0].SalesCount)
}

// TestCheckoutRollbackPostgres verifies that a failure after the inventory
// write rolls back both the stock change and the order row.
func TestCheckoutRollbackPostgres(t *testing.T) {
	db := setupPostgresDB(t)
	ctx := context.Background()

	user, err := identity.NewUser("buyer@example.com", "secret-pass-1")
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(db).Save(ctx, user))

	address, err := identity.NewAddress(user.ID, "Sara Ahmadi", "Tehran", "Tehran", "12 Valiasr St", "1234567890", "+989123456789")
	require.NoError(t, err)
	require.NoError(t, NewGormAddressRepository(db).Save(ctx, address))

	product, err := catalog.NewProduct("Aloe Vera", "aloe-vera", "A hardy succulent", decimal.NewFromInt(45), 10, nil)
	require.NoError(t, err)
	productRepo := NewGormProductRepository(db)
	require.NoError(t, productRepo.Save(ctx, product))

	scope := NewGormTradeTransactionScope(db)
	boom := shared.NewDomainError("PAYMENT_DECLINED", "payment declined")

	err = scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		p, err := repos.ProductRepo().FindByID(ctx, product.ID)
		if err != nil {
			return err
		}
		if err := p.DecreaseInventory(4); err != nil {
			return err
		}
		if err := repos.ProductRepo().Save(ctx, p); err != nil {
			return err
		}

		order, err := trade.NewOrder(user.ID, address)
		if err != nil {
			return err
		}
		if err := order.AddItem(p.ID, p.Name, 4, p.Price); err != nil {
			return err
		}
		if err := order.Place(); err != nil {
			return err
		}
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	stocked, err := productRepo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stocked.Inventory, "rolled-back checkout must restore stock")

	count, err := NewGormOrderRepository(db).CountByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count, "rolled-back checkout must not leave an order behind")
}
