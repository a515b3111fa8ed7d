package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/plantstore/backend/internal/domain/catalog"
	"github.com/plantstore/backend/internal/domain/engagement"
	"github.com/plantstore/backend/internal/domain/identity"
	"github.com/plantstore/backend/internal/domain/shopping"
	"github.com/plantstore/backend/internal/domain/trade"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
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
	)
	require.NoError(t, err)

	return db
}
