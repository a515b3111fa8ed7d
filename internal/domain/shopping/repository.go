package shopping

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByID finds a cart with its items and products loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)

	// Save creates or updates a cart and its items
	Save(ctx context.Context, cart *Cart) error

	// Delete deletes a cart with all of its items
	Delete(ctx context.Context, id uuid.UUID) error
}

// WishlistRepository defines the interface for wishlist persistence
type WishlistRepository interface {
	// FindByUser finds all wishlist entries of a user with products loaded
	FindByUser(ctx context.Context, userID uuid.UUID) ([]WishlistItem, error)

	// Exists checks whether a user already wished for a product
	Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error)

	// Save creates a wishlist entry
	Save(ctx context.Context, item *WishlistItem) error

	// Delete removes a product from a user's wishlist
	Delete(ctx context.Context, userID, productID uuid.UUID) error
}
