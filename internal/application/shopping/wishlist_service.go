package shopping

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plantstore/backend/internal/domain/catalog"
	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/plantstore/backend/internal/domain/shopping"
)

// WishlistService manages per-user wishlists
type WishlistService struct {
	wishlistRepo shopping.WishlistRepository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(wishlistRepo shopping.WishlistRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// List returns all wishlist entries of a user
func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]WishlistItemResponse, error) {
	entries, err := s.wishlistRepo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list wishlist", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list wishlist")
	}
	return ToWishlistItemResponses(entries), nil
}

// Add puts a product on the user's wishlist
func (s *WishlistService) Add(ctx context.Context, userID uuid.UUID, req AddWishlistItemRequest) error {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	if !product.IsActive {
		return shared.NewDomainError("NOT_FOUND", "Product not found")
	}

	exists, err := s.wishlistRepo.Exists(ctx, userID, req.ProductID)
	if err != nil {
		s.logger.Error("Failed to check wishlist", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update wishlist")
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Product is already on the wishlist")
	}

	if err := s.wishlistRepo.Save(ctx, shopping.NewWishlistItem(userID, req.ProductID)); err != nil {
		s.logger.Error("Failed to save wishlist entry", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update wishlist")
	}

	return nil
}

// Remove takes a product off the user's wishlist
func (s *WishlistService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	exists, err := s.wishlistRepo.Exists(ctx, userID, productID)
	if err != nil {
		s.logger.Error("Failed to check wishlist", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update wishlist")
	}
	if !exists {
		return shared.NewDomainError("NOT_FOUND", "Product is not on the wishlist")
	}

	if err := s.wishlistRepo.Delete(ctx, userID, productID); err != nil {
		s.logger.Error("Failed to delete wishlist entry", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update wishlist")
	}

	return nil
}
