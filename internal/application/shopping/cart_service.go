package shopping

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plantstore/backend/internal/domain/catalog"
	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/plantstore/backend/internal/domain/shopping"
)

// CartService manages anonymous shopping carts. A cart's UUID is its
// only credential; whoever holds it can modify it until an order
// consumes it.
type CartService struct {
	cartRepo    shopping.CartRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(cartRepo shopping.CartRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create makes a new empty cart
func (s *CartService) Create(ctx context.Context) (*CartResponse, error) {
	cart := shopping.NewCart()

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to create cart", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create cart")
	}

	resp := ToCartResponse(cart)
	return &resp, nil
}

// Get returns a cart with its lines
func (s *CartService) Get(ctx context.Context, cartID uuid.UUID) (*CartResponse, error) {
	cart, err := s.findCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	resp := ToCartResponse(cart)
	return &resp, nil
}

// AddItem puts a product into the cart, merging quantities when the
// product is already present.
func (s *CartService) AddItem(ctx context.Context, cartID uuid.UUID, req AddCartItemRequest) (*CartResponse, error) {
	cart, err := s.findCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}

	if err := cart.AddItem(product, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update cart")
	}

	resp := ToCartResponse(cart)
	return &resp, nil
}

// UpdateItem changes the quantity of a cart line
func (s *CartService) UpdateItem(ctx context.Context, cartID, itemID uuid.UUID, req UpdateCartItemRequest) (*CartResponse, error) {
	cart, err := s.findCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	var productID uuid.UUID
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			productID = cart.Items[i].ProductID
			break
		}
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Cart item not found")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}

	if err := cart.UpdateItem(itemID, product, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update cart")
	}

	resp := ToCartResponse(cart)
	return &resp, nil
}

// RemoveItem deletes a cart line
func (s *CartService) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (*CartResponse, error) {
	cart, err := s.findCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if err := cart.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update cart")
	}

	resp := ToCartResponse(cart)
	return &resp, nil
}

// Delete discards a cart and everything in it.
func (s *CartService) Delete(ctx context.Context, cartID uuid.UUID) error {
	if _, err := s.findCart(ctx, cartID); err != nil {
		return err
	}

	if err := s.cartRepo.Delete(ctx, cartID); err != nil {
		s.logger.Error("Failed to delete cart", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete cart")
	}
	return nil
}

func (s *CartService) findCart(ctx context.Context, cartID uuid.UUID) (*shopping.Cart, error) {
	cart, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Cart not found")
	}
	return cart, nil
}
