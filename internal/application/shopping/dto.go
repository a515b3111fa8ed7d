package shopping

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/plantstore/backend/internal/domain/shopping"
)

// AddCartItemRequest adds a product to a cart
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest changes the quantity of a cart line
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// AddWishlistItemRequest puts a product on the wishlist
type AddWishlistItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// CartItemResponse is the API representation of a cart line
type CartItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSlug string          `json:"product_slug"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CartResponse is the API representation of a cart
type CartResponse struct {
	ID         uuid.UUID          `json:"id"`
	Items      []CartItemResponse `json:"items"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	CreatedAt  time.Time          `json:"created_at"`
}

// WishlistItemResponse is the API representation of a wishlist entry
type WishlistItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSlug string          `json:"product_slug"`
	Price       decimal.Decimal `json:"price"`
	InStock     bool            `json:"in_stock"`
	AddedAt     time.Time       `json:"added_at"`
}

// ToCartResponse converts a domain cart with loaded products
func ToCartResponse(cart *shopping.Cart) CartResponse {
	items := make([]CartItemResponse, len(cart.Items))
	for i := range cart.Items {
		item := &cart.Items[i]
		resp := CartItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			resp.ProductName = item.Product.Name
			resp.ProductSlug = item.Product.Slug
			resp.UnitPrice = item.Product.Price
			resp.Subtotal = item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		}
		items[i] = resp
	}

	return CartResponse{
		ID:         cart.ID,
		Items:      items,
		TotalPrice: cart.Total(),
		CreatedAt:  cart.CreatedAt,
	}
}

// ToWishlistItemResponses converts wishlist entries with loaded products
func ToWishlistItemResponses(entries []shopping.WishlistItem) []WishlistItemResponse {
	responses := make([]WishlistItemResponse, len(entries))
	for i := range entries {
		entry := &entries[i]
		resp := WishlistItemResponse{
			ProductID: entry.ProductID,
			AddedAt:   entry.CreatedAt,
		}
		if entry.Product != nil {
			resp.ProductName = entry.Product.Name
			resp.ProductSlug = entry.Product.Slug
			resp.Price = entry.Product.Price
			resp.InStock = entry.Product.InStock(1)
		}
		responses[i] = resp
	}
	return responses
}
