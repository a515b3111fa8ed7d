package shopping

import (
	"time"

	"github.com/google/uuid"
	"github.com/plantstore/backend/internal/domain/catalog"
	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Cart is an anonymous shopping cart addressed purely by its ID. It is
// bound to a user only when an order is placed from it.
type Cart struct {
	shared.BaseAggregateRoot
	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// CartItem is a product line inside a cart
type CartItem struct {
	shared.BaseEntity
	CartID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product,priority:1"`
	ProductID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product,priority:2"`
	Product   *catalog.Product `gorm:"foreignKey:ProductID"`
	Quantity  int              `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
	}
}

// AddItem puts a product into the cart. Adding a product that is
// already present merges the quantities. The merged quantity must stay
// within the product's inventory.
func (c *Cart) AddItem(product *catalog.Product, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if product == nil || !product.IsActive {
		return shared.NewDomainError("INVALID_INPUT", "Product is not available")
	}

	for i := range c.Items {
		if c.Items[i].ProductID == product.ID {
			merged := c.Items[i].Quantity + quantity
			if merged > product.Inventory {
				return shared.ErrInsufficientStock
			}
			c.Items[i].Quantity = merged
			c.Items[i].Product = product
			c.Items[i].UpdatedAt = time.Now()
			c.touch()
			return nil
		}
	}

	if quantity > product.Inventory {
		return shared.ErrInsufficientStock
	}

	c.Items = append(c.Items, CartItem{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     c.ID,
		ProductID:  product.ID,
		Product:    product,
		Quantity:   quantity,
	})
	c.touch()
	return nil
}

// UpdateItem replaces the quantity of an existing line
func (c *Cart) UpdateItem(itemID uuid.UUID, product *catalog.Product, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if product != nil && quantity > product.Inventory {
		return shared.ErrInsufficientStock
	}

	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = quantity
			if product != nil {
				c.Items[i].Product = product
			}
			c.Items[i].UpdatedAt = time.Now()
			c.touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RemoveItem deletes a line from the cart
func (c *Cart) RemoveItem(itemID uuid.UUID) error {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total sums quantity times current unit price over all lines. Lines
// without a loaded product are skipped.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		if item.Product == nil {
			continue
		}
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
