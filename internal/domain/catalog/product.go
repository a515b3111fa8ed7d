package catalog

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaxAmount bounds both unit prices and inventory counts
var MaxAmount = decimal.NewFromInt(100_000_000)

// MaxInventory is the upper bound for a product's stock level
const MaxInventory = 100_000_000

// Product represents a plant offered in the store catalog
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	Slug        string          `gorm:"type:varchar(220);not null;uniqueIndex"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Inventory   int             `gorm:"not null;default:0"`
	IsActive    bool            `gorm:"not null;default:true"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Category    *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Images      []ProductImage  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product. When slug is empty it is derived
// from the name.
func NewProduct(name, slug, description string, price decimal.Decimal, inventory int, categoryID *uuid.UUID) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if err := validateInventory(inventory); err != nil {
		return nil, err
	}

	if slug == "" {
		slug = Slugify(name)
	} else {
		slug = Slugify(slug)
	}
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product slug cannot be empty")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Slug:              slug,
		Description:       description,
		Price:             price,
		Inventory:         inventory,
		IsActive:          true,
		CategoryID:        categoryID,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.touch()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// ChangeSlug replaces the product slug
func (p *Product) ChangeSlug(slug string) error {
	slug = Slugify(slug)
	if slug == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product slug cannot be empty")
	}
	p.Slug = slug
	p.touch()
	return nil
}

// ChangePrice sets a new unit price
func (p *Product) ChangePrice(price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	p.Price = price
	p.touch()
	return nil
}

// SetInventory replaces the stock level
func (p *Product) SetInventory(inventory int) error {
	if err := validateInventory(inventory); err != nil {
		return err
	}
	p.Inventory = inventory
	p.touch()
	return nil
}

// DecreaseInventory removes stock when an order is placed
func (p *Product) DecreaseInventory(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if quantity > p.Inventory {
		return shared.ErrInsufficientStock
	}
	p.Inventory -= quantity
	p.touch()
	return nil
}

// RestoreInventory returns stock when an order is cancelled
func (p *Product) RestoreInventory(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if p.Inventory+quantity > MaxInventory {
		return shared.NewDomainError("INVALID_INPUT", "Inventory cannot exceed the allowed maximum")
	}
	p.Inventory += quantity
	p.touch()
	return nil
}

// AssignCategory moves the product to a category, nil detaches it
func (p *Product) AssignCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.touch()
}

// Activate makes the product visible to customers
func (p *Product) Activate() {
	if p.IsActive {
		return
	}
	p.IsActive = true
	p.touch()
}

// Deactivate hides the product from customers
func (p *Product) Deactivate() {
	if !p.IsActive {
		return
	}
	p.IsActive = false
	p.touch()
}

// InStock reports whether the requested quantity can be fulfilled
func (p *Product) InStock(quantity int) bool {
	return quantity > 0 && quantity <= p.Inventory
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Slugify derives a URL slug from a name. Unicode letters and digits
// are kept so non-latin product names produce readable slugs.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Price cannot be negative")
	}
	if price.GreaterThan(MaxAmount) {
		return shared.NewDomainError("INVALID_INPUT", "Price cannot exceed the allowed maximum")
	}
	return nil
}

func validateInventory(inventory int) error {
	if inventory < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Inventory cannot be negative")
	}
	if inventory > MaxInventory {
		return shared.NewDomainError("INVALID_INPUT", "Inventory cannot exceed the allowed maximum")
	}
	return nil
}
