package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/plantstore/backend/internal/domain/shared"
)

// ProductImage is a stored picture of a product. Image binaries live in
// object storage, only the object key is persisted.
type ProductImage struct {
	shared.BaseEntity
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	ObjectKey string    `gorm:"type:varchar(500);not null"`
	AltText   string    `gorm:"type:varchar(200)"`
	IsMain    bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ProductImage) TableName() string {
	return "product_images"
}

// NewProductImage creates a new product image record
func NewProductImage(productID uuid.UUID, objectKey, altText string) (*ProductImage, error) {
	if strings.TrimSpace(objectKey) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Image object key is required")
	}

	return &ProductImage{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		ObjectKey:  objectKey,
		AltText:    altText,
	}, nil
}

// MarkMain flags this image as the product's main picture
func (i *ProductImage) MarkMain() {
	i.IsMain = true
	i.UpdatedAt = time.Now()
}

// UnmarkMain clears the main picture flag
func (i *ProductImage) UnmarkMain() {
	i.IsMain = false
	i.UpdatedAt = time.Now()
}
