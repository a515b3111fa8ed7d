package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Ordering keys accepted by product listings
const (
	OrderByCreatedAt     = "created_at"
	OrderByPrice         = "price"
	OrderByAverageRating = "average_rating"
)

// ProductQuery captures the catalog listing filters
type ProductQuery struct {
	shared.Filter
	CategoryName    string
	PriceMin        *decimal.Decimal
	PriceMax        *decimal.Decimal
	MinRating       *float64
	IncludeInactive bool
}

// ProductStats carries the read-model annotations computed per product
type ProductStats struct {
	AverageRating float64
	SalesCount    int64
	MainImageKey  string
}

// ProductListItem is a product together with its listing annotations
type ProductListItem struct {
	Product
	ProductStats
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySlug finds a product by its slug
	FindBySlug(ctx context.Context, slug string) (*Product, error)

	// FindByIDs finds products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// List finds products matching the query, annotated with rating,
	// sales and main image information
	List(ctx context.Context, query ProductQuery) ([]ProductListItem, error)

	// Count counts products matching the query
	Count(ctx context.Context, query ProductQuery) (int64, error)

	// Stats computes the listing annotations for a single product
	Stats(ctx context.Context, id uuid.UUID) (*ProductStats, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveBatch creates or updates multiple products in one transaction
	SaveBatch(ctx context.Context, products []*Product) error

	// Delete deletes a product; fails while order items reference it
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsBySlug checks whether a product with the slug exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}

// ProductImageRepository defines the interface for product image persistence
type ProductImageRepository interface {
	// FindByID finds an image by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductImage, error)

	// FindByProduct finds all images of a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]ProductImage, error)

	// Save creates or updates an image
	Save(ctx context.Context, image *ProductImage) error

	// Delete deletes an image record
	Delete(ctx context.Context, id uuid.UUID) error

	// ClearMain unsets the main flag on all images of a product
	ClearMain(ctx context.Context, productID uuid.UUID) error
}
