package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/plantstore/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=2000"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Slug        string           `json:"slug" binding:"max=220"`
	Description string           `json:"description" binding:"max=5000"`
	Price       decimal.Decimal  `json:"price" binding:"required"`
	Inventory   int              `json:"inventory" binding:"min=0"`
	CategoryID  *uuid.UUID       `json:"category_id"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Slug        *string          `json:"slug" binding:"omitempty,max=220"`
	Description *string          `json:"description" binding:"omitempty,max=5000"`
	Price       *decimal.Decimal `json:"price"`
	Inventory   *int             `json:"inventory" binding:"omitempty,min=0"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	IsActive    *bool            `json:"is_active"`
}

// ProductListFilter represents the catalog listing query parameters
type ProductListFilter struct {
	Category string   `form:"category"`
	PriceMin *float64 `form:"price_min"`
	PriceMax *float64 `form:"price_max"`
	Rating   *float64 `form:"rating" binding:"omitempty,min=0,max=5"`
	Search   string   `form:"search"`
	Ordering string   `form:"ordering"`
	Page     int      `form:"page" binding:"omitempty,min=1"`
	PageSize int      `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductImageResponse represents a product image in API responses
type ProductImageResponse struct {
	ID      uuid.UUID `json:"id"`
	AltText string    `json:"alt_text"`
	IsMain  bool      `json:"is_main"`
	URL     string    `json:"url,omitempty"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID              `json:"id"`
	Name          string                 `json:"name"`
	Slug          string                 `json:"slug"`
	Description   string                 `json:"description"`
	Price         decimal.Decimal        `json:"price"`
	Inventory     int                    `json:"inventory"`
	IsActive      bool                   `json:"is_active"`
	CategoryID    *uuid.UUID             `json:"category_id"`
	CategoryName  string                 `json:"category_name,omitempty"`
	AverageRating float64                `json:"average_rating"`
	SalesCount    int64                  `json:"sales_count"`
	MainImage     string                 `json:"main_image,omitempty"`
	Images        []ProductImageResponse `json:"images,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// ProductListItemResponse represents a product in listing responses
type ProductListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	Price         decimal.Decimal `json:"price"`
	Inventory     int             `json:"inventory"`
	IsActive      bool            `json:"is_active"`
	CategoryID    *uuid.UUID      `json:"category_id"`
	AverageRating float64         `json:"average_rating"`
	SalesCount    int64           `json:"sales_count"`
	MainImage     string          `json:"main_image,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// InitiateImageUploadRequest starts a presigned product image upload
type InitiateImageUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required"`
	AltText     string `json:"alt_text" binding:"max=200"`
}

// InitiateImageUploadResponse carries the presigned upload target
type InitiateImageUploadResponse struct {
	ImageID   uuid.UUID `json:"image_id"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses
}

// ToProductListItemResponse converts an annotated product list item
func ToProductListItemResponse(item *catalog.ProductListItem, mainImageURL string) ProductListItemResponse {
	return ProductListItemResponse{
		ID:            item.ID,
		Name:          item.Name,
		Slug:          item.Slug,
		Price:         item.Price,
		Inventory:     item.Inventory,
		IsActive:      item.IsActive,
		CategoryID:    item.CategoryID,
		AverageRating: item.AverageRating,
		SalesCount:    item.SalesCount,
		MainImage:     mainImageURL,
		CreatedAt:     item.CreatedAt,
	}
}
