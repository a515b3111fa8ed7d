package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/plantstore/backend/internal/domain/catalog"
	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/plantstore/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// Presigned image URLs returned on product reads stay valid this long
const imageURLTTL = 15 * time.Minute

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	orderRepo    trade.OrderRepository
	storage      ObjectStorageService
	eventBus     shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	orderRepo trade.OrderRepository,
	storage ObjectStorageService,
	eventBus shared.EventPublisher,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		orderRepo:    orderRepo,
		storage:      storage,
		eventBus:     eventBus,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
	}

	product, err := catalog.NewProduct(req.Name, req.Slug, req.Description, req.Price, req.Inventory, req.CategoryID)
	if err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsBySlug(ctx, product.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this slug already exists")
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	return s.toResponse(ctx, product, nil)
}

// GetBySlug returns a product with its listing annotations
func (s *ProductService) GetBySlug(ctx context.Context, slug string, includeInactive bool) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !product.IsActive && !includeInactive {
		return nil, shared.ErrNotFound
	}

	stats, err := s.productRepo.Stats(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, product, stats)
}

// List returns annotated products matching the listing filter
func (s *ProductService) List(ctx context.Context, filter ProductListFilter, includeInactive bool) (*shared.Paginated[ProductListItemResponse], error) {
	query, err := buildProductQuery(filter, includeInactive)
	if err != nil {
		return nil, err
	}

	items, err := s.productRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, query)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductListItemResponse, len(items))
	for i := range items {
		responses[i] = ToProductListItemResponse(&items[i], s.imageURL(ctx, items[i].MainImageKey))
	}

	result := shared.NewPaginated(responses, total, query.Page, query.PageSize)
	return &result, nil
}

// Update applies a partial update to a product
func (s *ProductService) Update(ctx context.Context, slug string, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := product.Name
		description := product.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.Slug != nil {
		newSlug := catalog.Slugify(*req.Slug)
		if newSlug != product.Slug {
			exists, err := s.productRepo.ExistsBySlug(ctx, newSlug)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this slug already exists")
			}
			if err := product.ChangeSlug(newSlug); err != nil {
				return nil, err
			}
		}
	}

	if req.Price != nil {
		if err := product.ChangePrice(*req.Price); err != nil {
			return nil, err
		}
	}

	if req.Inventory != nil {
		if err := product.SetInventory(*req.Inventory); err != nil {
			return nil, err
		}
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
		product.AssignCategory(req.CategoryID)
	}

	if req.IsActive != nil {
		if *req.IsActive {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	stats, err := s.productRepo.Stats(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, product, stats)
}

// Delete removes a product unless order history references it
func (s *ProductService) Delete(ctx context.Context, slug string) error {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}

	referenced, err := s.orderRepo.ExistsByProduct(ctx, product.ID)
	if err != nil {
		return err
	}
	if referenced {
		return shared.NewDomainError("INVALID_STATE", "Product has order history and cannot be deleted")
	}

	return s.productRepo.Delete(ctx, product.ID)
}

func (s *ProductService) toResponse(ctx context.Context, product *catalog.Product, stats *catalog.ProductStats) (*ProductResponse, error) {
	resp := ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Slug:        product.Slug,
		Description: product.Description,
		Price:       product.Price,
		Inventory:   product.Inventory,
		IsActive:    product.IsActive,
		CategoryID:  product.CategoryID,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
	if product.Category != nil {
		resp.CategoryName = product.Category.Name
	}
	if stats != nil {
		resp.AverageRating = stats.AverageRating
		resp.SalesCount = stats.SalesCount
		resp.MainImage = s.imageURL(ctx, stats.MainImageKey)
	}
	for i := range product.Images {
		resp.Images = append(resp.Images, ProductImageResponse{
			ID:      product.Images[i].ID,
			AltText: product.Images[i].AltText,
			IsMain:  product.Images[i].IsMain,
			URL:     s.imageURL(ctx, product.Images[i].ObjectKey),
		})
	}
	return &resp, nil
}

// imageURL resolves an object key to a presigned URL, empty when no
// storage backend is configured
func (s *ProductService) imageURL(ctx context.Context, objectKey string) string {
	if s.storage == nil || objectKey == "" {
		return ""
	}
	url, _, err := s.storage.GenerateDownloadURL(ctx, objectKey, imageURLTTL)
	if err != nil {
		return ""
	}
	return url
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventBus == nil {
		return
	}
	_ = s.eventBus.Publish(ctx, product.GetDomainEvents()...)
	product.ClearDomainEvents()
}

func buildProductQuery(filter ProductListFilter, includeInactive bool) (catalog.ProductQuery, error) {
	base := shared.DefaultFilter()
	if filter.Page > 0 {
		base.Page = filter.Page
	}
	if filter.PageSize > 0 {
		base.PageSize = filter.PageSize
	}
	base.Search = filter.Search

	if filter.Ordering != "" {
		orderBy := filter.Ordering
		orderDir := "asc"
		if orderBy[0] == '-' {
			orderBy = orderBy[1:]
			orderDir = "desc"
		}
		switch orderBy {
		case catalog.OrderByCreatedAt, catalog.OrderByPrice, catalog.OrderByAverageRating:
		default:
			return catalog.ProductQuery{}, shared.NewDomainError("INVALID_INPUT", "Unknown ordering key")
		}
		base.OrderBy = orderBy
		base.OrderDir = orderDir
	}

	query := catalog.ProductQuery{
		Filter:          base,
		CategoryName:    filter.Category,
		MinRating:       filter.Rating,
		IncludeInactive: includeInactive,
	}
	if filter.PriceMin != nil {
		min := decimal.NewFromFloat(*filter.PriceMin)
		query.PriceMin = &min
	}
	if filter.PriceMax != nil {
		max := decimal.NewFromFloat(*filter.PriceMax)
		query.PriceMax = &max
	}
	return query, nil
}
