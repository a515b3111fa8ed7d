package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plantstore/backend/internal/domain/catalog"
	"github.com/plantstore/backend/internal/domain/shared"
)

// Listing annotations computed per product row. Average rating only
// counts approved reviews, rounded to one decimal; sales only count
// paid orders.
const (
	avgRatingExpr = "(SELECT ROUND(COALESCE(AVG(r.rating), 0), 1) FROM reviews r WHERE r.product_id = products.id AND r.is_approved = TRUE)"
	salesExpr     = "(SELECT COALESCE(SUM(oi.quantity), 0) FROM order_items oi JOIN orders o ON o.id = oi.order_id WHERE oi.product_id = products.id AND o.payment_status = 'paid')"
	mainImageExpr = "(SELECT COALESCE(pi.object_key, '') FROM product_images pi WHERE pi.product_id = products.id ORDER BY pi.is_main DESC, pi.created_at ASC LIMIT 1)"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Images").
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindBySlug finds a product by its slug
func (r *GormProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Images").
		First(&product, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDs finds products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// List finds products matching the query with their listing annotations
func (r *GormProductRepository) List(ctx context.Context, query catalog.ProductQuery) ([]catalog.ProductListItem, error) {
	var items []catalog.ProductListItem

	q := r.applyQuery(r.db.WithContext(ctx).Model(&catalog.Product{}), query).
		Select("products.*, " +
			avgRatingExpr + " AS average_rating, " +
			salesExpr + " AS sales_count, " +
			mainImageExpr + " AS main_image_key")

	if query.Page > 0 && query.PageSize > 0 {
		offset := (query.Page - 1) * query.PageSize
		q = q.Offset(offset).Limit(query.PageSize)
	}

	orderBy := ValidateSortField(query.OrderBy, ProductSortFields, "created_at")
	if orderBy != "average_rating" {
		// Qualify real columns; the category join would make them ambiguous
		orderBy = "products." + orderBy
	}
	q = q.Order(orderBy + " " + ValidateSortOrder(query.OrderDir))

	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Count counts products matching the query
func (r *GormProductRepository) Count(ctx context.Context, query catalog.ProductQuery) (int64, error) {
	var count int64
	q := r.applyQuery(r.db.WithContext(ctx).Model(&catalog.Product{}), query)

	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Stats computes the listing annotations for a single product
func (r *GormProductRepository) Stats(ctx context.Context, id uuid.UUID) (*catalog.ProductStats, error) {
	var stats catalog.ProductStats
	err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Select(avgRatingExpr+" AS average_rating, "+
			salesExpr+" AS sales_count, "+
			mainImageExpr+" AS main_image_key").
		Where("products.id = ?", id).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Save creates or updates a product without touching its associations
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).
		Omit("Category", "Images").
		Save(product).Error
}

// SaveBatch creates or updates multiple products in one transaction
func (r *GormProductRepository) SaveBatch(ctx context.Context, products []*catalog.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, product := range products {
			if err := tx.Omit("Category", "Images").Save(product).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsBySlug checks whether a product with the slug exists
func (r *GormProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormProductRepository) applyQuery(q *gorm.DB, query catalog.ProductQuery) *gorm.DB {
	if !query.IncludeInactive {
		q = q.Where("products.is_active = ?", true)
	}

	if query.Search != "" {
		// Search spans product name and category name, like the listing
		// search box. Aliased to not collide with the category filter join.
		searchPattern := "%" + strings.ToLower(query.Search) + "%"
		q = q.Joins("LEFT JOIN categories search_categories ON search_categories.id = products.category_id").
			Where("LOWER(products.name) LIKE ? OR LOWER(search_categories.name) LIKE ?",
				searchPattern, searchPattern)
	}

	if query.CategoryName != "" {
		q = q.Joins("JOIN categories ON categories.id = products.category_id").
			Where("LOWER(categories.name) = ?", strings.ToLower(query.CategoryName))
	}

	if query.PriceMin != nil {
		q = q.Where("products.price >= ?", *query.PriceMin)
	}
	if query.PriceMax != nil {
		q = q.Where("products.price <= ?", *query.PriceMax)
	}
	if query.MinRating != nil {
		q = q.Where(avgRatingExpr+" >= ?", *query.MinRating)
	}

	return q
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
