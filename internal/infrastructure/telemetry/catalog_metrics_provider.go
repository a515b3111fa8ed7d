package telemetry

import (
	"context"

	"gorm.io/gorm"
)

var _ CatalogMetricsProvider = (*GormCatalogMetricsProvider)(nil)

// GormCatalogMetricsProvider queries the products table directly for
// stock health numbers.
type GormCatalogMetricsProvider struct {
	db *gorm.DB
}

// NewGormCatalogMetricsProvider creates a GormCatalogMetricsProvider.
func NewGormCatalogMetricsProvider(db *gorm.DB) *GormCatalogMetricsProvider {
	return &GormCatalogMetricsProvider{db: db}
}

// LowStockCount returns how many active products sit at or below threshold units.
func (p *GormCatalogMetricsProvider) LowStockCount(ctx context.Context, threshold int) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("products").
		Where("is_active = ?", true).
		Where("inventory > 0 AND inventory <= ?", threshold).
		Count(&count).Error
	return count, err
}

// SoldOutCount returns how many active products have zero inventory.
func (p *GormCatalogMetricsProvider) SoldOutCount(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("products").
		Where("is_active = ?", true).
		Where("inventory = 0").
		Count(&count).Error
	return count, err
}
