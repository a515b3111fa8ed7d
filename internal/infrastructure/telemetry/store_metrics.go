package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// StoreMetrics tracks the shop's business metrics: orders, payments,
// checkout latency, and catalog stock health.
type StoreMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	ordersPlacedTotal *Counter
	orderRevenueTotal *Counter
	paymentTotal      *Counter
	reviewsTotal      *Counter

	checkoutDuration *Histogram

	lowStockProducts  *Gauge
	soldOutProducts   *Gauge

	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	catalogProvider CatalogMetricsProvider
}

// CatalogMetricsProvider supplies stock health numbers for periodic
// collection without coupling the telemetry layer to the catalog domain.
type CatalogMetricsProvider interface {
	// LowStockCount returns how many active products sit at or below threshold units
	LowStockCount(ctx context.Context, threshold int) (int64, error)

	// SoldOutCount returns how many active products have zero inventory
	SoldOutCount(ctx context.Context) (int64, error)
}

// StoreMetricsConfig holds configuration for store metrics.
type StoreMetricsConfig struct {
	Meter             metric.Meter
	Logger            *zap.Logger
	CollectInterval   time.Duration // default 5 minutes
	LowStockThreshold int           // default 5 units
	CatalogProvider   CatalogMetricsProvider
}

// NewStoreMetrics creates a StoreMetrics instance.
func NewStoreMetrics(cfg StoreMetricsConfig) (*StoreMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sm := &StoreMetrics{
		meter:           cfg.Meter,
		logger:          logger,
		stopChan:        make(chan struct{}),
		catalogProvider: cfg.CatalogProvider,
	}

	var err error

	sm.ordersPlacedTotal, err = NewCounter(
		cfg.Meter,
		"store_orders_placed_total",
		"Total number of orders placed",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	sm.orderRevenueTotal, err = NewCounter(
		cfg.Meter,
		"store_order_revenue_total",
		"Total order revenue in minor currency units",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	sm.paymentTotal, err = NewCounter(
		cfg.Meter,
		"store_payment_total",
		"Total number of recorded payment outcomes",
		"{payments}",
	)
	if err != nil {
		return nil, err
	}

	sm.reviewsTotal, err = NewCounter(
		cfg.Meter,
		"store_reviews_submitted_total",
		"Total number of product reviews submitted",
		"{reviews}",
	)
	if err != nil {
		return nil, err
	}

	sm.checkoutDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "store_checkout_duration_seconds",
		Description: "Duration of the cart-to-order conversion",
		Unit:        "s",
		Boundaries:  CheckoutDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	sm.lowStockProducts, err = NewGauge(
		cfg.Meter,
		"store_low_stock_products",
		"Number of active products at or below the low stock threshold",
		"{products}",
	)
	if err != nil {
		return nil, err
	}

	sm.soldOutProducts, err = NewGauge(
		cfg.Meter,
		"store_sold_out_products",
		"Number of active products with zero inventory",
		"{products}",
	)
	if err != nil {
		return nil, err
	}

	return sm, nil
}

// RecordOrderPlaced records a placed order and its revenue.
func (sm *StoreMetrics) RecordOrderPlaced(ctx context.Context, total decimal.Decimal) {
	sm.ordersPlacedTotal.Inc(ctx)
	sm.orderRevenueTotal.Add(ctx, total.Mul(decimal.NewFromInt(100)).IntPart())
}

// RecordPayment records a payment outcome.
func (sm *StoreMetrics) RecordPayment(ctx context.Context, status string) {
	sm.paymentTotal.Inc(ctx, AttrPaymentStatus.String(status))
}

// RecordReviewSubmitted records a submitted review.
func (sm *StoreMetrics) RecordReviewSubmitted(ctx context.Context) {
	sm.reviewsTotal.Inc(ctx)
}

// RecordCheckoutDuration records how long a checkout took.
func (sm *StoreMetrics) RecordCheckoutDuration(ctx context.Context, d time.Duration) {
	sm.checkoutDuration.RecordDuration(ctx, d)
}

// StartPeriodicCollection starts the stock health collection loop.
// Non-blocking; use Stop to end it.
func (sm *StoreMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration, lowStockThreshold int) {
	sm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		if lowStockThreshold <= 0 {
			lowStockThreshold = 5
		}
		go sm.runPeriodicCollection(ctx, interval, lowStockThreshold)
	})
}

func (sm *StoreMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration, threshold int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sm.collectStockMetrics(ctx, threshold)

	for {
		select {
		case <-sm.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			sm.collectStockMetrics(ctx, threshold)
		}
	}
}

func (sm *StoreMetrics) collectStockMetrics(ctx context.Context, threshold int) {
	if sm.catalogProvider == nil {
		return
	}

	lowStock, err := sm.catalogProvider.LowStockCount(ctx, threshold)
	if err != nil {
		sm.logger.Warn("failed to collect low stock count", zap.Error(err))
	} else {
		sm.lowStockProducts.Record(ctx, lowStock)
	}

	soldOut, err := sm.catalogProvider.SoldOutCount(ctx)
	if err != nil {
		sm.logger.Warn("failed to collect sold out count", zap.Error(err))
	} else {
		sm.soldOutProducts.Record(ctx, soldOut)
	}
}

// Stop ends periodic collection. Safe to call more than once.
func (sm *StoreMetrics) Stop() {
	sm.stopOnce.Do(func() {
		close(sm.stopChan)
	})
}
