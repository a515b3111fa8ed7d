package event

import (
	"context"

	"github.com/plantstore/backend/internal/domain/engagement"
	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/plantstore/backend/internal/domain/trade"
	"github.com/plantstore/backend/internal/infrastructure/telemetry"
)

// StoreMetricsHandler feeds order and review events into the store's
// business metrics.
type StoreMetricsHandler struct {
	metrics *telemetry.StoreMetrics
}

// NewStoreMetricsHandler creates a metrics event handler
func NewStoreMetricsHandler(metrics *telemetry.StoreMetrics) *StoreMetricsHandler {
	return &StoreMetricsHandler{metrics: metrics}
}

// EventTypes limits the handler to events that move a metric
func (h *StoreMetricsHandler) EventTypes() []string {
	return []string{
		trade.EventTypeOrderPlaced,
		trade.EventTypeOrderPaid,
		engagement.EventTypeReviewSubmitted,
	}
}

// Handle records the matching metric
func (h *StoreMetricsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *trade.OrderPlacedEvent:
		h.metrics.RecordOrderPlaced(ctx, e.TotalPrice)
	case *trade.OrderPaidEvent:
		h.metrics.RecordPayment(ctx, "paid")
	case *engagement.ReviewSubmittedEvent:
		h.metrics.RecordReviewSubmitted(ctx)
	}
	return nil
}
