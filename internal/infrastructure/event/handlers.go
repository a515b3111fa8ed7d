package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/plantstore/backend/internal/domain/trade"
)

var (
	_ shared.EventHandler = (*ActivityLogHandler)(nil)
	_ shared.EventHandler = (*OrderNotificationHandler)(nil)
)

// ActivityLogHandler writes one structured log line per domain event.
// It subscribes to everything and serves as the store's audit trail.
type ActivityLogHandler struct {
	logger *zap.Logger
}

// NewActivityLogHandler creates an activity log handler
func NewActivityLogHandler(logger *zap.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{logger: logger}
}

// EventTypes returns nil so the handler receives all events
func (h *ActivityLogHandler) EventTypes() []string {
	return nil
}

// Handle logs the event envelope
func (h *ActivityLogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

// OrderNotificationHandler reacts to order lifecycle events. It currently
// logs what a real notification sender would deliver.
// TODO: send the confirmation email once the mail gateway is chosen.
type OrderNotificationHandler struct {
	logger *zap.Logger
}

// NewOrderNotificationHandler creates an order notification handler
func NewOrderNotificationHandler(logger *zap.Logger) *OrderNotificationHandler {
	return &OrderNotificationHandler{logger: logger}
}

// EventTypes limits the handler to order placement and payment
func (h *OrderNotificationHandler) EventTypes() []string {
	return []string{trade.EventTypeOrderPlaced, trade.EventTypeOrderPaid}
}

// Handle prepares the notification for the order's owner
func (h *OrderNotificationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *trade.OrderPlacedEvent:
		h.logger.Info("order confirmation queued",
			zap.String("order_id", e.OrderID.String()),
			zap.String("user_id", e.UserID.String()),
			zap.String("total_price", e.TotalPrice.StringFixed(2)),
			zap.Int("item_count", e.ItemCount),
		)
	case *trade.OrderPaidEvent:
		h.logger.Info("payment receipt queued",
			zap.String("order_id", e.OrderID.String()),
			zap.String("user_id", e.UserID.String()),
			zap.String("total_price", e.TotalPrice.StringFixed(2)),
		)
	}
	return nil
}
