package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/plantstore/backend/internal/domain/trade"
)

type recordingHandler struct {
	mu     sync.Mutex
	types  []string
	seen   []shared.DomainEvent
	err    error
	panics bool
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("boom")
	}
	h.mu.Lock()
	h.seen = append(h.seen, event)
	h.mu.Unlock()
	return h.err
}

func (h *recordingHandler) events() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.seen...)
}

func placedEvent(t *testing.T) *trade.OrderPlacedEvent {
	t.Helper()
	return &trade.OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(trade.EventTypeOrderPlaced, trade.AggregateTypeOrder, uuid.New()),
		OrderID:         uuid.New(),
		UserID:          uuid.New(),
		TotalPrice:      decimal.NewFromInt(360),
		ItemCount:       2,
	}
}

func paidEvent(t *testing.T) *trade.OrderPaidEvent {
	t.Helper()
	return &trade.OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(trade.EventTypeOrderPaid, trade.AggregateTypeOrder, uuid.New()),
		OrderID:         uuid.New(),
		UserID:          uuid.New(),
		TotalPrice:      decimal.NewFromInt(360),
	}
}

func TestInMemoryEventBusRoutesByType(t *testing.T) {
	bus := NewInMemoryEventBus(zaptest.NewLogger(t))
	ctx := context.Background()

	placedOnly := &recordingHandler{types: []string{trade.EventTypeOrderPlaced}}
	everything := &recordingHandler{}
	bus.Subscribe(placedOnly)
	bus.Subscribe(everything)

	require.NoError(t, bus.Publish(ctx, placedEvent(t), paidEvent(t)))

	assert.Len(t, placedOnly.events(), 1)
	assert.Equal(t, trade.EventTypeOrderPlaced, placedOnly.events()[0].EventType())
	assert.Len(t, everything.events(), 2)
}

func TestInMemoryEventBusSubscribeOverride(t *testing.T) {
	bus := NewInMemoryEventBus(zaptest.NewLogger(t))
	ctx := context.Background()

	// explicit types at subscription beat the handler's own declaration
	handler := &recordingHandler{types: []string{trade.EventTypeOrderPlaced}}
	bus.Subscribe(handler, trade.EventTypeOrderPaid)

	require.NoError(t, bus.Publish(ctx, placedEvent(t), paidEvent(t)))

	require.Len(t, handler.events(), 1)
	assert.Equal(t, trade.EventTypeOrderPaid, handler.events()[0].EventType())
}

func TestInMemoryEventBusFailingHandlerDoesNotBlockOthers(t *testing.T) {
	bus := NewInMemoryEventBus(zaptest.NewLogger(t))
	ctx := context.Background()

	failing := &recordingHandler{err: errors.New("handler down")}
	healthy := &recordingHandler{}
	bus.Subscribe(failing, trade.EventTypeOrderPlaced)
	bus.Subscribe(healthy, trade.EventTypeOrderPlaced)

	require.NoError(t, bus.Publish(ctx, placedEvent(t)))
	assert.Len(t, healthy.events(), 1)
}

func TestInMemoryEventBusRecoversFromPanic(t *testing.T) {
	bus := NewInMemoryEventBus(zaptest.NewLogger(t))
	ctx := context.Background()

	panicking := &recordingHandler{panics: true}
	healthy := &recordingHandler{}
	bus.Subscribe(panicking, trade.EventTypeOrderPlaced)
	bus.Subscribe(healthy, trade.EventTypeOrderPlaced)

	require.NotPanics(t, func() {
		require.NoError(t, bus.Publish(ctx, placedEvent(t)))
	})
	assert.Len(t, healthy.events(), 1)
}

func TestInMemoryEventBusUnsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zaptest.NewLogger(t))
	ctx := context.Background()

	handler := &recordingHandler{types: []string{trade.EventTypeOrderPlaced}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(ctx, placedEvent(t)))
	assert.Empty(t, handler.events())
}

func TestOrderNotificationHandlerSelectsOrderEvents(t *testing.T) {
	handler := NewOrderNotificationHandler(zaptest.NewLogger(t))
	assert.ElementsMatch(t,
		[]string{trade.EventTypeOrderPlaced, trade.EventTypeOrderPaid},
		handler.EventTypes(),
	)

	require.NoError(t, handler.Handle(context.Background(), placedEvent(t)))
	require.NoError(t, handler.Handle(context.Background(), paidEvent(t)))
}

func TestActivityLogHandlerIsWildcard(t *testing.T) {
	handler := NewActivityLogHandler(zaptest.NewLogger(t))
	assert.Empty(t, handler.EventTypes())
	require.NoError(t, handler.Handle(context.Background(), placedEvent(t)))
}
