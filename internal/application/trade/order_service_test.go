package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/plantstore/backend/internal/domain/catalog"
	"github.com/plantstore/backend/internal/domain/identity"
	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/plantstore/backend/internal/domain/shopping"
	"github.com/plantstore/backend/internal/domain/trade"
)

// MockOrderRepository is a mock implementation of trade.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) ExistsByProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, query catalog.ProductQuery) ([]catalog.ProductListItem, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ProductListItem), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, query catalog.ProductQuery) (int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Stats(ctx context.Context, id uuid.UUID) (*catalog.ProductStats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductStats), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveBatch(ctx context.Context, products []*catalog.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

// MockCartRepository is a mock implementation of shopping.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*shopping.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, cart *shopping.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAddressRepository is a mock implementation of identity.AddressRepository
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Address), args.Error(1)
}

func (m *MockAddressRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]identity.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Address), args.Error(1)
}

func (m *MockAddressRepository) FindDefault(ctx context.Context, userID uuid.UUID) (*identity.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Address), args.Error(1)
}

func (m *MockAddressRepository) Save(ctx context.Context, address *identity.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockAddressRepository) SetDefault(ctx context.Context, userID, addressID uuid.UUID) error {
	args := m.Called(ctx, userID, addressID)
	return args.Error(0)
}

func (m *MockAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventBus is a mock implementation of shared.EventPublisher
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type orderFixture struct {
	orderRepo   *MockOrderRepository
	productRepo *MockProductRepository
	cartRepo    *MockCartRepository
	addressRepo *MockAddressRepository
	eventBus    *MockEventBus
	service     *OrderService
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orderRepo:   new(MockOrderRepository),
		productRepo: new(MockProductRepository),
		cartRepo:    new(MockCartRepository),
		addressRepo: new(MockAddressRepository),
		eventBus:    new(MockEventBus),
	}
	scope := NewNoOpTransactionScope(f.orderRepo, f.productRepo, f.cartRepo)
	f.service = NewOrderService(f.orderRepo, f.addressRepo, scope, f.eventBus, zap.NewNop())
	return f
}

func newTestProduct(t *testing.T, name string, price int64, inventory int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "", "A plant", decimal.NewFromInt(price), inventory, nil)
	require.NoError(t, err)
	return product
}

func newTestAddress(t *testing.T, userID uuid.UUID) *identity.Address {
	t.Helper()
	address, err := identity.NewAddress(userID, "Sara Ahmadi", "Tehran", "Tehran", "12 Valiasr St", "1234567890", "+989123456789")
	require.NoError(t, err)
	return address
}

func newTestCart(t *testing.T, products map[*catalog.Product]int) *shopping.Cart {
	t.Helper()
	cart := shopping.NewCart()
	for product, quantity := range products {
		require.NoError(t, cart.AddItem(product, quantity))
	}
	return cart
}

func newPlacedOrder(t *testing.T, userID uuid.UUID, product *catalog.Product, quantity int) *trade.Order {
	t.Helper()
	order, err := trade.NewOrder(userID, newTestAddress(t, userID))
	require.NoError(t, err)
	require.NoError(t, order.AddItem(product.ID, product.Name, quantity, product.Price))
	require.NoError(t, order.Place())
	order.ClearDomainEvents()
	return order
}

func TestOrderServiceCreate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("places order from cart", func(t *testing.T) {
		f := newOrderFixture()
		product := newTestProduct(t, "Monstera", 120, 10)
		cart := newTestCart(t, map[*catalog.Product]int{product: 3})
		address := newTestAddress(t, userID)

		f.addressRepo.On("FindByID", ctx, address.ID).Return(address, nil)
		f.cartRepo.On("FindByID", ctx, cart.ID).Return(cart, nil)
		f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		f.productRepo.On("Save", ctx, product).Return(nil)
		f.orderRepo.On("Save", ctx, mock.AnythingOfType("*trade.Order")).Return(nil)
		f.cartRepo.On("Delete", ctx, cart.ID).Return(nil)
		f.eventBus.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := f.service.Create(ctx, userID, &CreateOrderRequest{CartID: cart.ID, AddressID: address.ID})
		require.NoError(t, err)

		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "pending", resp.PaymentStatus)
		assert.Equal(t, userID, resp.UserID)
		assert.Equal(t, "Sara Ahmadi", resp.ShippingAddress.ReceiverName)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 3, resp.Items[0].Quantity)
		assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(360)))

		// Stock was reserved
		assert.Equal(t, 7, product.Inventory)
		f.cartRepo.AssertCalled(t, "Delete", ctx, cart.ID)
	})

	t.Run("rejects foreign address", func(t *testing.T) {
		f := newOrderFixture()
		address := newTestAddress(t, uuid.New())
		f.addressRepo.On("FindByID", ctx, address.ID).Return(address, nil)

		_, err := f.service.Create(ctx, userID, &CreateOrderRequest{CartID: uuid.New(), AddressID: address.ID})
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", err.(*shared.DomainError).Code)
	})

	t.Run("rejects empty cart", func(t *testing.T) {
		f := newOrderFixture()
		cart := shopping.NewCart()
		address := newTestAddress(t, userID)
		f.addressRepo.On("FindByID", ctx, address.ID).Return(address, nil)
		f.cartRepo.On("FindByID", ctx, cart.ID).Return(cart, nil)

		_, err := f.service.Create(ctx, userID, &CreateOrderRequest{CartID: cart.ID, AddressID: address.ID})
		require.Error(t, err)
		assert.Equal(t, "EMPTY_ORDER", err.(*shared.DomainError).Code)
	})

	t.Run("fails when stock ran out since the cart was filled", func(t *testing.T) {
		f := newOrderFixture()
		product := newTestProduct(t, "Ficus", 80, 5)
		cart := newTestCart(t, map[*catalog.Product]int{product: 5})
		address := newTestAddress(t, userID)

		// Another checkout drained the stock in the meantime
		drained := newTestProduct(t, "Ficus", 80, 2)
		drained.BaseAggregateRoot = product.BaseAggregateRoot

		f.addressRepo.On("FindByID", ctx, address.ID).Return(address, nil)
		f.cartRepo.On("FindByID", ctx, cart.ID).Return(cart, nil)
		f.productRepo.On("FindByID", ctx, product.ID).Return(drained, nil)

		_, err := f.service.Create(ctx, userID, &CreateOrderRequest{CartID: cart.ID, AddressID: address.ID})
		require.Error(t, err)
		assert.Equal(t, "INSUFFICIENT_STOCK", err.(*shared.DomainError).Code)
		f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("fails when a product was deactivated", func(t *testing.T) {
		f := newOrderFixture()
		product := newTestProduct(t, "Cactus", 40, 5)
		cart := newTestCart(t, map[*catalog.Product]int{product: 1})
		address := newTestAddress(t, userID)

		product.Deactivate()
		f.addressRepo.On("FindByID", ctx, address.ID).Return(address, nil)
		f.cartRepo.On("FindByID", ctx, cart.ID).Return(cart, nil)
		f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := f.service.Create(ctx, userID, &CreateOrderRequest{CartID: cart.ID, AddressID: address.ID})
		require.Error(t, err)
		assert.Equal(t, "PRODUCT_UNAVAILABLE", err.(*shared.DomainError).Code)
	})
}

func TestOrderServiceGet(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	f := newOrderFixture()
	product := newTestProduct(t, "Monstera", 120, 10)
	order := newPlacedOrder(t, userID, product, 2)
	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

	t.Run("owner sees the order", func(t *testing.T) {
		resp, err := f.service.Get(ctx, userID, false, order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.ID, resp.ID)
	})

	t.Run("foreign orders read as missing", func(t *testing.T) {
		_, err := f.service.Get(ctx, uuid.New(), false, order.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("staff sees any order", func(t *testing.T) {
		resp, err := f.service.Get(ctx, uuid.New(), true, order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.ID, resp.ID)
	})
}

func TestOrderServiceListMine(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	f := newOrderFixture()
	product := newTestProduct(t, "Monstera", 120, 10)
	orders := []trade.Order{*newPlacedOrder(t, userID, product, 1)}

	f.orderRepo.On("FindByUser", ctx, userID, mock.AnythingOfType("shared.Filter")).Return(orders, nil)
	f.orderRepo.On("CountByUser", ctx, userID).Return(int64(1), nil)

	result, err := f.service.ListMine(ctx, userID, &OrderListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	assert.Len(t, result.Items, 1)
}

func TestOrderServiceCancel(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("restores inventory", func(t *testing.T) {
		f := newOrderFixture()
		product := newTestProduct(t, "Monstera", 120, 7)
		order := newPlacedOrder(t, userID, product, 3)

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		f.productRepo.On("Save", ctx, product).Return(nil)
		f.orderRepo.On("Save", ctx, order).Return(nil)
		f.eventBus.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := f.service.Cancel(ctx, userID, false, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, 10, product.Inventory)
	})

	t.Run("rejects shipped orders", func(t *testing.T) {
		f := newOrderFixture()
		product := newTestProduct(t, "Monstera", 120, 7)
		order := newPlacedOrder(t, userID, product, 1)
		require.NoError(t, order.TransitionTo(trade.OrderStatusProcessing))
		require.NoError(t, order.TransitionTo(trade.OrderStatusShipped))
		order.ClearDomainEvents()

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := f.service.Cancel(ctx, userID, false, order.ID)
		require.Error(t, err)
		assert.Equal(t, "INVALID_STATE", err.(*shared.DomainError).Code)
	})
}

func TestOrderServiceUpdateStatus(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("moves along the fulfilment chain", func(t *testing.T) {
		f := newOrderFixture()
		product := newTestProduct(t, "Monstera", 120, 7)
		order := newPlacedOrder(t, userID, product, 1)

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.orderRepo.On("Save", ctx, order).Return(nil)
		f.eventBus.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := f.service.UpdateStatus(ctx, order.ID, &UpdateOrderStatusRequest{Status: "processing"})
		require.NoError(t, err)
		assert.Equal(t, "processing", resp.Status)

		resp, err = f.service.UpdateStatus(ctx, order.ID, &UpdateOrderStatusRequest{Status: "shipped"})
		require.NoError(t, err)
		assert.Equal(t, "shipped", resp.Status)
	})

	t.Run("rejects skipping a step", func(t *testing.T) {
		f := newOrderFixture()
		product := newTestProduct(t, "Monstera", 120, 7)
		order := newPlacedOrder(t, userID, product, 1)

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := f.service.UpdateStatus(ctx, order.ID, &UpdateOrderStatusRequest{Status: "delivered"})
		require.Error(t, err)
		assert.Equal(t, "INVALID_STATE", err.(*shared.DomainError).Code)
	})

	t.Run("cancelling via status restores inventory", func(t *testing.T) {
		f := newOrderFixture()
		product := newTestProduct(t, "Monstera", 120, 7)
		order := newPlacedOrder(t, userID, product, 2)

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		f.productRepo.On("Save", ctx, product).Return(nil)
		f.orderRepo.On("Save", ctx, order).Return(nil)
		f.eventBus.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := f.service.UpdateStatus(ctx, order.ID, &UpdateOrderStatusRequest{Status: "cancelled"})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, 9, product.Inventory)
	})
}

func TestOrderServiceMarkPayment(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	f := newOrderFixture()
	product := newTestProduct(t, "Monstera", 120, 7)
	order := newPlacedOrder(t, userID, product, 1)

	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	f.orderRepo.On("Save", ctx, order).Return(nil)
	f.eventBus.On("Publish", ctx, mock.Anything).Return(nil)

	resp, err := f.service.MarkPayment(ctx, order.ID, &MarkPaymentRequest{Status: "paid"})
	require.NoError(t, err)
	assert.Equal(t, "paid", resp.PaymentStatus)

	// Payment outcome is recorded exactly once
	_, err = f.service.MarkPayment(ctx, order.ID, &MarkPaymentRequest{Status: "failed"})
	require.Error(t, err)
	assert.Equal(t, "INVALID_STATE", err.(*shared.DomainError).Code)
}
