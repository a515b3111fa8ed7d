package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plantstore/backend/internal/domain/identity"
	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/plantstore/backend/internal/domain/trade"
)

// OrderService handles checkout and order lifecycle use cases
type OrderService struct {
	orderRepo   trade.OrderRepository
	addressRepo identity.AddressRepository
	txScope     TransactionScope
	eventBus    shared.EventPublisher
	logger      *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo trade.OrderRepository,
	addressRepo identity.AddressRepository,
	txScope TransactionScope,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		addressRepo: addressRepo,
		txScope:     txScope,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Create turns a cart into a pending order shipped to one of the
// user's addresses. Inventory is decremented, unit prices are captured
// and the cart is deleted in a single transaction, so a concurrent
// checkout of the same stock fails cleanly instead of overselling.
func (s *OrderService) Create(ctx context.Context, userID uuid.UUID, req *CreateOrderRequest) (*OrderResponse, error) {
	address, err := s.addressRepo.FindByID(ctx, req.AddressID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Address not found")
		}
		return nil, err
	}
	if address.UserID != userID {
		return nil, shared.NewDomainError("NOT_FOUND", "Address not found")
	}

	var order *trade.Order
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		cart, err := repos.CartRepo().FindByID(ctx, req.CartID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("NOT_FOUND", "Cart not found")
			}
			return err
		}
		if len(cart.Items) == 0 {
			return shared.NewDomainError("EMPTY_ORDER", "Cart is empty")
		}

		order, err = trade.NewOrder(userID, address)
		if err != nil {
			return err
		}

		for i := range cart.Items {
			item := &cart.Items[i]

			// Re-read the product inside the transaction; the cart's
			// preloaded copy may be stale.
			product, err := repos.ProductRepo().FindByID(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("PRODUCT_UNAVAILABLE", "A product in the cart is no longer available")
				}
				return err
			}
			if !product.IsActive {
				return shared.NewDomainError("PRODUCT_UNAVAILABLE", "A product in the cart is no longer available")
			}

			if err := product.DecreaseInventory(item.Quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().Save(ctx, product); err != nil {
				return err
			}

			if err := order.AddItem(product.ID, product.Name, item.Quantity, product.Price); err != nil {
				return err
			}
		}

		if err := order.Place(); err != nil {
			return err
		}
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}

		return repos.CartRepo().Delete(ctx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	s.logger.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("total_price", order.TotalPrice.String()))

	return ToOrderResponse(order), nil
}

// Get returns an order visible to the viewer. Customers see only their
// own orders; staff see all of them.
func (s *OrderService) Get(ctx context.Context, viewerID uuid.UUID, isStaff bool, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.visibleOrder(ctx, viewerID, isStaff, orderID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// ListMine returns the calling user's orders, newest first
func (s *OrderService) ListMine(ctx context.Context, userID uuid.UUID, req *OrderListFilter) (*shared.Paginated[*OrderResponse], error) {
	filter := s.buildFilter(req)

	orders, err := s.orderRepo.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToOrderResponses(orders), total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListAll returns all orders for staff
func (s *OrderService) ListAll(ctx context.Context, req *OrderListFilter) (*shared.Paginated[*OrderResponse], error) {
	filter := s.buildFilter(req)

	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToOrderResponses(orders), total, filter.Page, filter.PageSize)
	return &result, nil
}

// Cancel aborts an order before shipment and restores the reserved
// inventory. Customers may cancel their own orders, staff any order.
func (s *OrderService) Cancel(ctx context.Context, viewerID uuid.UUID, isStaff bool, orderID uuid.UUID) (*OrderResponse, error) {
	if _, err := s.visibleOrder(ctx, viewerID, isStaff, orderID); err != nil {
		return nil, err
	}

	var order *trade.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		if err := order.Cancel(); err != nil {
			return err
		}

		for i := range order.Items {
			item := &order.Items[i]

			product, err := repos.ProductRepo().FindByID(ctx, item.ProductID)
			if err != nil {
				// The product row outlives the order item, but guard anyway
				if errors.Is(err, shared.ErrNotFound) {
					continue
				}
				return err
			}
			if err := product.RestoreInventory(item.Quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().Save(ctx, product); err != nil {
				return err
			}
		}

		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	s.logger.Info("order cancelled",
		zap.String("order_id", order.ID.String()),
		zap.Bool("by_staff", isStaff))

	return ToOrderResponse(order), nil
}

// UpdateStatus moves an order along the fulfilment chain. Moving to
// cancelled goes through Cancel so inventory is restored.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req *UpdateOrderStatusRequest) (*OrderResponse, error) {
	target := trade.OrderStatus(req.Status)
	if target == trade.OrderStatusCancelled {
		return s.Cancel(ctx, uuid.Nil, true, orderID)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.TransitionTo(target); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	s.logger.Info("order status updated",
		zap.String("order_id", order.ID.String()),
		zap.String("status", order.Status.String()))

	return ToOrderResponse(order), nil
}

// MarkPayment records the payment outcome of an order exactly once
func (s *OrderService) MarkPayment(ctx context.Context, orderID uuid.UUID, req *MarkPaymentRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.MarkPayment(trade.PaymentStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	s.logger.Info("payment recorded",
		zap.String("order_id", order.ID.String()),
		zap.String("payment_status", string(order.PaymentStatus)))

	return ToOrderResponse(order), nil
}

func (s *OrderService) visibleOrder(ctx context.Context, viewerID uuid.UUID, isStaff bool, orderID uuid.UUID) (*trade.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	// Foreign orders read as missing rather than forbidden so order
	// IDs cannot be probed
	if !isStaff && order.UserID != viewerID {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

func (s *OrderService) buildFilter(req *OrderListFilter) shared.Filter {
	filter := shared.DefaultFilter()
	if req != nil {
		if req.Page > 0 {
			filter.Page = req.Page
		}
		if req.PageSize > 0 {
			filter.PageSize = req.PageSize
		}
		if req.Status != "" {
			filter.Filters["status"] = req.Status
		}
	}
	return filter
}

func (s *OrderService) publishEvents(ctx context.Context, order *trade.Order) {
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish domain events", zap.Error(err))
	}
	order.ClearDomainEvents()
}
