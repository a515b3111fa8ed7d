package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/plantstore/backend/internal/domain/identity"
	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks whether the fulfilment status may move to target
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusProcessing || target == OrderStatusCancelled
	case OrderStatusProcessing:
		return target == OrderStatusShipped || target == OrderStatusCancelled
	case OrderStatusShipped:
		return target == OrderStatusDelivered
	default:
		return false
	}
}

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return true
	}
	return false
}

// Order is a customer purchase created from a cart. Unit prices are
// captured at creation time and never change afterwards.
type Order struct {
	shared.BaseAggregateRoot
	UserID        uuid.UUID     `gorm:"type:uuid;not null;index"`
	Status        OrderStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	// Shipping address snapshot, kept even if the address is later
	// edited or deleted
	ReceiverName string          `gorm:"type:varchar(100);not null"`
	Province     string          `gorm:"type:varchar(100);not null"`
	City         string          `gorm:"type:varchar(100);not null"`
	Street       string          `gorm:"type:text;not null"`
	PostalCode   string          `gorm:"type:varchar(20);not null"`
	Phone        string          `gorm:"type:varchar(20);not null"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Items        []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one purchased product line. The product row must keep
// existing while order items reference it.
type OrderItem struct {
	shared.BaseEntity
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName  string          `gorm:"type:varchar(200);not null"`
	Quantity     int             `gorm:"not null"`
	PricePerItem decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal returns quantity times the captured unit price
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.PricePerItem.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrder creates a pending order for a user shipping to the given address
func NewOrder(userID uuid.UUID, address *identity.Address) (*Order, error) {
	if address == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Shipping address is required")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Status:            OrderStatusPending,
		PaymentStatus:     PaymentStatusPending,
		ReceiverName:      address.ReceiverName,
		Province:          address.Province,
		City:              address.City,
		Street:            address.Street,
		PostalCode:        address.PostalCode,
		Phone:             address.Phone,
		TotalPrice:        decimal.Zero,
	}

	return order, nil
}

// AddItem captures a product line at its current unit price
func (o *Order) AddItem(productID uuid.UUID, productName string, quantity int, pricePerItem decimal.Decimal) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if pricePerItem.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Price cannot be negative")
	}

	o.Items = append(o.Items, OrderItem{
		BaseEntity:   shared.NewBaseEntity(),
		OrderID:      o.ID,
		ProductID:    productID,
		ProductName:  productName,
		Quantity:     quantity,
		PricePerItem: pricePerItem,
	})
	o.recalculateTotal()

	return nil
}

// Place finalizes a newly built order and publishes the placed event
func (o *Order) Place() error {
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot place an order without items")
	}

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return nil
}

// TransitionTo moves the fulfilment status through the allowed chain
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Invalid order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}

	previous := o.Status
	o.Status = target
	o.touch()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))

	return nil
}

// Cancel aborts the order before shipment
func (o *Order) Cancel() error {
	if o.Status != OrderStatusPending && o.Status != OrderStatusProcessing {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}

	previous := o.Status
	o.Status = OrderStatusCancelled
	o.touch()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))

	return nil
}

// MarkPayment records the outcome of a payment attempt
func (o *Order) MarkPayment(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Invalid payment status")
	}
	if o.PaymentStatus != PaymentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Payment outcome was already recorded")
	}

	o.PaymentStatus = status
	o.touch()

	if status == PaymentStatusPaid {
		o.AddDomainEvent(NewOrderPaidEvent(o))
	}

	return nil
}

// IsCancellable reports whether the order may still be cancelled
func (o *Order) IsCancellable() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusProcessing
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Subtotal())
	}
	o.TotalPrice = total
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}
