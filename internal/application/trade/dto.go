package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/plantstore/backend/internal/domain/trade"
)

// CreateOrderRequest represents a checkout request turning a cart into an order
type CreateOrderRequest struct {
	CartID    uuid.UUID `json:"cart_id" binding:"required"`
	AddressID uuid.UUID `json:"address_id" binding:"required"`
}

// UpdateOrderStatusRequest represents a fulfilment status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
}

// MarkPaymentRequest records the outcome of a payment attempt
type MarkPaymentRequest struct {
	Status string `json:"status" binding:"required,oneof=paid failed"`
}

// OrderListFilter represents order listing parameters
type OrderListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OrderItemResponse represents one purchased line in API responses
type OrderItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	PricePerItem decimal.Decimal `json:"price_per_item"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// ShippingAddressResponse is the address snapshot captured at checkout
type ShippingAddressResponse struct {
	ReceiverName string `json:"receiver_name"`
	Province     string `json:"province"`
	City         string `json:"city"`
	Street       string `json:"street"`
	PostalCode   string `json:"postal_code"`
	Phone        string `json:"phone"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID               `json:"id"`
	UserID          uuid.UUID               `json:"user_id"`
	Status          string                  `json:"status"`
	PaymentStatus   string                  `json:"payment_status"`
	ShippingAddress ShippingAddressResponse `json:"shipping_address"`
	Items           []OrderItemResponse     `json:"items"`
	TotalPrice      decimal.Decimal         `json:"total_price"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// InvoiceResponse carries a rendered invoice document
type InvoiceResponse struct {
	OrderID  uuid.UUID `json:"order_id"`
	FileName string    `json:"file_name"`
	PDFData  []byte    `json:"-"`
}

// ToOrderResponse converts an order to its response representation
func ToOrderResponse(order *trade.Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		items = append(items, OrderItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			PricePerItem: item.PricePerItem,
			Subtotal:     item.Subtotal(),
		})
	}

	return &OrderResponse{
		ID:            order.ID,
		UserID:        order.UserID,
		Status:        order.Status.String(),
		PaymentStatus: string(order.PaymentStatus),
		ShippingAddress: ShippingAddressResponse{
			ReceiverName: order.ReceiverName,
			Province:     order.Province,
			City:         order.City,
			Street:       order.Street,
			PostalCode:   order.PostalCode,
			Phone:        order.Phone,
		},
		Items:      items,
		TotalPrice: order.TotalPrice,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []trade.Order) []*OrderResponse {
	responses := make([]*OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses
}
