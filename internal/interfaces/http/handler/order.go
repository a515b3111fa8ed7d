package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	tradeapp "github.com/plantstore/backend/internal/application/trade"
	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/plantstore/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles checkout and order management endpoints.
type OrderHandler struct {
	BaseHandler
	orderService   *tradeapp.OrderService
	invoiceService *tradeapp.InvoiceService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *tradeapp.OrderService, invoiceService *tradeapp.InvoiceService) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		invoiceService: invoiceService,
	}
}

// Create handles POST /orders. Checkout consumes the cart: inventory is
// re-checked and decremented, unit prices are captured, and the cart is
// deleted in one transaction.
func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}

	var req tradeapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.orderService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /orders. Owners see their own orders; staff see all.
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}

	var filter tradeapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	var (
		result *shared.Paginated[*tradeapp.OrderResponse]
		err    error
	)
	if middleware.IsStaff(c) {
		result, err = h.orderService.ListAll(c.Request.Context(), &filter)
	} else {
		result, err = h.orderService.ListMine(c.Request.Context(), userID, &filter)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, result)
}

// Get handles GET /orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}
	orderID, ok := uuidParam(&h.BaseHandler, c, "id")
	if !ok {
		return
	}

	resp, err := h.orderService.Get(c.Request.Context(), userID, middleware.IsStaff(c), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel handles POST /orders/:id/cancel. Allowed from pending or
// processing; reserved inventory is restored.
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}
	orderID, ok := uuidParam(&h.BaseHandler, c, "id")
	if !ok {
		return
	}

	resp, err := h.orderService.Cancel(c.Request.Context(), userID, middleware.IsStaff(c), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

type adminOrderPatch struct {
	Status        string `json:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled"`
	PaymentStatus string `json:"payment_status" binding:"omitempty,oneof=paid failed"`
}

// AdminUpdate handles PATCH /admin/orders/:id. Staff only. Accepts a
// fulfillment status transition, a payment status transition, or both.
func (h *OrderHandler) AdminUpdate(c *gin.Context) {
	orderID, ok := uuidParam(&h.BaseHandler, c, "id")
	if !ok {
		return
	}

	var patch adminOrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.BindError(c, err)
		return
	}
	if patch.Status == "" && patch.PaymentStatus == "" {
		h.BadRequest(c, "status or payment_status is required")
		return
	}

	var (
		resp *tradeapp.OrderResponse
		err  error
	)
	if patch.Status != "" {
		resp, err = h.orderService.UpdateStatus(c.Request.Context(), orderID, &tradeapp.UpdateOrderStatusRequest{Status: patch.Status})
		if err != nil {
			h.HandleError(c, err)
			return
		}
	}
	if patch.PaymentStatus != "" {
		resp, err = h.orderService.MarkPayment(c.Request.Context(), orderID, &tradeapp.MarkPaymentRequest{Status: patch.PaymentStatus})
		if err != nil {
			h.HandleError(c, err)
			return
		}
	}
	h.Success(c, resp)
}

// Invoice handles GET /orders/:id/invoice, streaming the rendered PDF.
func (h *OrderHandler) Invoice(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}
	orderID, ok := uuidParam(&h.BaseHandler, c, "id")
	if !ok {
		return
	}

	resp, err := h.invoiceService.Render(c.Request.Context(), userID, middleware.IsStaff(c), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+resp.FileName+`"`)
	c.Header("Content-Length", strconv.Itoa(len(resp.PDFData)))
	c.Data(http.StatusOK, "application/pdf", resp.PDFData)
}
