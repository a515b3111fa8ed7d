package trade

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/plantstore/backend/internal/domain/trade"
	"github.com/plantstore/backend/internal/infrastructure/printing"
)

const invoiceTemplate = `
<style>
  body { font-family: sans-serif; font-size: 12px; color: #222; }
  h1 { font-size: 18px; margin-bottom: 0; }
  .meta { color: #666; margin-bottom: 16px; }
  table { width: 100%; border-collapse: collapse; margin-top: 12px; }
  th, td { border: 1px solid #ccc; padding: 6px 8px; text-align: left; }
  th { background: #f4f4f4; }
  td.num, th.num { text-align: right; }
  .total { font-weight: bold; }
  .address { margin-top: 8px; line-height: 1.5; }
</style>
<h1>Invoice</h1>
<div class="meta">
  Order {{.Order.ID}}<br>
  Placed {{.Order.CreatedAt.Format "2006-01-02 15:04"}}<br>
  Status: {{.Order.Status}} / payment {{.Order.PaymentStatus}}
</div>
<div class="address">
  <strong>{{.Order.ReceiverName}}</strong><br>
  {{.Order.Street}}<br>
  {{.Order.City}}, {{.Order.Province}} {{.Order.PostalCode}}<br>
  {{.Order.Phone}}
</div>
<table>
  <tr><th>Product</th><th class="num">Quantity</th><th class="num">Unit price</th><th class="num">Subtotal</th></tr>
  {{range .Items}}
  <tr>
    <td>{{.ProductName}}</td>
    <td class="num">{{.Quantity}}</td>
    <td class="num">{{.PricePerItem}}</td>
    <td class="num">{{.Subtotal}}</td>
  </tr>
  {{end}}
  <tr class="total"><td colspan="3">Total</td><td class="num">{{.Order.TotalPrice}}</td></tr>
</table>
`

// InvoiceService renders order invoices as PDF documents
type InvoiceService struct {
	orderRepo trade.OrderRepository
	renderer  printing.PDFRenderer
	tmpl      *template.Template
	logger    *zap.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	orderRepo trade.OrderRepository,
	renderer printing.PDFRenderer,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		orderRepo: orderRepo,
		renderer:  renderer,
		tmpl:      template.Must(template.New("invoice").Parse(invoiceTemplate)),
		logger:    logger,
	}
}

type invoiceItem struct {
	ProductName  string
	Quantity     int
	PricePerItem string
	Subtotal     string
}

type invoiceData struct {
	Order *trade.Order
	Items []invoiceItem
}

// Render produces the invoice PDF for an order. Customers can only
// render invoices for their own orders.
func (s *InvoiceService) Render(ctx context.Context, viewerID uuid.UUID, isStaff bool, orderID uuid.UUID) (*InvoiceResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isStaff && order.UserID != viewerID {
		return nil, shared.ErrNotFound
	}

	html, err := s.buildHTML(order)
	if err != nil {
		return nil, err
	}

	result, err := s.renderer.Render(ctx, &printing.RenderRequest{
		HTML:        html,
		PaperSize:   printing.PaperSizeA4,
		Orientation: printing.OrientationPortrait,
		Margins:     printing.Margins{Top: 15, Right: 15, Bottom: 15, Left: 15},
		Title:       fmt.Sprintf("Invoice %s", order.ID),
	})
	if err != nil {
		s.logger.Error("invoice rendering failed",
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("RENDER_FAILED", "Could not render the invoice")
	}

	s.logger.Info("invoice rendered",
		zap.String("order_id", order.ID.String()),
		zap.Int("pages", result.PageCount),
		zap.Duration("duration", result.RenderDuration))

	return &InvoiceResponse{
		OrderID:  order.ID,
		FileName: fmt.Sprintf("invoice-%s.pdf", order.ID),
		PDFData:  result.PDFData,
	}, nil
}

func (s *InvoiceService) buildHTML(order *trade.Order) (string, error) {
	data := invoiceData{Order: order}
	for i := range order.Items {
		item := &order.Items[i]
		data.Items = append(data.Items, invoiceItem{
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			PricePerItem: item.PricePerItem.StringFixed(2),
			Subtotal:     item.Subtotal().StringFixed(2),
		})
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute invoice template: %w", err)
	}
	return buf.String(), nil
}
