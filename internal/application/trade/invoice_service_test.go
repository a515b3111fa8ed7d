package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/plantstore/backend/internal/infrastructure/printing"
)

type fakeRenderer struct {
	lastRequest *printing.RenderRequest
}

func (r *fakeRenderer) Render(_ context.Context, req *printing.RenderRequest) (*printing.RenderResult, error) {
	r.lastRequest = req
	return &printing.RenderResult{PDFData: []byte("%PDF-1.4 fake"), PageCount: 1}, nil
}

func (r *fakeRenderer) Close() error { return nil }

func TestInvoiceServiceRender(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	orderRepo := new(MockOrderRepository)
	renderer := &fakeRenderer{}
	service := NewInvoiceService(orderRepo, renderer, zap.NewNop())

	product := newTestProduct(t, "Monstera", 120, 10)
	order := newPlacedOrder(t, userID, product, 2)
	orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

	t.Run("renders invoice for the owner", func(t *testing.T) {
		resp, err := service.Render(ctx, userID, false, order.ID)
		require.NoError(t, err)

		assert.Equal(t, order.ID, resp.OrderID)
		assert.Contains(t, resp.FileName, order.ID.String())
		assert.NotEmpty(t, resp.PDFData)

		require.NotNil(t, renderer.lastRequest)
		assert.Equal(t, printing.PaperSizeA4, renderer.lastRequest.PaperSize)
		assert.Contains(t, renderer.lastRequest.HTML, "Monstera")
		assert.Contains(t, renderer.lastRequest.HTML, "240.00")
		assert.Contains(t, renderer.lastRequest.HTML, "Sara Ahmadi")
	})

	t.Run("hides foreign orders", func(t *testing.T) {
		_, err := service.Render(ctx, uuid.New(), false, order.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("staff renders any order", func(t *testing.T) {
		_, err := service.Render(ctx, uuid.New(), true, order.ID)
		assert.NoError(t, err)
	})
}
