package printing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaperSizeDimensions(t *testing.T) {
	w, h := PaperSizeA4.Dimensions()
	assert.Equal(t, 210, w)
	assert.Equal(t, 297, h)

	w, h = PaperSizeA5.Dimensions()
	assert.Equal(t, 148, w)
	assert.Equal(t, 210, h)
}

func TestPaperSizeIsValid(t *testing.T) {
	assert.True(t, PaperSizeA4.IsValid())
	assert.True(t, PaperSizeA5.IsValid())
	assert.False(t, PaperSize("LETTER").IsValid())
}

func TestEstimatePageCount(t *testing.T) {
	pdf := []byte("%PDF-1.4 /Type /Pages /Type /Page /Type /Page x")
	assert.Equal(t, 2, estimatePageCount(pdf))

	assert.Equal(t, 1, estimatePageCount([]byte("%PDF-1.4")))
}

func TestBuildCompleteHTML(t *testing.T) {
	r := &ChromedpRenderer{config: &ChromedpConfig{}}

	t.Run("wraps fragment", func(t *testing.T) {
		html := r.buildCompleteHTML(&RenderRequest{HTML: "<p>hi</p>", Title: "Invoice"})
		assert.Contains(t, html, "<!DOCTYPE html>")
		assert.Contains(t, html, "<title>Invoice</title>")
		assert.Contains(t, html, "<p>hi</p>")
	})

	t.Run("passes documents through", func(t *testing.T) {
		doc := "<!DOCTYPE html><html><body>x</body></html>"
		assert.Equal(t, doc, r.buildCompleteHTML(&RenderRequest{HTML: doc}))
	})
}

func TestRenderRejectsBadInput(t *testing.T) {
	r := &ChromedpRenderer{config: &ChromedpConfig{DefaultTimeout: defaultChromeTimeout, Scale: 1.0}}

	_, err := r.Render(context.Background(), nil)
	assert.Error(t, err)

	_, err = r.Render(context.Background(), &RenderRequest{HTML: "  "})
	assert.Error(t, err)

	_, err = r.Render(context.Background(), &RenderRequest{HTML: "<p>x</p>", PaperSize: "LETTER"})
	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeInvalidPaperSize, renderErr.Code)
}
