package handler

import (
	"github.com/gin-gonic/gin"

	shoppingapp "github.com/plantstore/backend/internal/application/shopping"
)

// CartHandler handles anonymous cart endpoints. A cart UUID is its only
// credential.
type CartHandler struct {
	BaseHandler
	cartService *shoppingapp.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *shoppingapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Create handles POST /carts.
func (h *CartHandler) Create(c *gin.Context) {
	resp, err := h.cartService.Create(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /carts/:id.
func (h *CartHandler) Get(c *gin.Context) {
	cartID, ok := uuidParam(&h.BaseHandler, c, "id")
	if !ok {
		return
	}

	resp, err := h.cartService.Get(c.Request.Context(), cartID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItem handles POST /carts/:id/items. Adding a product already in
// the cart merges quantities.
func (h *CartHandler) AddItem(c *gin.Context) {
	cartID, ok := uuidParam(&h.BaseHandler, c, "id")
	if !ok {
		return
	}

	var req shoppingapp.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.cartService.AddItem(c.Request.Context(), cartID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateItem handles PUT /carts/:id/items/:item_id.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	cartID, ok := uuidParam(&h.BaseHandler, c, "id")
	if !ok {
		return
	}
	itemID, ok := uuidParam(&h.BaseHandler, c, "item_id")
	if !ok {
		return
	}

	var req shoppingapp.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.cartService.UpdateItem(c.Request.Context(), cartID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem handles DELETE /carts/:id/items/:item_id.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID, ok := uuidParam(&h.BaseHandler, c, "id")
	if !ok {
		return
	}
	itemID, ok := uuidParam(&h.BaseHandler, c, "item_id")
	if !ok {
		return
	}

	resp, err := h.cartService.RemoveItem(c.Request.Context(), cartID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /carts/:id.
func (h *CartHandler) Delete(c *gin.Context) {
	cartID, ok := uuidParam(&h.BaseHandler, c, "id")
	if !ok {
		return
	}

	if err := h.cartService.Delete(c.Request.Context(), cartID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
