package handler

import (
	"github.com/gin-gonic/gin"

	shoppingapp "github.com/plantstore/backend/internal/application/shopping"
)

// WishlistHandler handles the authenticated wishlist endpoints.
type WishlistHandler struct {
	BaseHandler
	wishlistService *shoppingapp.WishlistService
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(wishlistService *shoppingapp.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// List handles GET /wishlist.
func (h *WishlistHandler) List(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}

	items, err := h.wishlistService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Add handles POST /wishlist. Duplicates are a conflict.
func (h *WishlistHandler) Add(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}

	var req shoppingapp.AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.wishlistService.Add(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Remove handles DELETE /wishlist/:product_id.
func (h *WishlistHandler) Remove(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}
	productID, ok := uuidParam(&h.BaseHandler, c, "product_id")
	if !ok {
		return
	}

	if err := h.wishlistService.Remove(c.Request.Context(), userID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
