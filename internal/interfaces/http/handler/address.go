package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/plantstore/backend/internal/application/identity"
	"github.com/plantstore/backend/internal/interfaces/http/middleware"
)

// AddressHandler handles the address book endpoints.
type AddressHandler struct {
	BaseHandler
	addressService *identityapp.AddressService
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(addressService *identityapp.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// List handles GET /addresses.
func (h *AddressHandler) List(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}

	addresses, err := h.addressService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addresses)
}

// Get handles GET /addresses/:id.
func (h *AddressHandler) Get(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}
	addressID, ok := uuidParam(&h.BaseHandler, c, "id")
	if !ok {
		return
	}

	resp, err := h.addressService.Get(c.Request.Context(), userID, middleware.IsStaff(c), addressID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Create handles POST /addresses.
func (h *AddressHandler) Create(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}

	var req identityapp.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.addressService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update handles PUT /addresses/:id.
func (h *AddressHandler) Update(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}
	addressID, ok := uuidParam(&h.BaseHandler, c, "id")
	if !ok {
		return
	}

	var req identityapp.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.addressService.Update(c.Request.Context(), userID, addressID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetDefault handles POST /addresses/:id/default.
func (h *AddressHandler) SetDefault(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}
	addressID, ok := uuidParam(&h.BaseHandler, c, "id")
	if !ok {
		return
	}

	if err := h.addressService.SetDefault(c.Request.Context(), userID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete handles DELETE /addresses/:id.
func (h *AddressHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}
	addressID, ok := uuidParam(&h.BaseHandler, c, "id")
	if !ok {
		return
	}

	if err := h.addressService.Delete(c.Request.Context(), userID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
