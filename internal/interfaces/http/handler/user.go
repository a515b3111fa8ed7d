package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/plantstore/backend/internal/application/identity"
	"github.com/plantstore/backend/internal/i18n"
)

// UserHandler handles profile and staff user-management endpoints.
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile handles GET /profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}

	resp, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateProfile handles PATCH /profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}

	var req identityapp.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RequestIdentifierChange handles POST /profile/identifier/change.
// A verification code is sent to the new identifier; the change takes
// effect only after confirmation.
func (h *UserHandler) RequestIdentifierChange(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}

	var req identityapp.RequestIdentifierChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.userService.RequestIdentifierChange(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, i18n.MsgIdentifierChangeSent)
}

// ConfirmIdentifierChange handles POST /profile/identifier/confirm.
func (h *UserHandler) ConfirmIdentifierChange(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}

	var req identityapp.ConfirmIdentifierChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.userService.ConfirmIdentifierChange(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListUsers handles GET /admin/users. Staff only.
func (h *UserHandler) ListUsers(c *gin.Context) {
	var filter identityapp.UserListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.userService.ListUsers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, result)
}

// GetUser handles GET /admin/users/:id. Staff only.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := uuidParam(&h.BaseHandler, c, "id")
	if !ok {
		return
	}

	resp, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeactivateUser handles POST /admin/users/:id/deactivate. Staff only.
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	userID, ok := uuidParam(&h.BaseHandler, c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeactivateUser(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
