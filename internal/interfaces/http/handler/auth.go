package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/plantstore/backend/internal/application/identity"
	"github.com/plantstore/backend/internal/i18n"
)

// AuthHandler handles registration, login, token, and OTP endpoints.
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	otpService  *identityapp.OTPService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *identityapp.AuthService, otpService *identityapp.OTPService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		otpService:  otpService,
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RequestOTP handles POST /auth/otp/request. The response is identical
// whether or not an account exists for the target.
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req identityapp.RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.otpService.Request(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, i18n.MsgOTPSent)
}

// VerifyOTP handles POST /auth/otp/verify. The payload depends on the
// purpose: register and login yield a token pair, reset_password yields
// a short-lived reset token.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req identityapp.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	authResp, resetResp, err := h.authService.VerifyOTP(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if resetResp != nil {
		h.Success(c, resetResp)
		return
	}
	h.Success(c, authResp)
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identityapp.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req identityapp.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, i18n.MsgLoggedOut)
}

// ResetPassword handles POST /auth/password/reset.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req identityapp.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, i18n.MsgPasswordReset)
}

// ChangePassword handles POST /auth/password/change.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}

	var req identityapp.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, i18n.MsgPasswordChanged)
}
