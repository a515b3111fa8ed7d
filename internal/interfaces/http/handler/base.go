// Package handler implements the gin endpoint handlers for the store API.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/plantstore/backend/internal/i18n"
	"github.com/plantstore/backend/internal/interfaces/http/dto"
	"github.com/plantstore/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides shared response helpers. Domain handlers embed it.
type BaseHandler struct{}

// Success writes a 200 response with data.
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta writes a 200 response with data and pagination metadata.
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, meta *dto.Meta) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, meta))
}

// Paginated writes a 200 response from a paginated result, lifting the
// page bookkeeping into the response meta.
func Paginated[T any](h *BaseHandler, c *gin.Context, result *shared.Paginated[T]) {
	h.SuccessWithMeta(c, result.Items, dto.NewMeta(result.Total, result.Page, result.PageSize))
}

// Created writes a 201 response with data.
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent writes a 204 response.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Message writes a 200 response with a localized message payload.
func (h *BaseHandler) Message(c *gin.Context, key string) {
	loc := middleware.LocalizerFromContext(c)
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"message": loc.T(key)}))
}

// Error writes an error response for an explicit code and message.
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	requestID := c.GetString(middleware.RequestIDKey)
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// BadRequest writes a 400 response for malformed input.
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeInvalidInput, message)
}

// BindError writes a 400 response for a failed request binding, listing
// the offending fields when the validator produced them.
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	requestID := c.GetString(middleware.RequestIDKey)
	c.JSON(http.StatusBadRequest, middleware.FormatValidationErrors(err, requestID))
}

// HandleError maps an application error to an HTTP error response.
// Domain errors carry their own code and message; anything else becomes
// an opaque 500 so internals never leak to clients. Messages pass
// through the locale catalog, with the English text doubling as the
// catalog key.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	loc := middleware.LocalizerFromContext(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.NormalizeErrorCode(domainErr.Code), loc.T(domainErr.Message))
		return
	}

	h.Error(c, dto.ErrCodeInternalError, loc.T(i18n.MsgInternalError))
}
