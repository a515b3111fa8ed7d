package dto

import "net/http"

// Canonical API error codes. Handlers emit these; domain error codes
// are normalized through LegacyErrorCodeMapping before leaving the
// process.
const (
	// Generic
	ErrCodeInternalError  = "ERR_INTERNAL"
	ErrCodeNotFound       = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists  = "ERR_ALREADY_EXISTS"
	ErrCodeInvalidInput   = "ERR_INVALID_INPUT"
	ErrCodeInvalidState   = "ERR_INVALID_STATE"
	ErrCodeConflict       = "ERR_CONFLICT"
	ErrCodeRequestTooBig  = "ERR_REQUEST_TOO_LARGE"
	ErrCodeTooManyRequest = "ERR_TOO_MANY_REQUESTS"

	// Authentication and authorization
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeAccountDeactivated = "ERR_ACCOUNT_DEACTIVATED"
	ErrCodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "ERR_TOKEN_INVALID"
	ErrCodeTokenRevoked       = "ERR_TOKEN_REVOKED"
	ErrCodeTokenMaxRefresh    = "ERR_TOKEN_MAX_REFRESH"

	// Store domain
	ErrCodeInsufficientStock  = "ERR_INSUFFICIENT_STOCK"
	ErrCodeEmptyOrder         = "ERR_EMPTY_ORDER"
	ErrCodeProductUnavailable = "ERR_PRODUCT_UNAVAILABLE"
	ErrCodeRenderFailed       = "ERR_RENDER_FAILED"
)

// ErrorCodeHTTPStatus maps canonical error codes to HTTP status codes.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternalError:  http.StatusInternalServerError,
	ErrCodeNotFound:       http.StatusNotFound,
	ErrCodeAlreadyExists:  http.StatusConflict,
	ErrCodeInvalidInput:   http.StatusBadRequest,
	ErrCodeInvalidState:   http.StatusUnprocessableEntity,
	ErrCodeConflict:       http.StatusConflict,
	ErrCodeRequestTooBig:  http.StatusRequestEntityTooLarge,
	ErrCodeTooManyRequest: http.StatusTooManyRequests,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeAccountDeactivated: http.StatusForbidden,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,
	ErrCodeTokenMaxRefresh:    http.StatusUnauthorized,

	ErrCodeInsufficientStock:  http.StatusUnprocessableEntity,
	ErrCodeEmptyOrder:         http.StatusUnprocessableEntity,
	ErrCodeProductUnavailable: http.StatusUnprocessableEntity,
	ErrCodeRenderFailed:       http.StatusInternalServerError,
}

// LegacyErrorCodeMapping translates domain-layer error codes to their
// canonical wire codes. Domain packages stay free of HTTP concerns and
// report in their own vocabulary.
var LegacyErrorCodeMapping = map[string]string{
	"INTERNAL_ERROR":       ErrCodeInternalError,
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"INVALID_IDENTIFIER":   ErrCodeInvalidInput,
	"INVALID_EMAIL":        ErrCodeInvalidInput,
	"INVALID_PHONE":        ErrCodeInvalidInput,
	"INVALID_CODE":         ErrCodeInvalidInput,
	"INVALID_PASSWORD":     ErrCodeInvalidInput,
	"INVALID_CATEGORY":     ErrCodeInvalidInput,
	"PASSWORD_HASH_ERROR":  ErrCodeInternalError,
	"CONCURRENCY_CONFLICT": ErrCodeConflict,
	"TOO_MANY_REQUESTS":    ErrCodeTooManyRequest,

	"UNAUTHORIZED":        ErrCodeUnauthorized,
	"FORBIDDEN":           ErrCodeForbidden,
	"INVALID_CREDENTIALS": ErrCodeInvalidCredentials,
	"ACCOUNT_DEACTIVATED": ErrCodeAccountDeactivated,
	"TOKEN_EXPIRED":       ErrCodeTokenExpired,
	"TOKEN_INVALID":       ErrCodeTokenInvalid,
	"TOKEN_REVOKED":       ErrCodeTokenRevoked,
	"TOKEN_MAX_REFRESH":   ErrCodeTokenMaxRefresh,

	"INSUFFICIENT_STOCK":  ErrCodeInsufficientStock,
	"EMPTY_ORDER":         ErrCodeEmptyOrder,
	"PRODUCT_UNAVAILABLE": ErrCodeProductUnavailable,
	"RENDER_FAILED":       ErrCodeRenderFailed,
}

// NormalizeErrorCode converts any error code to its canonical form.
// Unknown codes pass through unchanged.
func NormalizeErrorCode(code string) string {
	if normalized, ok := LegacyErrorCodeMapping[code]; ok {
		return normalized
	}
	return code
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting
// to 500 for codes that carry no mapping.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[NormalizeErrorCode(code)]; ok {
		return status
	}
	return http.StatusInternalServerError
}
