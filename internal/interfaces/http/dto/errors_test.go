package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "domain not found", in: "NOT_FOUND", want: ErrCodeNotFound},
		{name: "domain conflict", in: "ALREADY_EXISTS", want: ErrCodeAlreadyExists},
		{name: "stock shortage", in: "INSUFFICIENT_STOCK", want: ErrCodeInsufficientStock},
		{name: "token revoked", in: "TOKEN_REVOKED", want: ErrCodeTokenRevoked},
		{name: "canonical passes through", in: ErrCodeNotFound, want: ErrCodeNotFound},
		{name: "unknown passes through", in: "SOMETHING_ELSE", want: "SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeErrorCode(tt.in))
		})
	}
}

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus("NOT_FOUND"))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus("ALREADY_EXISTS"))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus("EMPTY_ORDER"))
	assert.Equal(t, http.StatusUnauthorized, GetHTTPStatus(ErrCodeTokenExpired))
	assert.Equal(t, http.StatusTooManyRequests, GetHTTPStatus("TOO_MANY_REQUESTS"))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("NO_SUCH_CODE"))
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(45, 2, 20)
	assert.Equal(t, int64(45), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	empty := NewMeta(0, 1, 20)
	assert.Equal(t, 0, empty.TotalPages)
}
