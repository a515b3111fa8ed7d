package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantstore/backend/internal/interfaces/http/dto"
)

type validationFixture struct {
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname" binding:"max=50"`
	Quantity int    `json:"quantity" binding:"gte=1"`
}

func validate(t *testing.T, in validationFixture) error {
	t.Helper()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v.Struct(in)
}

func TestSetupValidatorUsesJSONFieldNames(t *testing.T) {
	SetupValidator()

	err := validate(t, validationFixture{Email: "not-an-email", Quantity: 1})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-1")
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "email", resp.Error.Details[0].Field)
	assert.Equal(t, "Invalid email format", resp.Error.Details[0].Message)
}

func TestFormatValidationErrors(t *testing.T) {
	SetupValidator()

	err := validate(t, validationFixture{Quantity: 0})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-42")
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeInvalidInput, resp.Error.Code)
	assert.Equal(t, "req-42", resp.Error.RequestID)

	fields := map[string]string{}
	for _, d := range resp.Error.Details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "This field is required", fields["email"])
	assert.Equal(t, "Must be greater than or equal to 1", fields["quantity"])
}

func TestFormatValidationErrorsNonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "req-7")

	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeInvalidInput, resp.Error.Code)
	assert.Empty(t, resp.Error.Details)
}
