package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/plantstore/backend/internal/infrastructure/cache"
)

func newOTPFixture(maxAttempts int) (*OTPService, *cache.InMemoryOTPStore) {
	store := cache.NewInMemoryOTPStore(maxAttempts)
	svc := NewOTPService(store, DefaultOTPServiceConfig(), zap.NewNop())
	return svc, store
}

func TestOTPService_Request(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a code for a phone target", func(t *testing.T) {
		svc, _ := newOTPFixture(5)

		err := svc.Request(ctx, RequestOTPRequest{Target: "09123456789", Purpose: PurposeLogin})
		require.NoError(t, err)
	})

	t.Run("rejects invalid target", func(t *testing.T) {
		svc, _ := newOTPFixture(5)

		err := svc.Request(ctx, RequestOTPRequest{Target: "12345", Purpose: PurposeLogin})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})

	t.Run("rate limits while a code is active", func(t *testing.T) {
		svc, _ := newOTPFixture(5)

		require.NoError(t, svc.Request(ctx, RequestOTPRequest{Target: "user@example.com", Purpose: PurposeLogin}))

		err := svc.Request(ctx, RequestOTPRequest{Target: "user@example.com", Purpose: PurposeLogin})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOO_MANY_REQUESTS", domainErr.Code)
	})

	t.Run("normalizes the target before storing", func(t *testing.T) {
		svc, store := newOTPFixture(5)

		require.NoError(t, svc.Request(ctx, RequestOTPRequest{Target: "09123456789", Purpose: PurposeLogin}))

		// The same number in international form hits the same key
		err := store.Put(ctx, "+989123456789", PurposeLogin, "000000", time.Minute)
		assert.ErrorIs(t, err, cache.ErrCodeActive)
	})
}

func TestOTPService_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("verifies and consumes a code", func(t *testing.T) {
		svc, store := newOTPFixture(5)
		require.NoError(t, store.Put(ctx, "+989123456789", PurposeLogin, "123456", time.Minute))

		require.NoError(t, svc.Verify(ctx, "09123456789", PurposeLogin, "123456"))

		err := svc.Verify(ctx, "09123456789", PurposeLogin, "123456")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CODE", domainErr.Code)
	})

	t.Run("maps exhausted attempts to a rate limit error", func(t *testing.T) {
		svc, store := newOTPFixture(2)
		require.NoError(t, store.Put(ctx, "user@example.com", PurposeLogin, "123456", time.Minute))

		err := svc.Verify(ctx, "user@example.com", PurposeLogin, "000000")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CODE", domainErr.Code)

		err = svc.Verify(ctx, "user@example.com", PurposeLogin, "000000")
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOO_MANY_REQUESTS", domainErr.Code)
	})

	t.Run("does not accept a code issued for another purpose", func(t *testing.T) {
		svc, store := newOTPFixture(5)
		require.NoError(t, store.Put(ctx, "user@example.com", PurposeResetPassword, "123456", time.Minute))

		err := svc.Verify(ctx, "user@example.com", PurposeLogin, "123456")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CODE", domainErr.Code)
	})
}
