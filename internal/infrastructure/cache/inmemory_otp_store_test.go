package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryOTPStore(t *testing.T) {
	ctx := context.Background()

	t.Run("put and verify consumes the code", func(t *testing.T) {
		store := NewInMemoryOTPStore(5)

		require.NoError(t, store.Put(ctx, "+989123456789", "register", "123456", 2*time.Minute))
		require.NoError(t, store.Verify(ctx, "+989123456789", "register", "123456"))

		err := store.Verify(ctx, "+989123456789", "register", "123456")
		assert.ErrorIs(t, err, ErrCodeNotFound)
	})

	t.Run("rejects second put while code is active", func(t *testing.T) {
		store := NewInMemoryOTPStore(5)

		require.NoError(t, store.Put(ctx, "user@example.com", "login", "111111", 2*time.Minute))
		err := store.Put(ctx, "user@example.com", "login", "222222", 2*time.Minute)
		assert.ErrorIs(t, err, ErrCodeActive)
	})

	t.Run("allows put after expiry", func(t *testing.T) {
		store := NewInMemoryOTPStore(5)
		now := time.Now()
		store.now = func() time.Time { return now }

		require.NoError(t, store.Put(ctx, "user@example.com", "login", "111111", 2*time.Minute))

		store.now = func() time.Time { return now.Add(3 * time.Minute) }
		require.NoError(t, store.Put(ctx, "user@example.com", "login", "222222", 2*time.Minute))
	})

	t.Run("wrong code then correct code", func(t *testing.T) {
		store := NewInMemoryOTPStore(5)

		require.NoError(t, store.Put(ctx, "user@example.com", "login", "111111", 2*time.Minute))

		err := store.Verify(ctx, "user@example.com", "login", "000000")
		assert.ErrorIs(t, err, ErrCodeMismatch)

		require.NoError(t, store.Verify(ctx, "user@example.com", "login", "111111"))
	})

	t.Run("purpose mismatch does not consume the code", func(t *testing.T) {
		store := NewInMemoryOTPStore(5)

		require.NoError(t, store.Put(ctx, "user@example.com", "reset_password", "111111", 2*time.Minute))

		err := store.Verify(ctx, "user@example.com", "login", "111111")
		assert.ErrorIs(t, err, ErrPurposeMismatch)

		require.NoError(t, store.Verify(ctx, "user@example.com", "reset_password", "111111"))
	})

	t.Run("attempt limit deletes the code", func(t *testing.T) {
		store := NewInMemoryOTPStore(3)

		require.NoError(t, store.Put(ctx, "user@example.com", "login", "111111", 2*time.Minute))

		for i := 0; i < 2; i++ {
			err := store.Verify(ctx, "user@example.com", "login", "000000")
			assert.ErrorIs(t, err, ErrCodeMismatch)
		}

		err := store.Verify(ctx, "user@example.com", "login", "000000")
		assert.ErrorIs(t, err, ErrTooManyAttempts)

		// Even the correct code is gone now
		err = store.Verify(ctx, "user@example.com", "login", "111111")
		assert.ErrorIs(t, err, ErrCodeNotFound)
	})

	t.Run("invalidate removes active code", func(t *testing.T) {
		store := NewInMemoryOTPStore(5)

		require.NoError(t, store.Put(ctx, "user@example.com", "login", "111111", 2*time.Minute))
		require.NoError(t, store.Invalidate(ctx, "user@example.com"))

		err := store.Verify(ctx, "user@example.com", "login", "111111")
		assert.ErrorIs(t, err, ErrCodeNotFound)
	})
}
