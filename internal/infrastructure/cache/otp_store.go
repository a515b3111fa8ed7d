package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTP store errors
var (
	ErrCodeNotFound    = errors.New("no active code for target")
	ErrCodeActive      = errors.New("an active code already exists for target")
	ErrCodeMismatch    = errors.New("code does not match")
	ErrPurposeMismatch = errors.New("code was issued for a different purpose")
	ErrTooManyAttempts = errors.New("too many verification attempts")
)

// OTPStore persists one-time passcodes with a TTL and bounded verification
// attempts. A target is a normalized email address or phone number.
type OTPStore interface {
	// Put stores a code for the target. It fails with ErrCodeActive while a
	// previous code for the same target has not expired.
	Put(ctx context.Context, target, purpose, code string, ttl time.Duration) error

	// Verify checks the code for the target and purpose. The entry is
	// consumed on success and after the attempt limit is exhausted.
	Verify(ctx context.Context, target, purpose, code string) error

	// Invalidate removes any active code for the target.
	Invalidate(ctx context.Context, target string) error
}

type otpEntry struct {
	Code     string `json:"code"`
	Purpose  string `json:"purpose"`
	Attempts int    `json:"attempts"`
}

// RedisOTPStore implements OTPStore backed by Redis, one key per target.
type RedisOTPStore struct {
	client      *redis.Client
	maxAttempts int
}

// NewRedisOTPStore creates a Redis-backed OTP store
func NewRedisOTPStore(client *redis.Client, maxAttempts int) *RedisOTPStore {
	return &RedisOTPStore{client: client, maxAttempts: maxAttempts}
}

func otpKey(target string) string {
	return "otp:" + target
}

// Put stores a code for the target unless one is already active
func (s *RedisOTPStore) Put(ctx context.Context, target, purpose, code string, ttl time.Duration) error {
	payload, err := json.Marshal(otpEntry{Code: code, Purpose: purpose})
	if err != nil {
		return fmt.Errorf("failed to encode otp entry: %w", err)
	}

	ok, err := s.client.SetNX(ctx, otpKey(target), payload, ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	if !ok {
		return ErrCodeActive
	}
	return nil
}

// Verify checks the code and consumes the entry on success
func (s *RedisOTPStore) Verify(ctx context.Context, target, purpose, code string) error {
	key := otpKey(target)

	raw, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrCodeNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read otp: %w", err)
	}

	var entry otpEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return fmt.Errorf("failed to decode otp entry: %w", err)
	}

	if entry.Attempts >= s.maxAttempts {
		s.client.Del(ctx, key)
		return ErrTooManyAttempts
	}

	if entry.Purpose != purpose || entry.Code != code {
		entry.Attempts++
		if payload, mErr := json.Marshal(entry); mErr == nil {
			// KeepTTL preserves the original expiry across attempt updates
			s.client.Set(ctx, key, payload, redis.KeepTTL)
		}
		if entry.Attempts >= s.maxAttempts {
			s.client.Del(ctx, key)
			return ErrTooManyAttempts
		}
		if entry.Purpose != purpose {
			return ErrPurposeMismatch
		}
		return ErrCodeMismatch
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to consume otp: %w", err)
	}
	return nil
}

// Invalidate removes any active code for the target
func (s *RedisOTPStore) Invalidate(ctx context.Context, target string) error {
	if err := s.client.Del(ctx, otpKey(target)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate otp: %w", err)
	}
	return nil
}

var _ OTPStore = (*RedisOTPStore)(nil)
