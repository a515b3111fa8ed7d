package cache

import (
	"context"
	"sync"
	"time"
)

type inMemoryOTPEntry struct {
	code      string
	purpose   string
	attempts  int
	expiresAt time.Time
}

// InMemoryOTPStore provides an in-memory OTP store for testing and
// single-instance development setups.
type InMemoryOTPStore struct {
	mu          sync.Mutex
	entries     map[string]*inMemoryOTPEntry
	maxAttempts int
	now         func() time.Time
}

// NewInMemoryOTPStore creates a new in-memory OTP store
func NewInMemoryOTPStore(maxAttempts int) *InMemoryOTPStore {
	return &InMemoryOTPStore{
		entries:     make(map[string]*inMemoryOTPEntry),
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Put stores a code for the target unless one is already active
func (s *InMemoryOTPStore) Put(_ context.Context, target, purpose, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[target]; ok && s.now().Before(entry.expiresAt) {
		return ErrCodeActive
	}

	s.entries[target] = &inMemoryOTPEntry{
		code:      code,
		purpose:   purpose,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

// Verify checks the code and consumes the entry on success
func (s *InMemoryOTPStore) Verify(_ context.Context, target, purpose, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[target]
	if !ok || s.now().After(entry.expiresAt) {
		delete(s.entries, target)
		return ErrCodeNotFound
	}

	if entry.attempts >= s.maxAttempts {
		delete(s.entries, target)
		return ErrTooManyAttempts
	}

	if entry.purpose != purpose || entry.code != code {
		entry.attempts++
		if entry.attempts >= s.maxAttempts {
			delete(s.entries, target)
			return ErrTooManyAttempts
		}
		if entry.purpose != purpose {
			return ErrPurposeMismatch
		}
		return ErrCodeMismatch
	}

	delete(s.entries, target)
	return nil
}

// Invalidate removes any active code for the target
func (s *InMemoryOTPStore) Invalidate(_ context.Context, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, target)
	return nil
}

var _ OTPStore = (*InMemoryOTPStore)(nil)
