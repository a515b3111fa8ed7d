package identity

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/plantstore/backend/internal/domain/identity"
	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/plantstore/backend/internal/infrastructure/cache"
)

// OTP purposes
const (
	PurposeRegister         = "register"
	PurposeLogin            = "login"
	PurposeResetPassword    = "reset_password"
	PurposeChangeIdentifier = "change_identifier"
)

// OTPServiceConfig contains configuration for OTP issuance
type OTPServiceConfig struct {
	CodeLength int
	TTL        time.Duration
}

// DefaultOTPServiceConfig returns default configuration
func DefaultOTPServiceConfig() OTPServiceConfig {
	return OTPServiceConfig{
		CodeLength: 6,
		TTL:        120 * time.Second,
	}
}

// OTPService issues and verifies one-time passcodes keyed by the
// normalized identifier they are sent to.
type OTPService struct {
	store  cache.OTPStore
	config OTPServiceConfig
	logger *zap.Logger
}

// NewOTPService creates a new OTP service
func NewOTPService(store cache.OTPStore, config OTPServiceConfig, logger *zap.Logger) *OTPService {
	return &OTPService{
		store:  store,
		config: config,
		logger: logger,
	}
}

// Request issues a code for the target and purpose. The response is
// deliberately uniform so callers cannot probe which identifiers have
// accounts. While a previous code is still active the request is
// rejected with a rate-limit error.
func (s *OTPService) Request(ctx context.Context, req RequestOTPRequest) error {
	kind, target, err := identity.NormalizeIdentifier(req.Target)
	if err != nil {
		return shared.NewDomainError("INVALID_INPUT", "Target must be a valid email address or phone number")
	}

	code, err := s.generateCode()
	if err != nil {
		s.logger.Error("Failed to generate OTP code", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to issue verification code")
	}

	if err := s.store.Put(ctx, target, req.Purpose, code, s.config.TTL); err != nil {
		if errors.Is(err, cache.ErrCodeActive) {
			return shared.NewDomainError("TOO_MANY_REQUESTS", "A verification code was already sent. Wait for it to expire before requesting another")
		}
		s.logger.Error("Failed to store OTP code", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to issue verification code")
	}

	// Delivery transports (SMS, email) hang off this log in development.
	s.logger.Info("OTP issued",
		zap.String("target", target),
		zap.String("kind", string(kind)),
		zap.String("purpose", req.Purpose))

	return nil
}

// Verify checks a code for the target and purpose, consuming it on success
func (s *OTPService) Verify(ctx context.Context, target, purpose, code string) error {
	_, normalized, err := identity.NormalizeIdentifier(target)
	if err != nil {
		return shared.NewDomainError("INVALID_INPUT", "Target must be a valid email address or phone number")
	}

	if err := s.store.Verify(ctx, normalized, purpose, code); err != nil {
		switch {
		case errors.Is(err, cache.ErrTooManyAttempts):
			return shared.NewDomainError("TOO_MANY_REQUESTS", "Too many verification attempts. Request a new code")
		case errors.Is(err, cache.ErrCodeNotFound),
			errors.Is(err, cache.ErrCodeMismatch),
			errors.Is(err, cache.ErrPurposeMismatch):
			return shared.NewDomainError("INVALID_CODE", "Verification code is invalid or has expired")
		default:
			s.logger.Error("Failed to verify OTP code", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify code")
		}
	}

	return nil
}

func (s *OTPService) generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < s.config.CodeLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", s.config.CodeLength, n), nil
}
