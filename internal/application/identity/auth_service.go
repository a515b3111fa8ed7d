package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plantstore/backend/internal/domain/identity"
	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/plantstore/backend/internal/infrastructure/auth"
)

// AuthService handles registration, authentication, and token lifecycle
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	otpService *OTPService
	eventBus   shared.EventPublisher
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	otpService *OTPService,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		otpService: otpService,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// Register creates an account from an identifier and password
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	kind, normalized, err := identity.NormalizeIdentifier(req.Identifier)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Identifier must be a valid email address or phone number")
	}

	exists, err := s.userRepo.ExistsByIdentifier(ctx, kind, normalized)
	if err != nil {
		s.logger.Error("Failed to check identifier uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register")
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this identifier already exists")
	}

	user, err := identity.NewUser(req.Identifier, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register")
	}

	s.publishEvents(ctx, user)

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("kind", string(kind)))

	return s.authResponse(user)
}

// Login authenticates an identifier and password and returns tokens
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	kind, normalized, err := identity.NormalizeIdentifier(req.Identifier)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid identifier or password")
	}

	user, err := s.userRepo.FindByIdentifier(ctx, kind, normalized)
	if err != nil {
		s.logger.Warn("Login for unknown identifier", zap.String("kind", string(kind)))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid identifier or password")
	}

	if !user.IsActive {
		s.logger.Warn("Login for deactivated account", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid identifier or password")
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))

	return s.authResponse(user)
}

// VerifyOTP completes an OTP flow. For register it provisions a verified
// account when none exists; for login it signs in an existing account; for
// reset_password it returns a short-lived reset token.
func (s *AuthService) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*AuthResponse, *ResetTokenResponse, error) {
	kind, normalized, err := identity.NormalizeIdentifier(req.Target)
	if err != nil {
		return nil, nil, shared.NewDomainError("INVALID_INPUT", "Target must be a valid email address or phone number")
	}

	if err := s.otpService.Verify(ctx, normalized, req.Purpose, req.Code); err != nil {
		return nil, nil, err
	}

	switch req.Purpose {
	case PurposeRegister:
		user, err := s.userRepo.FindByIdentifier(ctx, kind, normalized)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				s.logger.Error("Failed to look up user during OTP registration", zap.Error(err))
				return nil, nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register")
			}
			user, err = identity.NewVerifiedUser(normalized)
			if err != nil {
				return nil, nil, err
			}
			if err := s.userRepo.Save(ctx, user); err != nil {
				s.logger.Error("Failed to save user", zap.Error(err))
				return nil, nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register")
			}
			s.publishEvents(ctx, user)
			s.logger.Info("User registered via OTP", zap.String("user_id", user.ID.String()))
		} else {
			user.MarkVerified(kind)
			if err := s.userRepo.Save(ctx, user); err != nil {
				s.logger.Error("Failed to mark user verified", zap.Error(err))
			}
		}
		resp, err := s.authResponse(user)
		return resp, nil, err

	case PurposeLogin:
		user, err := s.findActiveUser(ctx, kind, normalized)
		if err != nil {
			return nil, nil, err
		}
		s.logger.Info("User logged in via OTP", zap.String("user_id", user.ID.String()))
		resp, err := s.authResponse(user)
		return resp, nil, err

	case PurposeResetPassword:
		user, err := s.findActiveUser(ctx, kind, normalized)
		if err != nil {
			return nil, nil, err
		}
		resetToken, err := s.jwtService.GenerateResetToken(user.ID)
		if err != nil {
			s.logger.Error("Failed to generate reset token", zap.Error(err))
			return nil, nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to start password reset")
		}
		return nil, &ResetTokenResponse{ResetToken: resetToken}, nil

	default:
		return nil, nil, shared.NewDomainError("INVALID_INPUT", "Unsupported verification purpose")
	}
}

// Refresh rotates a refresh token into a new token pair. The old refresh
// token is blacklisted for its remaining lifetime so it cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*TokenPairResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	if err := s.checkNotRevoked(ctx, claims); err != nil {
		return nil, err
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("User not found during token refresh", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	pair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, user.IsStaff)
	if err != nil {
		return nil, mapTokenError(err)
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to blacklist rotated refresh token", zap.Error(err))
	}

	resp := toTokenPairResponse(pair)
	return &resp, nil
}

// Logout revokes the refresh token
func (s *AuthService) Logout(ctx context.Context, req LogoutRequest) error {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return mapTokenError(err)
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to blacklist refresh token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}

	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// ResetPassword sets a new password using a reset token and revokes every
// session issued before the reset.
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	claims, err := s.jwtService.ValidateResetToken(req.ResetToken)
	if err != nil {
		return mapTokenError(err)
	}

	if err := s.checkNotRevoked(ctx, claims); err != nil {
		return err
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return shared.NewDomainError("TOKEN_INVALID", "Invalid reset token")
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user after password reset", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reset password")
	}

	// Consume the reset token and force re-authentication everywhere
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to blacklist reset token", zap.Error(err))
	}
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, user.ID.String(), s.jwtService.GetRefreshTokenExpiration()); err != nil {
		s.logger.Error("Failed to invalidate user sessions after password reset", zap.Error(err))
	}

	s.logger.Info("Password reset completed", zap.String("user_id", user.ID.String()))
	return nil
}

// ChangePassword changes the password of an authenticated user
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return shared.NewDomainError("NOT_FOUND", "User not found")
	}

	if !user.VerifyPassword(req.OldPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user after password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to change password")
	}

	s.logger.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

// CheckAccessToken verifies an access token against the blacklist in
// addition to its signature. Used by the authentication middleware.
func (s *AuthService) CheckAccessToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateAccessToken(token)
	if err != nil {
		return nil, mapTokenError(err)
	}
	if err := s.checkNotRevoked(ctx, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *AuthService) findActiveUser(ctx context.Context, kind identity.IdentifierKind, normalized string) (*identity.User, error) {
	user, err := s.userRepo.FindByIdentifier(ctx, kind, normalized)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "No account exists for this identifier")
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}
	return user, nil
}

// checkNotRevoked fails open: if the blacklist backend is unreachable
// a valid token stays valid, so a redis outage degrades revocation
// instead of taking down every authenticated request.
func (s *AuthService) checkNotRevoked(ctx context.Context, claims *auth.Claims) error {
	blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Failed to check token blacklist", zap.Error(err))
	} else if blacklisted {
		return shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	}

	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		s.logger.Error("Failed to check user token invalidation", zap.Error(err))
	} else if invalidated {
		return shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	}

	return nil
}

func (s *AuthService) authResponse(user *identity.User) (*AuthResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:  user.ID,
		IsStaff: user.IsStaff,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	return &AuthResponse{
		Tokens: toTokenPairResponse(pair),
		User:   ToUserResponse(user),
	}, nil
}

func (s *AuthService) publishEvents(ctx context.Context, user *identity.User) {
	events := user.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish domain events", zap.Error(err))
	}
	user.ClearDomainEvents()
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid token")
	}
}
