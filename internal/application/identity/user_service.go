package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plantstore/backend/internal/domain/identity"
	"github.com/plantstore/backend/internal/domain/shared"
)

// UserService handles profile management and staff user administration
type UserService struct {
	userRepo   identity.UserRepository
	otpService *OTPService
	logger     *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, otpService *OTPService, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:   userRepo,
		otpService: otpService,
		logger:     logger,
	}
}

// GetProfile returns the profile of a user
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found")
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies a partial profile update
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found")
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Date of birth must be in YYYY-MM-DD format")
		}
		dob = &parsed
	}

	if err := user.UpdateProfile(req.Nickname, identity.Gender(req.Gender), dob); err != nil {
		return nil, err
	}

	if req.ProfilePicture != "" {
		if err := user.SetProfilePicture(req.ProfilePicture); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save profile", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// RequestIdentifierChange starts an identifier change by sending a code to
// the requested new identifier.
func (s *UserService) RequestIdentifierChange(ctx context.Context, userID uuid.UUID, req RequestIdentifierChangeRequest) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return shared.NewDomainError("NOT_FOUND", "User not found")
	}

	kind, normalized, err := identity.NormalizeIdentifier(req.NewIdentifier)
	if err != nil {
		return shared.NewDomainError("INVALID_INPUT", "Identifier must be a valid email address or phone number")
	}

	taken, err := s.userRepo.ExistsByIdentifier(ctx, kind, normalized)
	if err != nil {
		s.logger.Error("Failed to check identifier uniqueness", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to start identifier change")
	}
	if taken {
		return shared.NewDomainError("ALREADY_EXISTS", "An account with this identifier already exists")
	}

	return s.otpService.Request(ctx, RequestOTPRequest{
		Target:  normalized,
		Purpose: PurposeChangeIdentifier,
	})
}

// ConfirmIdentifierChange verifies the code sent to the new identifier
// and applies the change.
func (s *UserService) ConfirmIdentifierChange(ctx context.Context, userID uuid.UUID, req ConfirmIdentifierChangeRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found")
	}

	kind, normalized, err := identity.NormalizeIdentifier(req.NewIdentifier)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Identifier must be a valid email address or phone number")
	}

	if err := s.otpService.Verify(ctx, normalized, PurposeChangeIdentifier, req.Code); err != nil {
		return nil, err
	}

	// Re-check: another account may have claimed it while the code was live
	taken, err := s.userRepo.ExistsByIdentifier(ctx, kind, normalized)
	if err != nil {
		s.logger.Error("Failed to check identifier uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to change identifier")
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this identifier already exists")
	}

	user.ChangeIdentifier(kind, normalized)

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user after identifier change", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to change identifier")
	}

	s.logger.Info("Identifier changed",
		zap.String("user_id", userID.String()),
		zap.String("kind", string(kind)))

	resp := ToUserResponse(user)
	return &resp, nil
}

// ListUsers returns a page of users for staff administration
func (s *UserService) ListUsers(ctx context.Context, filter UserListFilter) (*shared.Paginated[UserResponse], error) {
	f := shared.DefaultFilter()
	f.Search = filter.Search
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}

	users, err := s.userRepo.FindAll(ctx, f)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}

	total, err := s.userRepo.Count(ctx, f)
	if err != nil {
		s.logger.Error("Failed to count users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}

	result := shared.NewPaginated(ToUserResponses(users), total, f.Page, f.PageSize)
	return &result, nil
}

// DeactivateUser disables an account so it can no longer authenticate
func (s *UserService) DeactivateUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return shared.NewDomainError("NOT_FOUND", "User not found")
	}

	user.Deactivate()

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to deactivate user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to deactivate user")
	}

	s.logger.Info("User deactivated", zap.String("user_id", userID.String()))
	return nil
}
