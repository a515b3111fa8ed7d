package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/plantstore/backend/internal/domain/identity"
	"github.com/plantstore/backend/internal/infrastructure/auth"
)

// RegisterRequest contains input for password-based registration
type RegisterRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required,min=8"`
}

// LoginRequest contains input for password-based login
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// RequestOTPRequest asks for a one-time code to be delivered to a target
type RequestOTPRequest struct {
	Target  string `json:"target" binding:"required"`
	Purpose string `json:"purpose" binding:"required,oneof=register login reset_password change_identifier"`
}

// VerifyOTPRequest completes an OTP flow
type VerifyOTPRequest struct {
	Target  string `json:"target" binding:"required"`
	Purpose string `json:"purpose" binding:"required,oneof=register login reset_password"`
	Code    string `json:"code" binding:"required"`
}

// RefreshRequest contains a refresh token to rotate
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest revokes a refresh token
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ResetPasswordRequest completes a password reset with a reset token
type ResetPasswordRequest struct {
	ResetToken  string `json:"reset_token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ChangePasswordRequest changes the password of an authenticated user
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UpdateProfileRequest contains partial profile updates
type UpdateProfileRequest struct {
	Nickname       string `json:"nickname" binding:"omitempty,max=100"`
	Gender         string `json:"gender" binding:"omitempty,oneof=male female other"`
	DateOfBirth    string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	ProfilePicture string `json:"profile_picture" binding:"omitempty,max=500"`
}

// RequestIdentifierChangeRequest starts an identifier change flow
type RequestIdentifierChangeRequest struct {
	NewIdentifier string `json:"new_identifier" binding:"required"`
}

// ConfirmIdentifierChangeRequest completes an identifier change flow
type ConfirmIdentifierChangeRequest struct {
	NewIdentifier string `json:"new_identifier" binding:"required"`
	Code          string `json:"code" binding:"required"`
}

// AddressRequest contains input for creating or updating an address
type AddressRequest struct {
	ReceiverName string `json:"receiver_name" binding:"required,max=100"`
	Province     string `json:"province" binding:"required,max=100"`
	City         string `json:"city" binding:"required,max=100"`
	Street       string `json:"street" binding:"required,max=300"`
	PostalCode   string `json:"postal_code" binding:"required,len=10,numeric"`
	Phone        string `json:"phone" binding:"required"`
	IsDefault    bool   `json:"is_default"`
}

// UserListFilter contains admin user listing parameters
type UserListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// TokenPairResponse is the authentication token payload
type TokenPairResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// AuthResponse is returned from register, login, and OTP verification
type AuthResponse struct {
	Tokens TokenPairResponse `json:"tokens"`
	User   UserResponse      `json:"user"`
}

// ResetTokenResponse carries the short-lived password reset token
type ResetTokenResponse struct {
	ResetToken string `json:"reset_token"`
}

// UserResponse is the API representation of a user
type UserResponse struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	Nickname       string     `json:"nickname,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	ProfilePicture string     `json:"profile_picture,omitempty"`
	IsStaff        bool       `json:"is_staff"`
	IsActive       bool       `json:"is_active"`
	EmailVerified  bool       `json:"email_verified"`
	PhoneVerified  bool       `json:"phone_verified"`
	CreatedAt      time.Time  `json:"created_at"`
}

// AddressResponse is the API representation of an address
type AddressResponse struct {
	ID           uuid.UUID `json:"id"`
	ReceiverName string    `json:"receiver_name"`
	Province     string    `json:"province"`
	City         string    `json:"city"`
	Street       string    `json:"street"`
	PostalCode   string    `json:"postal_code"`
	Phone        string    `json:"phone"`
	IsDefault    bool      `json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToUserResponse converts a domain user to its API representation
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		Phone:          user.Phone,
		Nickname:       user.Nickname,
		Gender:         string(user.Gender),
		DateOfBirth:    user.DateOfBirth,
		ProfilePicture: user.ProfilePicture,
		IsStaff:        user.IsStaff,
		IsActive:       user.IsActive,
		EmailVerified:  user.EmailVerified,
		PhoneVerified:  user.PhoneVerified,
		CreatedAt:      user.CreatedAt,
	}
}

// ToUserResponses converts a slice of domain users
func ToUserResponses(users []identity.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}

// ToAddressResponse converts a domain address to its API representation
func ToAddressResponse(address *identity.Address) AddressResponse {
	return AddressResponse{
		ID:           address.ID,
		ReceiverName: address.ReceiverName,
		Province:     address.Province,
		City:         address.City,
		Street:       address.Street,
		PostalCode:   address.PostalCode,
		Phone:        address.Phone,
		IsDefault:    address.IsDefault,
		CreatedAt:    address.CreatedAt,
	}
}

// ToAddressResponses converts a slice of domain addresses
func ToAddressResponses(addresses []identity.Address) []AddressResponse {
	responses := make([]AddressResponse, len(addresses))
	for i := range addresses {
		responses[i] = ToAddressResponse(&addresses[i])
	}
	return responses
}

func toTokenPairResponse(pair *auth.TokenPair) TokenPairResponse {
	return TokenPairResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}
}
