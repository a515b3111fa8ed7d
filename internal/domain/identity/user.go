package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/plantstore/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Gender represents a user's self-reported gender
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// IsValid checks the gender value
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Password cost for bcrypt
const bcryptCost = 12

// User is the aggregate root for customer accounts. A user signs in
// with an email address or an Iranian mobile number; at least one of
// the two must be present.
type User struct {
	shared.BaseAggregateRoot
	Email          string `gorm:"type:varchar(200);uniqueIndex:idx_users_email,where:email <> ''"`
	Phone          string `gorm:"type:varchar(20);uniqueIndex:idx_users_phone,where:phone <> ''"`
	PasswordHash   string `gorm:"type:varchar(200)"`
	Nickname       string `gorm:"type:varchar(100)"`
	Gender         Gender `gorm:"type:varchar(10)"`
	ProfilePicture string `gorm:"type:varchar(500)"`
	DateOfBirth    *time.Time
	IsStaff        bool `gorm:"not null;default:false"`
	IsActive       bool `gorm:"not null;default:true"`
	EmailVerified  bool `gorm:"not null;default:false"`
	PhoneVerified  bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a user from a raw identifier and password. The
// identifier is normalized and stored in the matching column.
func NewUser(identifier, password string) (*User, error) {
	kind, normalized, err := NormalizeIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PasswordHash:      hash,
		IsActive:          true,
	}
	switch kind {
	case IdentifierEmail:
		user.Email = normalized
	case IdentifierPhone:
		user.Phone = normalized
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// NewVerifiedUser creates a user whose identifier was already confirmed
// through a one-time code. Such accounts start without a password.
func NewVerifiedUser(identifier string) (*User, error) {
	kind, normalized, err := NormalizeIdentifier(identifier)
	if err != nil {
		return nil, err
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		IsActive:          true,
	}
	switch kind {
	case IdentifierEmail:
		user.Email = normalized
		user.EmailVerified = true
	case IdentifierPhone:
		user.Phone = normalized
		user.PhoneVerified = true
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// Identifier returns the user's primary login identifier
func (u *User) Identifier() string {
	if u.Email != "" {
		return u.Email
	}
	return u.Phone
}

// SetPassword hashes and stores a new password
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = hash
	u.touch()
	return nil
}

// VerifyPassword checks a candidate password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UpdateProfile sets the editable profile fields. Zero values leave the
// corresponding field untouched.
func (u *User) UpdateProfile(nickname string, gender Gender, dateOfBirth *time.Time) error {
	if nickname != "" {
		if len(nickname) > 100 {
			return shared.NewDomainError("INVALID_INPUT", "Nickname cannot exceed 100 characters")
		}
		u.Nickname = strings.TrimSpace(nickname)
	}
	if gender != "" {
		if !gender.IsValid() {
			return shared.NewDomainError("INVALID_INPUT", "Invalid gender value")
		}
		u.Gender = gender
	}
	if dateOfBirth != nil {
		if dateOfBirth.After(time.Now()) {
			return shared.NewDomainError("INVALID_INPUT", "Date of birth cannot be in the future")
		}
		u.DateOfBirth = dateOfBirth
	}
	u.touch()
	return nil
}

// SetProfilePicture stores the object key of the uploaded avatar
func (u *User) SetProfilePicture(objectKey string) error {
	if len(objectKey) > 500 {
		return shared.NewDomainError("INVALID_INPUT", "Profile picture key cannot exceed 500 characters")
	}
	u.ProfilePicture = objectKey
	u.touch()
	return nil
}

// ChangeIdentifier replaces the user's email or phone with an already
// normalized value and marks it verified.
func (u *User) ChangeIdentifier(kind IdentifierKind, normalized string) {
	switch kind {
	case IdentifierEmail:
		u.Email = normalized
		u.EmailVerified = true
	case IdentifierPhone:
		u.Phone = normalized
		u.PhoneVerified = true
	}
	u.touch()
}

// MarkVerified marks the user's current identifier as confirmed
func (u *User) MarkVerified(kind IdentifierKind) {
	switch kind {
	case IdentifierEmail:
		u.EmailVerified = true
	case IdentifierPhone:
		u.PhoneVerified = true
	}
	u.touch()
}

// Deactivate disables the account
func (u *User) Deactivate() {
	u.IsActive = false
	u.touch()
}

func (u *User) touch() {
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
