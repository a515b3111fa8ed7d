package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/plantstore/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByPhone finds a user by normalized phone
	FindByPhone(ctx context.Context, phone string) (*User, error)

	// FindByIdentifier finds a user by either identifier kind
	FindByIdentifier(ctx context.Context, kind IdentifierKind, value string) (*User, error)

	// FindAll finds all users matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// Delete deletes a user
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts users matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByIdentifier checks whether an account uses the identifier
	ExistsByIdentifier(ctx context.Context, kind IdentifierKind, value string) (bool, error)
}

// AddressRepository defines the interface for address persistence
type AddressRepository interface {
	// FindByID finds an address by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)

	// FindByUser finds all addresses of a user, default first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Address, error)

	// FindDefault finds the user's default address
	FindDefault(ctx context.Context, userID uuid.UUID) (*Address, error)

	// Save creates or updates an address
	Save(ctx context.Context, address *Address) error

	// SetDefault makes the address the user's only default, clearing
	// any previous default in the same transaction
	SetDefault(ctx context.Context, userID, addressID uuid.UUID) error

	// Delete deletes an address
	Delete(ctx context.Context, id uuid.UUID) error
}
