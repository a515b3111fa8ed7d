package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/plantstore/backend/internal/domain/identity"
	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/plantstore/backend/internal/infrastructure/cache"
)

func newUserFixture() (*UserService, *MockUserRepository, *cache.InMemoryOTPStore) {
	userRepo := new(MockUserRepository)
	store := cache.NewInMemoryOTPStore(5)
	logger := zap.NewNop()
	otpService := NewOTPService(store, DefaultOTPServiceConfig(), logger)
	return NewUserService(userRepo, otpService, logger), userRepo, store
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("applies partial update", func(t *testing.T) {
		svc, userRepo, _ := newUserFixture()
		user, err := identity.NewUser("user@example.com", "secret1pass")
		require.NoError(t, err)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		resp, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileRequest{
			Nickname:    "Sara",
			Gender:      "female",
			DateOfBirth: "1995-04-12",
		})

		require.NoError(t, err)
		assert.Equal(t, "Sara", resp.Nickname)
		assert.Equal(t, "female", resp.Gender)
		require.NotNil(t, resp.DateOfBirth)
		assert.Equal(t, 1995, resp.DateOfBirth.Year())
	})

	t.Run("rejects malformed date of birth", func(t *testing.T) {
		svc, userRepo, _ := newUserFixture()
		user, err := identity.NewUser("user@example.com", "secret1pass")
		require.NoError(t, err)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		_, err = svc.UpdateProfile(ctx, user.ID, UpdateProfileRequest{DateOfBirth: "12/04/1995"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})
}

func TestUserService_IdentifierChange(t *testing.T) {
	ctx := context.Background()

	t.Run("full flow moves the account to the new identifier", func(t *testing.T) {
		svc, userRepo, store := newUserFixture()
		user, err := identity.NewUser("user@example.com", "secret1pass")
		require.NoError(t, err)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("ExistsByIdentifier", ctx, identity.IdentifierPhone, "+989123456789").Return(false, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		require.NoError(t, svc.RequestIdentifierChange(ctx, user.ID, RequestIdentifierChangeRequest{
			NewIdentifier: "09123456789",
		}))

		// Pull the issued code out of the store by replacing it with a known one
		require.NoError(t, store.Invalidate(ctx, "+989123456789"))
		require.NoError(t, store.Put(ctx, "+989123456789", PurposeChangeIdentifier, "123456", 2*time.Minute))

		resp, err := svc.ConfirmIdentifierChange(ctx, user.ID, ConfirmIdentifierChangeRequest{
			NewIdentifier: "09123456789",
			Code:          "123456",
		})

		require.NoError(t, err)
		assert.Equal(t, "+989123456789", resp.Phone)
		assert.True(t, resp.PhoneVerified)
	})

	t.Run("rejects an identifier already in use", func(t *testing.T) {
		svc, userRepo, _ := newUserFixture()
		user, err := identity.NewUser("user@example.com", "secret1pass")
		require.NoError(t, err)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("ExistsByIdentifier", ctx, identity.IdentifierEmail, "taken@example.com").Return(true, nil)

		err = svc.RequestIdentifierChange(ctx, user.ID, RequestIdentifierChangeRequest{
			NewIdentifier: "taken@example.com",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestUserService_ListUsers(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _ := newUserFixture()

	u1, err := identity.NewUser("a@example.com", "secret1pass")
	require.NoError(t, err)
	u2, err := identity.NewUser("b@example.com", "secret1pass")
	require.NoError(t, err)

	userRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 2 && f.PageSize == 10 && f.Search == "example"
	})).Return([]identity.User{*u1, *u2}, nil)
	userRepo.On("Count", ctx, mock.Anything).Return(int64(12), nil)

	page, err := svc.ListUsers(ctx, UserListFilter{Search: "example", Page: 2, PageSize: 10})

	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 2, page.TotalPages)
}
