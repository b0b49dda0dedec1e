package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskal/internal/domain"
	"github.com/phrazzld/taskal/internal/service"
	"github.com/phrazzld/taskal/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the user", func(t *testing.T) {
		users := new(MockUserStore)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "alice@example.com" && u.Password == "a-long-enough-password"
		})).Return(nil)

		svc := service.NewUserService(users, new(MockPasswordVerifier), nil)
		user, err := svc.Register(ctx, " alice@example.com ", "a-long-enough-password")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		users.AssertExpectations(t)
	})

	t.Run("short password", func(t *testing.T) {
		svc := service.NewUserService(new(MockUserStore), new(MockPasswordVerifier), nil)
		_, err := svc.Register(ctx, "alice@example.com", "short")
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := new(MockUserStore)
		users.On("Create", mock.Anything, mock.Anything).Return(store.ErrEmailExists)

		svc := service.NewUserService(users, new(MockPasswordVerifier), nil)
		_, err := svc.Register(ctx, "alice@example.com", "a-long-enough-password")
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Email: "alice@example.com", HashedPassword: "hash"}

	t.Run("valid credentials", func(t *testing.T) {
		users := new(MockUserStore)
		verifier := new(MockPasswordVerifier)
		users.On("GetByEmail", mock.Anything, "alice@example.com").Return(user, nil)
		verifier.On("Compare", "hash", "secret-password").Return(nil)

		got, err := service.NewUserService(users, verifier, nil).Authenticate(ctx, "alice@example.com", "secret-password")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserStore)
		verifier := new(MockPasswordVerifier)
		users.On("GetByEmail", mock.Anything, "alice@example.com").Return(user, nil)
		verifier.On("Compare", "hash", "wrong").Return(errors.New("mismatch"))

		_, err := service.NewUserService(users, verifier, nil).Authenticate(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(MockUserStore)
		users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, store.ErrUserNotFound)

		_, err := service.NewUserService(users, new(MockPasswordVerifier), nil).Authenticate(ctx, "nobody@example.com", "x")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("store failure", func(t *testing.T) {
		users := new(MockUserStore)
		users.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		_, err := service.NewUserService(users, new(MockPasswordVerifier), nil).Authenticate(ctx, "alice@example.com", "x")
		var svcErr *service.ServiceError
		assert.ErrorAs(t, err, &svcErr)
		assert.NotErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestUserService_GetUser(t *testing.T) {
	users := new(MockUserStore)
	id := uuid.New()
	users.On("GetByID", mock.Anything, id).Return(nil, store.ErrUserNotFound)

	_, err := service.NewUserService(users, new(MockPasswordVerifier), nil).GetUser(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("deletes the account", func(t *testing.T) {
		users := new(MockUserStore)
		users.On("Delete", mock.Anything, id).Return(nil)

		require.NoError(t, service.NewUserService(users, new(MockPasswordVerifier), nil).DeleteUser(ctx, id))
		users.AssertExpectations(t)
	})

	t.Run("missing user passes through", func(t *testing.T) {
		users := new(MockUserStore)
		users.On("Delete", mock.Anything, id).Return(store.ErrUserNotFound)

		err := service.NewUserService(users, new(MockPasswordVerifier), nil).DeleteUser(ctx, id)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		users := new(MockUserStore)
		users.On("Delete", mock.Anything, id).Return(errors.New("connection reset"))

		err := service.NewUserService(users, new(MockPasswordVerifier), nil).DeleteUser(ctx, id)
		var svcErr *service.ServiceError
		assert.ErrorAs(t, err, &svcErr)
	})
}
