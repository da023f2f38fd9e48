package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/stridehq/stride-engine/internal/core/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type stubClock struct {
	now time.Time
}

func (c stubClock) Now() time.Time {
	return c.now
}

func newAuthService(repo domain.UserRepository) *AuthService {
	tokens := NewTokenService("test-secret", "stride-engine-test", time.Hour, repo)
	return NewAuthService(repo, tokens, stubClock{now: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)})
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	t.Run("Success: Should register a valid user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuthService(mockRepo)
		ctx := context.Background()

		input := RegisterInput{
			Email:    "test_success@stride.app",
			Password: "StrongPassword123!",
		}

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := service.Register(ctx, input)

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, input.Email, user.Email)
		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, user.PasswordHash)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should return error for invalid email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuthService(mockRepo)
		ctx := context.Background()

		input := RegisterInput{Email: "not-an-email", Password: "pass"}

		user, err := service.Register(ctx, input)

		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
		assert.Nil(t, user)

		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should return error for short password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuthService(mockRepo)
		ctx := context.Background()

		input := RegisterInput{Email: "valid@email.com", Password: "short"}

		user, err := service.Register(ctx, input)

		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		assert.Nil(t, user)

		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should propagate repository error (Duplicate Email)", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuthService(mockRepo)
		ctx := context.Background()

		input := RegisterInput{Email: "duplicate@email.com", Password: "StrongPassword123!"}

		mockRepo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailAlreadyExists)

		user, err := service.Register(ctx, input)

		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
		assert.Nil(t, user)

		mockRepo.AssertExpectations(t)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	seedUser := func(t *testing.T, password string) *domain.User {
		t.Helper()
		user, err := domain.NewUser("user-1", "login@stride.app", now)
		assert.NoError(t, err)
		assert.NoError(t, user.SetPassword(password))
		return user
	}

	t.Run("Success: Should return token and user for valid credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuthService(mockRepo)
		ctx := context.Background()

		user := seedUser(t, "StrongPassword123!")
		mockRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

		token, got, err := service.Login(ctx, LoginInput{Email: user.Email, Password: "StrongPassword123!"})

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("Fail: Wrong password collapses to invalid credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuthService(mockRepo)
		ctx := context.Background()

		user := seedUser(t, "StrongPassword123!")
		mockRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

		_, _, err := service.Login(ctx, LoginInput{Email: user.Email, Password: "wrong-password"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Fail: Unknown email collapses to invalid credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuthService(mockRepo)
		ctx := context.Background()

		mockRepo.On("GetByEmail", ctx, "ghost@stride.app").Return(nil, domain.ErrUserNotFound)

		_, _, err := service.Login(ctx, LoginInput{Email: "ghost@stride.app", Password: "whatever123"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
