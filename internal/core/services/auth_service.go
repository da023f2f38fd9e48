package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stridehq/stride-engine/internal/core/domain"
)

type AuthService struct {
	repo   domain.UserRepository
	tokens *TokenService
	clock  domain.Clock
}

func NewAuthService(repo domain.UserRepository, tokens *TokenService, clock domain.Clock) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		clock:  clock,
	}
}

type RegisterInput struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	user, err := domain.NewUser(uuid.NewString(), input.Email, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth service: failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and mints an access token. Lookup and password
// failures collapse into ErrInvalidCredentials so the response never reveals
// which half was wrong.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, *domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := user.CheckPassword(input.Password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("auth service: failed to generate token: %w", err)
	}

	return token, user, nil
}
