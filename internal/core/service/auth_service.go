package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/beerlist/beerlist/internal/core/domain"
	"github.com/beerlist/beerlist/internal/core/ports"
)

// AuthService implements the login and register strategies.
type AuthService struct {
	repo   ports.UserRepository
	cost   int
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, cost: bcrypt.DefaultCost, logger: logger}
}

// Login verifies username and password against the stored user. A missing
// user and a wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Principal, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user.Principal(), nil
}

// Register creates a user unless the username is already taken.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.Principal, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	_, err := s.repo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		s.logger.Info().Str("username", username).Msg("user already exists")
		return nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("username", username).Msg("failed to save user")
		return nil, fmt.Errorf("register: %w", err)
	}

	s.logger.Info().Str("username", created.Username).Str("user_id", created.ID).Msg("user registered")
	return created.Principal(), nil
}
