package ports

import (
	"context"

	"github.com/beerlist/beerlist/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create returns domain.ErrUserExists when the username is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
