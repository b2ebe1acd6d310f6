package ports

import (
	"context"

	"github.com/beerlist/beerlist/internal/core/domain"
)

// AuthService holds the two credential strategies. Both return the principal
// to store in the session, or a rejection error.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.Principal, error)
	Register(ctx context.Context, username, password string) (*domain.Principal, error)
}
