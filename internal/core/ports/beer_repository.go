package ports

import (
	"context"

	"github.com/beerlist/beerlist/internal/core/domain"
)

// BeerRepository defines persistence operations for beers.
type BeerRepository interface {
	// Create stores b and returns the stored record with its assigned ID.
	Create(ctx context.Context, b *domain.Beer) (*domain.Beer, error)
	// FindAll returns every beer in the store's natural order.
	FindAll(ctx context.Context) ([]*domain.Beer, error)
	// FindByID returns domain.ErrBeerNotFound when id matches nothing,
	// including ids the store cannot parse.
	FindByID(ctx context.Context, id string) (*domain.Beer, error)
	Update(ctx context.Context, b *domain.Beer) (*domain.Beer, error)
	Delete(ctx context.Context, id string) error
}
