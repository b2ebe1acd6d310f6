package ports

import (
	"context"

	"github.com/beerlist/beerlist/internal/core/domain"
)

// CreateBeerInput carries the fields accepted when creating a beer.
type CreateBeerInput struct {
	Name     string
	Style    string
	ImageURL string
	ABV      *float64
}

// BeerService defines use-case operations for beers.
type BeerService interface {
	ListBeers(ctx context.Context) ([]*domain.Beer, error)
	CreateBeer(ctx context.Context, input CreateBeerInput) (*domain.Beer, error)
	// RenameBeer changes the name of an existing beer. No other field is
	// touched.
	RenameBeer(ctx context.Context, id, name string) (*domain.Beer, error)
	DeleteBeer(ctx context.Context, id string) error
}
