package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/beerlist/beerlist/internal/core/domain"
	"github.com/beerlist/beerlist/internal/core/ports"
)

type BeerService struct {
	repo   ports.BeerRepository
	logger zerolog.Logger
}

func NewBeerService(repo ports.BeerRepository, logger zerolog.Logger) *BeerService {
	return &BeerService{repo: repo, logger: logger}
}

func (s *BeerService) ListBeers(ctx context.Context) ([]*domain.Beer, error) {
	beers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list beers: %w", err)
	}
	if beers == nil {
		beers = []*domain.Beer{}
	}
	return beers, nil
}

// CreateBeer persists a new beer. The ID is always assigned by the store.
func (s *BeerService) CreateBeer(ctx context.Context, input ports.CreateBeerInput) (*domain.Beer, error) {
	created, err := s.repo.Create(ctx, &domain.Beer{
		Name:     input.Name,
		Style:    input.Style,
		ImageURL: input.ImageURL,
		ABV:      input.ABV,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create beer")
		return nil, fmt.Errorf("create beer: %w", err)
	}

	s.logger.Info().Str("beer_id", created.ID).Str("name", created.Name).Msg("beer created")
	return created, nil
}

func (s *BeerService) RenameBeer(ctx context.Context, id, name string) (*domain.Beer, error) {
	beer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("rename beer: %w", err)
	}

	beer.Name = name

	updated, err := s.repo.Update(ctx, beer)
	if err != nil {
		s.logger.Error().Err(err).Str("beer_id", id).Msg("failed to update beer")
		return nil, fmt.Errorf("rename beer: %w", err)
	}

	s.logger.Info().Str("beer_id", id).Str("name", name).Msg("beer renamed")
	return updated, nil
}

// DeleteBeer removes the beer with the given id. The lookup error, if any,
// is returned unchanged so callers can report it.
func (s *BeerService) DeleteBeer(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("beer_id", id).Msg("failed to delete beer")
		return fmt.Errorf("delete beer: %w", err)
	}

	s.logger.Info().Str("beer_id", id).Msg("beer deleted")
	return nil
}
