package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ratehub/ratehub-server/internal/logger"
	"github.com/ratehub/ratehub-server/internal/model"
)

// StoreWithRating is a store joined with its mean rating. Average is
// nil when the store has no ratings; that is not the same as zero.
type StoreWithRating struct {
	model.Store
	Average *float64
}

// Catalog serves store listings and details with on-demand rating
// aggregation.
type Catalog struct {
	storeDirectory model.StoreDirectory
	ratingStore    model.RatingStore
	logger         *logger.Logger
}

func NewCatalog(storeDirectory model.StoreDirectory, ratingStore model.RatingStore, logger *logger.Logger) *Catalog {
	return &Catalog{
		storeDirectory: storeDirectory,
		ratingStore:    ratingStore,
		logger:         logger,
	}
}

// List returns stores matching the filter with their averages.
// Store owners only ever see their own stores; the scoping comes from
// the verified principal, not from anything the client sent.
// Averages for the whole page are fetched in one grouped query.
func (s *Catalog) List(ctx context.Context, principal model.Principal, filter model.StoreFilter) ([]StoreWithRating, error) {
	if principal.Role == model.RoleStoreOwner {
		filter.OwnerID = principal.ID
	}

	stores, err := s.storeDirectory.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}

	ids := make([]uuid.UUID, len(stores))
	for i, store := range stores {
		ids[i] = store.ID
	}

	averages, err := s.ratingStore.AveragesForStores(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to compute store averages: %w", err)
	}

	result := make([]StoreWithRating, len(stores))
	for i, store := range stores {
		result[i] = StoreWithRating{Store: store}
		if avg, ok := averages[store.ID]; ok {
			result[i].Average = &avg
		}
	}

	return result, nil
}

// Get returns one store with its average rating.
func (s *Catalog) Get(ctx context.Context, id uuid.UUID) (StoreWithRating, error) {
	store, err := s.storeDirectory.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return StoreWithRating{}, model.ErrNotFound
		}
		return StoreWithRating{}, fmt.Errorf("failed to get store: %w", err)
	}

	avg, err := s.ratingStore.AverageByStore(ctx, store.ID)
	if err != nil {
		return StoreWithRating{}, fmt.Errorf("failed to compute store average: %w", err)
	}

	return StoreWithRating{Store: store, Average: avg}, nil
}
