package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ratehub/ratehub-server/internal/logger"
	"github.com/ratehub/ratehub-server/internal/model"
)

// Rating is the ledger of one-rating-per-user-per-store records plus
// the store-owner-scoped read paths over them.
type Rating struct {
	ratingStore    model.RatingStore
	storeDirectory model.StoreDirectory
	logger         *logger.Logger
}

func NewRating(ratingStore model.RatingStore, storeDirectory model.StoreDirectory, logger *logger.Logger) *Rating {
	return &Rating{
		ratingStore:    ratingStore,
		storeDirectory: storeDirectory,
		logger:         logger,
	}
}

// Submit records the user's rating of a store, overwriting any
// previous value. Two concurrent first submissions can both observe
// "absent"; the unique constraint rejects the loser's create, which
// is then retried as an update.
func (s *Rating) Submit(ctx context.Context, userID, storeID uuid.UUID, value int) (model.Rating, error) {
	if value < model.RatingMin || value > model.RatingMax {
		return model.Rating{}, model.ErrInvalidRatingValue
	}

	if _, err := s.storeDirectory.GetByID(ctx, storeID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Rating{}, model.ErrNotFound
		}
		return model.Rating{}, fmt.Errorf("failed to get store: %w", err)
	}

	_, err := s.ratingStore.GetByUserAndStore(ctx, userID, storeID)
	if err == nil {
		return s.update(ctx, userID, storeID, value)
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.Rating{}, fmt.Errorf("failed to get existing rating: %w", err)
	}

	now := time.Now()
	rating, err := s.ratingStore.Create(ctx, model.Rating{
		ID:        uuid.New(),
		Value:     value,
		UserID:    userID,
		StoreID:   storeID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, model.ErrRatingExists) {
			s.logger.Debug("Rating service: concurrent create lost the race, updating instead",
				"user_id", userID,
				"store_id", storeID)
			return s.update(ctx, userID, storeID, value)
		}
		return model.Rating{}, fmt.Errorf("failed to create rating: %w", err)
	}

	s.logger.Info("Rating service: rating created",
		"user_id", userID,
		"store_id", storeID,
		"value", value)

	return rating, nil
}

func (s *Rating) update(ctx context.Context, userID, storeID uuid.UUID, value int) (model.Rating, error) {
	rating, err := s.ratingStore.Update(ctx, userID, storeID, value)
	if err != nil {
		return model.Rating{}, fmt.Errorf("failed to update rating: %w", err)
	}

	s.logger.Info("Rating service: rating updated",
		"user_id", userID,
		"store_id", storeID,
		"value", value)

	return rating, nil
}

// ListForOwner returns the ratings of the calling owner's store with
// rater identities. Ownership is always resolved server-side from the
// principal, never from a client-supplied store id.
func (s *Rating) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]model.StoreRating, error) {
	store, err := s.resolveOwnedStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	ratings, err := s.ratingStore.ListByStore(ctx, store.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list store ratings: %w", err)
	}

	return ratings, nil
}

// AverageForOwner returns the mean rating of the calling owner's
// store, or nil when it has no ratings yet.
func (s *Rating) AverageForOwner(ctx context.Context, ownerID uuid.UUID) (*float64, error) {
	store, err := s.resolveOwnedStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	avg, err := s.ratingStore.AverageByStore(ctx, store.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute store average: %w", err)
	}

	return avg, nil
}

func (s *Rating) resolveOwnedStore(ctx context.Context, ownerID uuid.UUID) (model.Store, error) {
	store, err := s.storeDirectory.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Store{}, model.ErrNoStoreAssigned
		}
		return model.Store{}, fmt.Errorf("failed to resolve owned store: %w", err)
	}
	return store, nil
}
