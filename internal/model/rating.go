package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Rating value bounds.
const (
	RatingMin = 1
	RatingMax = 5
)

// RatingStore defines persistence operations for ratings.
// Create returns ErrRatingExists when a rating for the same
// (user, store) pair already exists; the uniqueness constraint is
// enforced by the database so concurrent creates cannot both succeed.
type RatingStore interface {
	Create(ctx context.Context, rating Rating) (Rating, error)
	Update(ctx context.Context, userID, storeID uuid.UUID, value int) (Rating, error)
	GetByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (Rating, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]StoreRating, error)
	AverageByStore(ctx context.Context, storeID uuid.UUID) (*float64, error)
	AveragesForStores(ctx context.Context, storeIDs []uuid.UUID) (map[uuid.UUID]float64, error)
	Count(ctx context.Context) (int64, error)
}

// Rating represents a single user's rating of a store.
// At most one rating exists per (UserID, StoreID) pair.
type Rating struct {
	ID        uuid.UUID
	Value     int
	UserID    uuid.UUID
	StoreID   uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StoreRating is a rating joined with the rater's identity, used for
// store-owner feedback listings.
type StoreRating struct {
	Rating
	RaterName  string
	RaterEmail string
}
