package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StoreFilter narrows store listings. String fields match as
// case-insensitive substrings; OwnerID scopes to one owner when set.
type StoreFilter struct {
	Name    string
	Email   string
	Address string
	OwnerID uuid.UUID
}

// StoreDirectory defines persistence operations for stores.
type StoreDirectory interface {
	Create(ctx context.Context, store Store) (Store, error)
	GetByID(ctx context.Context, id uuid.UUID) (Store, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (Store, error)
	List(ctx context.Context, filter StoreFilter) ([]Store, error)
	Count(ctx context.Context) (int64, error)
}

// Store represents a rateable store. OwnerID references the user
// record of the store owner. The schema enforces referential
// integrity only, not that the referenced user carries the
// store_owner role.
type Store struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Address   string
	OwnerID   uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}
