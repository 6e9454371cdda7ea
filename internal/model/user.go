package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role is the access level assigned to a user.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
	RoleStoreOwner Role = "store_owner"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleStoreOwner:
		return true
	}
	return false
}

// UserFilter narrows user listings. String fields match as
// case-insensitive substrings; Role matches exactly when set.
type UserFilter struct {
	Name    string
	Email   string
	Address string
	Role    Role
}

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	List(ctx context.Context, filter UserFilter) ([]User, error)
	Count(ctx context.Context) (int64, error)
}

// User represents a stored user with authentication material.
// PasswordHash is the bcrypt digest of the user's password; the
// plaintext is never persisted.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Address      string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal is the authenticated identity extracted from a verified
// token for the duration of one request.
type Principal struct {
	ID   uuid.UUID
	Role Role
}
