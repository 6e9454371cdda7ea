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

// CreateStoreParams carries admin store-creation input.
type CreateStoreParams struct {
	Name    string
	Email   string
	Address string
	OwnerID uuid.UUID
}

// DashboardStats are the admin dashboard counters.
type DashboardStats struct {
	TotalUsers   int64
	TotalStores  int64
	TotalRatings int64
}

// UserDetail is a user joined with the names of stores they own.
type UserDetail struct {
	model.User
	StoreNames []string
}

// Admin implements the administrator-only management operations.
type Admin struct {
	userStore      model.UserStore
	storeDirectory model.StoreDirectory
	ratingStore    model.RatingStore
	bcryptCost     int
	logger         *logger.Logger
}

func NewAdmin(
	userStore model.UserStore,
	storeDirectory model.StoreDirectory,
	ratingStore model.RatingStore,
	bcryptCost int,
	logger *logger.Logger,
) *Admin {
	return &Admin{
		userStore:      userStore,
		storeDirectory: storeDirectory,
		ratingStore:    ratingStore,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// Dashboard returns global platform counters.
func (s *Admin) Dashboard(ctx context.Context) (DashboardStats, error) {
	users, err := s.userStore.Count(ctx)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("failed to count users: %w", err)
	}
	stores, err := s.storeDirectory.Count(ctx)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("failed to count stores: %w", err)
	}
	ratings, err := s.ratingStore.Count(ctx)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("failed to count ratings: %w", err)
	}

	return DashboardStats{
		TotalUsers:   users,
		TotalStores:  stores,
		TotalRatings: ratings,
	}, nil
}

// CreateUser creates a user with an admin-chosen role.
func (s *Admin) CreateUser(ctx context.Context, params SignupParams) (model.User, error) {
	if err := validateName(params.Name); err != nil {
		return model.User{}, err
	}
	if err := validateEmail(params.Email); err != nil {
		return model.User{}, err
	}
	if err := validatePassword(params.Password); err != nil {
		return model.User{}, err
	}
	if err := validateAddress(params.Address); err != nil {
		return model.User{}, err
	}
	if err := validateRole(params.Role); err != nil {
		return model.User{}, err
	}

	hash, err := hashPassword(params.Password, s.bcryptCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user, err := s.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: hash,
		Address:      params.Address,
		Role:         params.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) {
			return model.User{}, model.ErrDuplicateEmail
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("Admin service: user created",
		"user_id", user.ID,
		"role", user.Role)

	return user, nil
}

// CreateStore creates a store for an existing owner. Only owner
// existence is checked; the schema does not require the owner record
// to carry the store_owner role.
func (s *Admin) CreateStore(ctx context.Context, params CreateStoreParams) (model.Store, error) {
	if err := validateName(params.Name); err != nil {
		return model.Store{}, err
	}
	if err := validateEmail(params.Email); err != nil {
		return model.Store{}, err
	}
	if err := validateAddress(params.Address); err != nil {
		return model.Store{}, err
	}
	if params.OwnerID == uuid.Nil {
		return model.Store{}, model.NewValidationError("ownerId", "owner id is required")
	}

	if _, err := s.userStore.GetByID(ctx, params.OwnerID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Store{}, model.ErrNotFound
		}
		return model.Store{}, fmt.Errorf("failed to get owner: %w", err)
	}

	now := time.Now()
	store, err := s.storeDirectory.Create(ctx, model.Store{
		ID:        uuid.New(),
		Name:      params.Name,
		Email:     params.Email,
		Address:   params.Address,
		OwnerID:   params.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) {
			return model.Store{}, model.ErrDuplicateEmail
		}
		return model.Store{}, fmt.Errorf("failed to create store: %w", err)
	}

	s.logger.Info("Admin service: store created",
		"store_id", store.ID,
		"owner_id", store.OwnerID)

	return store, nil
}

// ListUsers returns users matching the filter.
func (s *Admin) ListUsers(ctx context.Context, filter model.UserFilter) ([]model.User, error) {
	if filter.Role != "" {
		if err := validateRole(filter.Role); err != nil {
			return nil, err
		}
	}

	users, err := s.userStore.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// GetUser returns one user with the names of stores they own.
func (s *Admin) GetUser(ctx context.Context, id uuid.UUID) (UserDetail, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return UserDetail{}, model.ErrNotFound
		}
		return UserDetail{}, fmt.Errorf("failed to get user: %w", err)
	}

	stores, err := s.storeDirectory.List(ctx, model.StoreFilter{OwnerID: id})
	if err != nil {
		return UserDetail{}, fmt.Errorf("failed to list owned stores: %w", err)
	}

	names := make([]string, len(stores))
	for i, store := range stores {
		names[i] = store.Name
	}

	return UserDetail{User: user, StoreNames: names}, nil
}
