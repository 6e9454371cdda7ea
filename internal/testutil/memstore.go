package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ratehub/ratehub-server/internal/model"
)

// MemUserStore is a mutex-guarded in-memory UserStore for tests.
type MemUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.User
}

func NewMemUserStore() *MemUserStore {
	return &MemUserStore{users: map[uuid.UUID]model.User{}}
}

func (s *MemUserStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return model.User{}, model.ErrDuplicateEmail
		}
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *MemUserStore) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

func (s *MemUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *MemUserStore) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.ErrNotFound
	}
	user.PasswordHash = passwordHash
	s.users[id] = user
	return nil
}

func (s *MemUserStore) List(_ context.Context, filter model.UserFilter) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := []model.User{}
	for _, user := range s.users {
		if !containsFold(user.Name, filter.Name) ||
			!containsFold(user.Email, filter.Email) ||
			!containsFold(user.Address, filter.Address) {
			continue
		}
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *MemUserStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

// Delete removes a user directly, bypassing any service logic. Used
// to simulate a subject deleted after token issuance.
func (s *MemUserStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// MemStoreDirectory is a mutex-guarded in-memory StoreDirectory.
type MemStoreDirectory struct {
	mu     sync.Mutex
	stores map[uuid.UUID]model.Store
}

func NewMemStoreDirectory() *MemStoreDirectory {
	return &MemStoreDirectory{stores: map[uuid.UUID]model.Store{}}
}

func (s *MemStoreDirectory) Create(_ context.Context, store model.Store) (model.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.stores {
		if existing.Email == store.Email {
			return model.Store{}, model.ErrDuplicateEmail
		}
	}
	s.stores[store.ID] = store
	return store, nil
}

func (s *MemStoreDirectory) GetByID(_ context.Context, id uuid.UUID) (model.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	store, ok := s.stores[id]
	if !ok {
		return model.Store{}, model.ErrNotFound
	}
	return store, nil
}

func (s *MemStoreDirectory) GetByOwner(_ context.Context, ownerID uuid.UUID) (model.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, store := range s.stores {
		if store.OwnerID == ownerID {
			return store, nil
		}
	}
	return model.Store{}, model.ErrNotFound
}

func (s *MemStoreDirectory) List(_ context.Context, filter model.StoreFilter) ([]model.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stores := []model.Store{}
	for _, store := range s.stores {
		if !containsFold(store.Name, filter.Name) ||
			!containsFold(store.Email, filter.Email) ||
			!containsFold(store.Address, filter.Address) {
			continue
		}
		if filter.OwnerID != uuid.Nil && store.OwnerID != filter.OwnerID {
			continue
		}
		stores = append(stores, store)
	}
	return stores, nil
}

func (s *MemStoreDirectory) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.stores)), nil
}

// MemRatingStore is a mutex-guarded in-memory RatingStore. It joins
// rater identities against the user store it was created with.
type MemRatingStore struct {
	mu      sync.Mutex
	ratings map[uuid.UUID]model.Rating
	users   *MemUserStore
}

func NewMemRatingStore(users *MemUserStore) *MemRatingStore {
	return &MemRatingStore{ratings: map[uuid.UUID]model.Rating{}, users: users}
}

func (s *MemRatingStore) Create(_ context.Context, rating model.Rating) (model.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.ratings {
		if existing.UserID == rating.UserID && existing.StoreID == rating.StoreID {
			return model.Rating{}, model.ErrRatingExists
		}
	}
	s.ratings[rating.ID] = rating
	return rating, nil
}

func (s *MemRatingStore) Update(_ context.Context, userID, storeID uuid.UUID, value int) (model.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, rating := range s.ratings {
		if rating.UserID == userID && rating.StoreID == storeID {
			rating.Value = value
			s.ratings[id] = rating
			return rating, nil
		}
	}
	return model.Rating{}, model.ErrNotFound
}

func (s *MemRatingStore) GetByUserAndStore(_ context.Context, userID, storeID uuid.UUID) (model.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rating := range s.ratings {
		if rating.UserID == userID && rating.StoreID == storeID {
			return rating, nil
		}
	}
	return model.Rating{}, model.ErrNotFound
}

func (s *MemRatingStore) ListByStore(ctx context.Context, storeID uuid.UUID) ([]model.StoreRating, error) {
	s.mu.Lock()
	ratings := []model.Rating{}
	for _, rating := range s.ratings {
		if rating.StoreID == storeID {
			ratings = append(ratings, rating)
		}
	}
	s.mu.Unlock()

	result := []model.StoreRating{}
	for _, rating := range ratings {
		entry := model.StoreRating{Rating: rating}
		if user, err := s.users.GetByID(ctx, rating.UserID); err == nil {
			entry.RaterName = user.Name
			entry.RaterEmail = user.Email
		}
		result = append(result, entry)
	}
	return result, nil
}

func (s *MemRatingStore) AverageByStore(_ context.Context, storeID uuid.UUID) (*float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum, n := 0, 0
	for _, rating := range s.ratings {
		if rating.StoreID == storeID {
			sum += rating.Value
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	avg := float64(sum) / float64(n)
	return &avg, nil
}

func (s *MemRatingStore) AveragesForStores(ctx context.Context, storeIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	averages := map[uuid.UUID]float64{}
	for _, id := range storeIDs {
		avg, err := s.AverageByStore(ctx, id)
		if err != nil {
			return nil, err
		}
		if avg != nil {
			averages[id] = *avg
		}
	}
	return averages, nil
}

func (s *MemRatingStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.ratings)), nil
}

// CountForPair reports how many rating rows exist for a (user, store)
// pair. Used to assert the at-most-one invariant.
func (s *MemRatingStore) CountForPair(userID, storeID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, rating := range s.ratings {
		if rating.UserID == userID && rating.StoreID == storeID {
			n++
		}
	}
	return n
}

func containsFold(value, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(substr))
}
