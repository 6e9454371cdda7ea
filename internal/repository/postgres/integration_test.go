//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ratehub/ratehub-server/internal/model"
	repo "github.com/ratehub/ratehub-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "ratehub_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/ratehub_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newUser(email string, role model.Role) model.User {
	now := time.Now()
	return model.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hash",
		Address:      "1 Main St",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newStore(email string, ownerID uuid.UUID) model.Store {
	now := time.Now()
	return model.Store{
		ID:        uuid.New(),
		Name:      "Test Store",
		Email:     email,
		Address:   "2 Side St",
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	t.Run("create_and_get", func(t *testing.T) {
		u := newUser("alice@example.com", model.RoleUser)
		saved, err := ur.Create(ctx, u)
		require.NoError(t, err)
		require.Equal(t, u.ID, saved.ID)

		byEmail, err := ur.GetByEmail(ctx, u.Email)
		require.NoError(t, err)
		require.Equal(t, u.ID, byEmail.ID)

		byID, err := ur.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, u.Email, byID.Email)
		require.Equal(t, model.RoleUser, byID.Role)
	})

	t.Run("duplicate_email", func(t *testing.T) {
		u := newUser("dup@example.com", model.RoleUser)
		_, err := ur.Create(ctx, u)
		require.NoError(t, err)

		again := newUser("dup@example.com", model.RoleAdmin)
		_, err = ur.Create(ctx, again)
		require.ErrorIs(t, err, model.ErrDuplicateEmail)
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := ur.GetByID(ctx, uuid.New())
		require.ErrorIs(t, err, model.ErrNotFound)

		_, err = ur.GetByEmail(ctx, "ghost@example.com")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("update_password", func(t *testing.T) {
		u := newUser("pw@example.com", model.RoleUser)
		_, err := ur.Create(ctx, u)
		require.NoError(t, err)

		require.NoError(t, ur.UpdatePassword(ctx, u.ID, "newhash"))

		got, err := ur.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "newhash", got.PasswordHash)

		err = ur.UpdatePassword(ctx, uuid.New(), "x")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("list_and_count", func(t *testing.T) {
		admin := newUser("filter-admin@example.com", model.RoleAdmin)
		admin.Name = "Filterable Admin"
		_, err := ur.Create(ctx, admin)
		require.NoError(t, err)

		byRole, err := ur.List(ctx, model.UserFilter{Role: model.RoleAdmin})
		require.NoError(t, err)
		require.NotEmpty(t, byRole)
		for _, u := range byRole {
			require.Equal(t, model.RoleAdmin, u.Role)
		}

		byName, err := ur.List(ctx, model.UserFilter{Name: "filterable"})
		require.NoError(t, err)
		require.Len(t, byName, 1)
		require.Equal(t, admin.ID, byName[0].ID)

		count, err := ur.Count(ctx)
		require.NoError(t, err)
		require.Greater(t, count, int64(0))
	})
}

func TestStoreRepository(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	sr := repo.NewStoreRepository(conn)

	owner := newUser("storeowner@example.com", model.RoleStoreOwner)
	_, err = ur.Create(ctx, owner)
	require.NoError(t, err)

	t.Run("create_and_get", func(t *testing.T) {
		s := newStore("shop@example.com", owner.ID)
		saved, err := sr.Create(ctx, s)
		require.NoError(t, err)
		require.Equal(t, s.ID, saved.ID)

		byID, err := sr.GetByID(ctx, s.ID)
		require.NoError(t, err)
		require.Equal(t, owner.ID, byID.OwnerID)

		byOwner, err := sr.GetByOwner(ctx, owner.ID)
		require.NoError(t, err)
		require.Equal(t, s.ID, byOwner.ID)
	})

	t.Run("duplicate_email", func(t *testing.T) {
		_, err := sr.Create(ctx, newStore("shop@example.com", owner.ID))
		require.ErrorIs(t, err, model.ErrDuplicateEmail)
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := sr.GetByID(ctx, uuid.New())
		require.ErrorIs(t, err, model.ErrNotFound)

		_, err = sr.GetByOwner(ctx, uuid.New())
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("list_by_owner", func(t *testing.T) {
		stores, err := sr.List(ctx, model.StoreFilter{OwnerID: owner.ID})
		require.NoError(t, err)
		require.Len(t, stores, 1)
	})
}

func TestRatingRepository(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	sr := repo.NewStoreRepository(conn)
	rr := repo.NewRatingRepository(conn)

	owner := newUser("rateowner@example.com", model.RoleStoreOwner)
	_, err = ur.Create(ctx, owner)
	require.NoError(t, err)

	rater := newUser("rater@example.com", model.RoleUser)
	rater.Name = "Rita Rater"
	_, err = ur.Create(ctx, rater)
	require.NoError(t, err)

	store, err := sr.Create(ctx, newStore("rated@example.com", owner.ID))
	require.NoError(t, err)

	t.Run("average_empty", func(t *testing.T) {
		avg, err := rr.AverageByStore(ctx, store.ID)
		require.NoError(t, err)
		require.Nil(t, avg)
	})

	t.Run("create_conflict_update", func(t *testing.T) {
		now := time.Now()
		r := model.Rating{
			ID:        uuid.New(),
			Value:     4,
			UserID:    rater.ID,
			StoreID:   store.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		saved, err := rr.Create(ctx, r)
		require.NoError(t, err)
		require.Equal(t, r.ID, saved.ID)

		again := r
		again.ID = uuid.New()
		_, err = rr.Create(ctx, again)
		require.ErrorIs(t, err, model.ErrRatingExists)

		updated, err := rr.Update(ctx, rater.ID, store.ID, 2)
		require.NoError(t, err)
		require.Equal(t, saved.ID, updated.ID)
		require.Equal(t, 2, updated.Value)

		got, err := rr.GetByUserAndStore(ctx, rater.ID, store.ID)
		require.NoError(t, err)
		require.Equal(t, 2, got.Value)
	})

	t.Run("list_with_rater", func(t *testing.T) {
		list, err := rr.ListByStore(ctx, store.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "Rita Rater", list[0].RaterName)
		require.Equal(t, "rater@example.com", list[0].RaterEmail)
	})

	t.Run("averages", func(t *testing.T) {
		second := newUser("rater2@example.com", model.RoleUser)
		_, err := ur.Create(ctx, second)
		require.NoError(t, err)

		now := time.Now()
		_, err = rr.Create(ctx, model.Rating{
			ID:        uuid.New(),
			Value:     4,
			UserID:    second.ID,
			StoreID:   store.ID,
			CreatedAt: now,
			UpdatedAt: now,
		})
		require.NoError(t, err)

		avg, err := rr.AverageByStore(ctx, store.ID)
		require.NoError(t, err)
		require.NotNil(t, avg)
		require.InDelta(t, 3.0, *avg, 1e-9)

		batch, err := rr.AveragesForStores(ctx, []uuid.UUID{store.ID, uuid.New()})
		require.NoError(t, err)
		require.Len(t, batch, 1)
		require.InDelta(t, 3.0, batch[store.ID], 1e-9)
	})

	t.Run("update_missing", func(t *testing.T) {
		_, err := rr.Update(ctx, uuid.New(), store.ID, 3)
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("value_check_constraint", func(t *testing.T) {
		now := time.Now()
		_, err := rr.Create(ctx, model.Rating{
			ID:        uuid.New(),
			Value:     9,
			UserID:    rater.ID,
			StoreID:   store.ID,
			CreatedAt: now,
			UpdatedAt: now,
		})
		require.Error(t, err)
	})

	t.Run("count", func(t *testing.T) {
		count, err := rr.Count(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, count, int64(2))
	})
}
