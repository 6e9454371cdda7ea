package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ratehub/ratehub-server/internal/model"
)

var _ model.StoreDirectory = (*StoreRepository)(nil)

type StoreRepository struct {
	db *Connection
}

func NewStoreRepository(db *Connection) *StoreRepository {
	return &StoreRepository{
		db: db,
	}
}

func (r *StoreRepository) Create(ctx context.Context, store model.Store) (model.Store, error) {
	query := `INSERT INTO stores (id, name, email, address, owner_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, name, email, address, owner_id, created_at, updated_at`

	var savedStore model.Store
	err := r.db.QueryRow(ctx, query,
		store.ID, store.Name, store.Email, store.Address, store.OwnerID,
		store.CreatedAt, store.UpdatedAt,
	).Scan(
		&savedStore.ID, &savedStore.Name, &savedStore.Email, &savedStore.Address,
		&savedStore.OwnerID, &savedStore.CreatedAt, &savedStore.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.Store{}, model.ErrDuplicateEmail
		}
		return model.Store{}, fmt.Errorf("failed to create store: %w", err)
	}

	return savedStore, nil
}

func (r *StoreRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Store, error) {
	var store model.Store
	query := `SELECT id, name, email, address, owner_id, created_at, updated_at
			  FROM stores WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&store.ID, &store.Name, &store.Email, &store.Address, &store.OwnerID,
		&store.CreatedAt, &store.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Store{}, model.ErrNotFound
		}
		return model.Store{}, fmt.Errorf("failed to get store by id: %w", err)
	}

	return store, nil
}

func (r *StoreRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (model.Store, error) {
	var store model.Store
	query := `SELECT id, name, email, address, owner_id, created_at, updated_at
			  FROM stores WHERE owner_id = $1`

	err := r.db.QueryRow(ctx, query, ownerID).Scan(
		&store.ID, &store.Name, &store.Email, &store.Address, &store.OwnerID,
		&store.CreatedAt, &store.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Store{}, model.ErrNotFound
		}
		return model.Store{}, fmt.Errorf("failed to get store by owner: %w", err)
	}

	return store, nil
}

func (r *StoreRepository) List(ctx context.Context, filter model.StoreFilter) ([]model.Store, error) {
	query := `SELECT id, name, email, address, owner_id, created_at, updated_at FROM stores`

	var conds []string
	var args []any
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.Email != "" {
		args = append(args, "%"+filter.Email+"%")
		conds = append(conds, fmt.Sprintf("email ILIKE $%d", len(args)))
	}
	if filter.Address != "" {
		args = append(args, "%"+filter.Address+"%")
		conds = append(conds, fmt.Sprintf("address ILIKE $%d", len(args)))
	}
	if filter.OwnerID != uuid.Nil {
		args = append(args, filter.OwnerID)
		conds = append(conds, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer rows.Close()

	stores := []model.Store{}
	for rows.Next() {
		var store model.Store
		if err := rows.Scan(
			&store.ID, &store.Name, &store.Email, &store.Address, &store.OwnerID,
			&store.CreatedAt, &store.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan store row: %w", err)
		}
		stores = append(stores, store)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read store rows: %w", err)
	}

	return stores, nil
}

func (r *StoreRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM stores`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count stores: %w", err)
	}
	return count, nil
}
