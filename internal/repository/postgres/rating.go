package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ratehub/ratehub-server/internal/model"
)

var _ model.RatingStore = (*RatingRepository)(nil)

type RatingRepository struct {
	db *Connection
}

func NewRatingRepository(db *Connection) *RatingRepository {
	return &RatingRepository{
		db: db,
	}
}

// Create inserts a new rating. The UNIQUE (user_id, store_id)
// constraint backs the one-rating-per-user-per-store invariant;
// a violation maps to model.ErrRatingExists so the caller can retry
// as an update.
func (r *RatingRepository) Create(ctx context.Context, rating model.Rating) (model.Rating, error) {
	query := `INSERT INTO ratings (id, value, user_id, store_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, value, user_id, store_id, created_at, updated_at`

	var savedRating model.Rating
	err := r.db.QueryRow(ctx, query,
		rating.ID, rating.Value, rating.UserID, rating.StoreID,
		rating.CreatedAt, rating.UpdatedAt,
	).Scan(
		&savedRating.ID, &savedRating.Value, &savedRating.UserID, &savedRating.StoreID,
		&savedRating.CreatedAt, &savedRating.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.Rating{}, model.ErrRatingExists
		}
		return model.Rating{}, fmt.Errorf("failed to create rating: %w", err)
	}

	return savedRating, nil
}

func (r *RatingRepository) Update(ctx context.Context, userID, storeID uuid.UUID, value int) (model.Rating, error) {
	query := `UPDATE ratings SET value = $3, updated_at = now()
			  WHERE user_id = $1 AND store_id = $2
			  RETURNING id, value, user_id, store_id, created_at, updated_at`

	var rating model.Rating
	err := r.db.QueryRow(ctx, query, userID, storeID, value).Scan(
		&rating.ID, &rating.Value, &rating.UserID, &rating.StoreID,
		&rating.CreatedAt, &rating.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Rating{}, model.ErrNotFound
		}
		return model.Rating{}, fmt.Errorf("failed to update rating: %w", err)
	}

	return rating, nil
}

func (r *RatingRepository) GetByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (model.Rating, error) {
	var rating model.Rating
	query := `SELECT id, value, user_id, store_id, created_at, updated_at
			  FROM ratings WHERE user_id = $1 AND store_id = $2`

	err := r.db.QueryRow(ctx, query, userID, storeID).Scan(
		&rating.ID, &rating.Value, &rating.UserID, &rating.StoreID,
		&rating.CreatedAt, &rating.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Rating{}, model.ErrNotFound
		}
		return model.Rating{}, fmt.Errorf("failed to get rating: %w", err)
	}

	return rating, nil
}

func (r *RatingRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]model.StoreRating, error) {
	query := `SELECT r.id, r.value, r.user_id, r.store_id, r.created_at, r.updated_at, u.name, u.email
			  FROM ratings r
			  JOIN users u ON u.id = r.user_id
			  WHERE r.store_id = $1
			  ORDER BY r.created_at`

	rows, err := r.db.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()

	ratings := []model.StoreRating{}
	for rows.Next() {
		var rating model.StoreRating
		if err := rows.Scan(
			&rating.ID, &rating.Value, &rating.UserID, &rating.StoreID,
			&rating.CreatedAt, &rating.UpdatedAt, &rating.RaterName, &rating.RaterEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rating row: %w", err)
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rating rows: %w", err)
	}

	return ratings, nil
}

// AverageByStore returns the mean rating value for a store, or nil
// when the store has no ratings. The distinction matters: no data is
// not a zero average.
func (r *RatingRepository) AverageByStore(ctx context.Context, storeID uuid.UUID) (*float64, error) {
	var avg *float64
	query := `SELECT AVG(value)::float8 FROM ratings WHERE store_id = $1`

	if err := r.db.QueryRow(ctx, query, storeID).Scan(&avg); err != nil {
		return nil, fmt.Errorf("failed to compute average rating: %w", err)
	}

	return avg, nil
}

// AveragesForStores computes mean ratings for many stores in one
// grouped query. Stores without ratings are absent from the result.
func (r *RatingRepository) AveragesForStores(ctx context.Context, storeIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	averages := map[uuid.UUID]float64{}
	if len(storeIDs) == 0 {
		return averages, nil
	}

	query := `SELECT store_id, AVG(value)::float8 FROM ratings
			  WHERE store_id = ANY($1) GROUP BY store_id`

	rows, err := r.db.Query(ctx, query, storeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to compute average ratings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var storeID uuid.UUID
		var avg float64
		if err := rows.Scan(&storeID, &avg); err != nil {
			return nil, fmt.Errorf("failed to scan average row: %w", err)
		}
		averages[storeID] = avg
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read average rows: %w", err)
	}

	return averages, nil
}

func (r *RatingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM ratings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ratings: %w", err)
	}
	return count, nil
}
