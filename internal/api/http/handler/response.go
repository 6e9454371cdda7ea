package handler

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ratehub/ratehub-server/internal/model"
	"github.com/ratehub/ratehub-server/internal/service"
)

type userResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Address   string     `json:"address,omitempty"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func newUserResponse(user model.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Address:   user.Address,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

type storeResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	OwnerID       uuid.UUID `json:"ownerId"`
	AverageRating *string   `json:"averageRating"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func newStoreResponse(store service.StoreWithRating) storeResponse {
	return storeResponse{
		ID:            store.ID,
		Name:          store.Name,
		Email:         store.Email,
		Address:       store.Address,
		OwnerID:       store.OwnerID,
		AverageRating: formatAverage(store.Average),
		CreatedAt:     store.CreatedAt,
		UpdatedAt:     store.UpdatedAt,
	}
}

type ratingResponse struct {
	ID        uuid.UUID `json:"id"`
	Value     int       `json:"value"`
	UserID    uuid.UUID `json:"userId"`
	StoreID   uuid.UUID `json:"storeId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newRatingResponse(rating model.Rating) ratingResponse {
	return ratingResponse{
		ID:        rating.ID,
		Value:     rating.Value,
		UserID:    rating.UserID,
		StoreID:   rating.StoreID,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
}

type raterResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type storeRatingResponse struct {
	ratingResponse
	User raterResponse `json:"user"`
}

func newStoreRatingResponse(rating model.StoreRating) storeRatingResponse {
	return storeRatingResponse{
		ratingResponse: newRatingResponse(rating.Rating),
		User: raterResponse{
			Name:  rating.RaterName,
			Email: rating.RaterEmail,
		},
	}
}

// formatAverage renders a mean rating to one decimal place for
// external consumption. nil stays nil: no ratings is not an average
// of zero.
func formatAverage(avg *float64) *string {
	if avg == nil {
		return nil
	}
	formatted := fmt.Sprintf("%.1f", *avg)
	return &formatted
}
