package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ratehub/ratehub-server/internal/api/http/middleware"
	"github.com/ratehub/ratehub-server/internal/logger"
	"github.com/ratehub/ratehub-server/internal/model"
)

// OwnerFeedback defines the store-owner-scoped rating reads. Both
// operations resolve the store from the calling principal.
type OwnerFeedback interface {
	ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]model.StoreRating, error)
	AverageForOwner(ctx context.Context, ownerID uuid.UUID) (*float64, error)
}

// StoreOwner handles the store-owner endpoints.
type StoreOwner struct {
	feedback OwnerFeedback
	logger   *logger.Logger
}

// NewStoreOwner creates a new StoreOwner handler.
func NewStoreOwner(feedback OwnerFeedback, logger *logger.Logger) *StoreOwner {
	return &StoreOwner{
		feedback: feedback,
		logger:   logger,
	}
}

// ListRatings returns the ratings of the caller's store with rater
// names and emails.
func (h *StoreOwner) ListRatings(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
		return
	}

	ratings, err := h.feedback.ListForOwner(c.Request.Context(), principal.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := make([]storeRatingResponse, len(ratings))
	for i, rating := range ratings {
		response[i] = newStoreRatingResponse(rating)
	}

	c.JSON(http.StatusOK, response)
}

// AverageRating returns the caller's store average, null when the
// store has no ratings.
func (h *StoreOwner) AverageRating(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
		return
	}

	avg, err := h.feedback.AverageForOwner(c.Request.Context(), principal.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"averageRating": formatAverage(avg)})
}
