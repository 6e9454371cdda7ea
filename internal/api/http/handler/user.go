package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ratehub/ratehub-server/internal/api/http/middleware"
	"github.com/ratehub/ratehub-server/internal/logger"
	"github.com/ratehub/ratehub-server/internal/model"
	"github.com/ratehub/ratehub-server/internal/service"
)

// RatingLedger defines rating submission.
type RatingLedger interface {
	Submit(ctx context.Context, userID, storeID uuid.UUID, value int) (model.Rating, error)
}

// StoreCatalog defines store listing and detail reads.
type StoreCatalog interface {
	List(ctx context.Context, principal model.Principal, filter model.StoreFilter) ([]service.StoreWithRating, error)
	Get(ctx context.Context, id uuid.UUID) (service.StoreWithRating, error)
}

// PasswordService defines self-service password updates.
type PasswordService interface {
	UpdatePassword(ctx context.Context, userID uuid.UUID, password string) error
}

// User handles the end-user endpoints: rating submission, store
// browsing and password changes.
type User struct {
	ratings   RatingLedger
	catalog   StoreCatalog
	passwords PasswordService
	logger    *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(ratings RatingLedger, catalog StoreCatalog, passwords PasswordService, logger *logger.Logger) *User {
	return &User{
		ratings:   ratings,
		catalog:   catalog,
		passwords: passwords,
		logger:    logger,
	}
}

type submitRatingRequest struct {
	StoreID string `json:"storeId"`
	Value   int    `json:"value"`
}

// SubmitRating records or overwrites the caller's rating of a store.
func (h *User) SubmitRating(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
		return
	}

	var req submitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid store id."})
		return
	}

	rating, err := h.ratings.Submit(c.Request.Context(), principal.ID, storeID, req.Value)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, newRatingResponse(rating))
}

// ListStores returns stores matching optional name/address filters,
// each with its average rating. Store owners see only their own.
func (h *User) ListStores(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
		return
	}

	filter := model.StoreFilter{
		Name:    c.Query("name"),
		Address: c.Query("address"),
	}

	stores, err := h.catalog.List(c.Request.Context(), principal, filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := make([]storeResponse, len(stores))
	for i, store := range stores {
		response[i] = newStoreResponse(store)
	}

	c.JSON(http.StatusOK, response)
}

// GetStore returns one store with its average rating.
func (h *User) GetStore(c *gin.Context) {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid store id."})
		return
	}

	store, err := h.catalog.Get(c.Request.Context(), storeID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, newStoreResponse(store))
}

type updatePasswordRequest struct {
	Password string `json:"password"`
}

// UpdatePassword changes the caller's own password. Open to every
// authenticated role.
func (h *User) UpdatePassword(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
		return
	}

	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	if err := h.passwords.UpdatePassword(c.Request.Context(), principal.ID, req.Password); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
