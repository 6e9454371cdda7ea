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

// AdminService defines the administrator management operations.
type AdminService interface {
	Dashboard(ctx context.Context) (service.DashboardStats, error)
	CreateUser(ctx context.Context, params service.SignupParams) (model.User, error)
	CreateStore(ctx context.Context, params service.CreateStoreParams) (model.Store, error)
	ListUsers(ctx context.Context, filter model.UserFilter) ([]model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (service.UserDetail, error)
}

// Admin handles the administrator endpoints.
type Admin struct {
	admin   AdminService
	catalog StoreCatalog
	logger  *logger.Logger
}

// NewAdmin creates a new Admin handler.
func NewAdmin(admin AdminService, catalog StoreCatalog, logger *logger.Logger) *Admin {
	return &Admin{
		admin:   admin,
		catalog: catalog,
		logger:  logger,
	}
}

// Dashboard returns global user, store and rating counts.
func (h *Admin) Dashboard(c *gin.Context) {
	stats, err := h.admin.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalUsers":   stats.TotalUsers,
		"totalStores":  stats.TotalStores,
		"totalRatings": stats.TotalRatings,
	})
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

// CreateUser creates a user with an admin-chosen role.
func (h *Admin) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	user, err := h.admin.CreateUser(c.Request.Context(), service.SignupParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

type createStoreRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	OwnerID string `json:"ownerId"`
}

// CreateStore creates a store for an existing owner.
func (h *Admin) CreateStore(c *gin.Context) {
	var req createStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid owner id."})
		return
	}

	store, err := h.admin.CreateStore(c.Request.Context(), service.CreateStoreParams{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: ownerID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, storeResponse{
		ID:        store.ID,
		Name:      store.Name,
		Email:     store.Email,
		Address:   store.Address,
		OwnerID:   store.OwnerID,
		CreatedAt: store.CreatedAt,
		UpdatedAt: store.UpdatedAt,
	})
}

// ListUsers returns users matching optional name/email/address/role
// filters.
func (h *Admin) ListUsers(c *gin.Context) {
	filter := model.UserFilter{
		Name:    c.Query("name"),
		Email:   c.Query("email"),
		Address: c.Query("address"),
		Role:    model.Role(c.Query("role")),
	}

	users, err := h.admin.ListUsers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := make([]userResponse, len(users))
	for i, user := range users {
		response[i] = newUserResponse(user)
	}

	c.JSON(http.StatusOK, response)
}

// ListStores returns stores matching optional filters, each with its
// average rating.
func (h *Admin) ListStores(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
		return
	}

	filter := model.StoreFilter{
		Name:    c.Query("name"),
		Email:   c.Query("email"),
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

// GetUser returns one user with the names of stores they own.
func (h *Admin) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id."})
		return
	}

	detail, err := h.admin.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        detail.ID,
		"name":      detail.Name,
		"email":     detail.Email,
		"address":   detail.Address,
		"role":      detail.Role,
		"stores":    detail.StoreNames,
		"createdAt": detail.CreatedAt,
		"updatedAt": detail.UpdatedAt,
	})
}
