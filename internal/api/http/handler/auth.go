package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ratehub/ratehub-server/internal/logger"
	"github.com/ratehub/ratehub-server/internal/model"
	"github.com/ratehub/ratehub-server/internal/service"
)

// AuthService defines signup and login operations.
type AuthService interface {
	Signup(ctx context.Context, params service.SignupParams) (string, error)
	Login(ctx context.Context, params service.LoginParams) (service.LoginResult, error)
}

// Auth handles the public authentication endpoints.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

// Signup registers a new user and returns a short-lived token.
func (h *Auth) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	role := model.Role(req.Role)
	if req.Role == "" {
		role = model.RoleUser
	}

	token, err := h.authService.Signup(c.Request.Context(), service.SignupParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     role,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a longer-lived token.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), service.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  result.Token,
		"role":   result.Role,
		"userId": result.UserID,
	})
}
