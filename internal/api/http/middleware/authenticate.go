package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ratehub/ratehub-server/internal/logger"
	"github.com/ratehub/ratehub-server/internal/model"
)

// TokenService resolves a principal from bearer tokens.
type TokenService interface {
	Authenticate(ctx context.Context, token string) (model.Principal, error)
}

// Authenticate validates bearer tokens and injects the principal into
// the request context. Requests failing here never reach a handler.
type Authenticate struct {
	tokenService TokenService
	logger       *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, logger: logger}
}

// Handle parses the Authorization header, verifies the token and
// stores the resolved principal. Expired tokens get their own 401
// message so clients can prompt for re-login; malformed tokens are a
// client error, not an authentication challenge.
func (m *Authenticate) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

		principal, err := m.tokenService.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			status, message := authFailure(err)
			c.AbortWithStatusJSON(status, gin.H{"message": message})
			return
		}

		SetPrincipal(c, principal)
		c.Next()
	}
}

func authFailure(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized, "Access denied. No token provided."
	case errors.Is(err, model.ErrTokenExpired):
		return http.StatusUnauthorized, "Session expired. Please log in again."
	case errors.Is(err, model.ErrPrincipalNotFound):
		return http.StatusNotFound, "User not found."
	case errors.Is(err, model.ErrMalformedToken):
		return http.StatusBadRequest, "Invalid token."
	default:
		return http.StatusInternalServerError, "Server error"
	}
}

// RequireRole denies the request unless the authenticated principal's
// role is in the allowed set.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
			return
		}
		if _, ok := allowed[principal.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden. You do not have access."})
			return
		}
		c.Next()
	}
}
