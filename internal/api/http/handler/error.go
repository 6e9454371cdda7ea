package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ratehub/ratehub-server/internal/logger"
	"github.com/ratehub/ratehub-server/internal/model"
)

// respondError maps domain errors to transport status codes. Unknown
// errors are logged with context and surface as a generic server
// error; internal details never reach the caller.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	var validationErr *model.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Message})
	case errors.Is(err, model.ErrInvalidRatingValue):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Rating value must be an integer between 1 and 5."})
	case errors.Is(err, model.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
	case errors.Is(err, model.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered."})
	case errors.Is(err, model.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden. You do not have access."})
	case errors.Is(err, model.ErrNoStoreAssigned):
		c.JSON(http.StatusNotFound, gin.H{"message": "No store is assigned to this account."})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found."})
	case errors.Is(err, model.ErrStoreUnavailable), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Service temporarily unavailable."})
	default:
		log.Error("unexpected error",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}
