package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ratehub/ratehub-server/internal/logger"
	"github.com/ratehub/ratehub-server/internal/model"
)

// TokenService issues identity tokens and authenticates presented
// ones. Verification is stateless apart from one user store lookup
// confirming the subject still exists.
type TokenService struct {
	manager   model.TokenManager
	userStore model.UserStore
	logger    *logger.Logger
}

func NewTokenService(manager model.TokenManager, userStore model.UserStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, userStore: userStore, logger: logger}
}

// Issue creates a signed token for the user with the given lifetime.
func (s *TokenService) Issue(user model.User, ttl time.Duration) (string, error) {
	token, err := s.manager.Generate(model.Principal{ID: user.ID, Role: user.Role}, ttl)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Authenticate verifies a token string and resolves the subject
// against the user store. The role on the returned principal comes
// from the stored record, not the token claims.
func (s *TokenService) Authenticate(ctx context.Context, tokenString string) (model.Principal, error) {
	if tokenString == "" {
		return model.Principal{}, model.ErrUnauthenticated
	}

	claims, err := s.manager.Parse(tokenString)
	if err != nil {
		return model.Principal{}, err
	}

	user, err := s.userStore.GetByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Info("Token service: token subject no longer exists",
				"user_id", claims.ID)
			return model.Principal{}, model.ErrPrincipalNotFound
		}
		return model.Principal{}, fmt.Errorf("failed to resolve token subject: %w", err)
	}

	return model.Principal{ID: user.ID, Role: user.Role}, nil
}
