package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ratehub/ratehub-server/internal/model"
)

// Claims represents JWT claims carrying the subject's ID and role.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID  `json:"user_id"`
	Role   model.Role `json:"role"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
}

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string) model.TokenManager {
	return &JWT{secretKey: secretKey}
}

// Generate creates a signed token asserting the principal's identity
// and role for the given duration.
func (j *JWT) Generate(principal model.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: principal.ID,
		Role:   principal.Role,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Parse validates the signature and expiry and extracts the principal.
// Expired tokens map to model.ErrTokenExpired; any other defect maps
// to model.ErrMalformedToken.
func (j *JWT) Parse(tokenString string) (model.Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.Principal{}, model.ErrTokenExpired
		}
		return model.Principal{}, model.ErrMalformedToken
	}
	if !token.Valid {
		return model.Principal{}, model.ErrMalformedToken
	}
	if claims.UserID == uuid.Nil || !claims.Role.Valid() {
		return model.Principal{}, model.ErrMalformedToken
	}

	return model.Principal{ID: claims.UserID, Role: claims.Role}, nil
}
