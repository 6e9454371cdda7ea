package model

import "time"

// TokenManager generates and validates signed identity tokens.
// Parse returns ErrTokenExpired for structurally valid but expired
// tokens and ErrMalformedToken for anything else it cannot accept.
type TokenManager interface {
	Generate(principal Principal, ttl time.Duration) (string, error)
	Parse(token string) (Principal, error)
}
