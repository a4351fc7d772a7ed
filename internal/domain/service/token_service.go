package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by the access token.
type Claims struct {
	AccountID uuid.UUID
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating bearer tokens.
// This abstracts the details of token creation from the use cases. The signing
// key is process-wide configuration, loaded once at startup.
type TokenService interface {
	// Issue creates a signed access token bound to the given account identifier.
	Issue(accountID uuid.UUID) (string, error)

	// Validate checks a token string and returns its claims when valid.
	// Used by the route-protection middleware to authenticate requests.
	Validate(tokenString string) (*Claims, error)

	// AccessTokenDuration returns the configured validity window for issued tokens.
	AccessTokenDuration() time.Duration
}
