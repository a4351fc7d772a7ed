// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ahmedhalac/brainstack-backend/config"
	"github.com/ahmedhalac/brainstack-backend/internal/domain/service"
)

const defaultAccessTTL = 24 * time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret    string        // Secret key for signing access tokens, loaded once at startup.
	accessTTL time.Duration // Time-to-live for access tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	accessTTL := defaultAccessTTL
	if cfg.Auth != nil && cfg.Auth.AccessTokenTTL > 0 {
		accessTTL = cfg.Auth.AccessTokenTTL
	}

	return &jwtService{
		secret:    cfg.SecretKey.Access,
		accessTTL: accessTTL,
	}, nil
}

// Issue creates a signed HS256 access token bound to the account identifier.
func (s *jwtService) Issue(accountID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": accountID.String(),          // Subject (who the token is for)
		"iat": now.Unix(),                  // Issued At
		"exp": now.Add(s.accessTTL).Unix(), // Expiration Time
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}

	return signed, nil
}

// Validate checks the signature and expiry of a token string and maps it back
// to the account identifier it was issued for.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token structure")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected token claims type")
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return nil, errors.Wrap(err, "subject missing from token")
	}

	accountID, err := uuid.Parse(subject)
	if err != nil {
		return nil, errors.Wrap(err, "invalid account id in token")
	}

	expiresAt, err := claims.GetExpirationTime()
	if err != nil {
		return nil, errors.Wrap(err, "expiry missing from token")
	}
	issuedAt, _ := claims.GetIssuedAt()

	return &service.Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: expiresAt,
			IssuedAt:  issuedAt,
		},
	}, nil
}

// AccessTokenDuration returns the configured validity window for issued tokens.
func (s *jwtService) AccessTokenDuration() time.Duration {
	return s.accessTTL
}
