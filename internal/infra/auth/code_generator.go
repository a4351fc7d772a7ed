// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ahmedhalac/brainstack-backend/internal/domain/service"
)

const (
	codeMin  = 100000
	codeSpan = 900000
)

// randomCodeGenerator draws 6-digit verification codes from crypto/rand.
// Codes authorize an account state change, so a general-purpose PRNG is not
// acceptable here.
type randomCodeGenerator struct{}

// NewCodeGenerator returns the implementation as a service.CodeGenerator interface.
func NewCodeGenerator() service.CodeGenerator {
	return &randomCodeGenerator{}
}

// Generate returns a code uniformly distributed over [100000, 999999].
func (g *randomCodeGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", errors.Wrap(err, "failed to read random bytes for verification code")
	}

	return strconv.FormatInt(n.Int64()+codeMin, 10), nil
}
