// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ahmedhalac/brainstack-backend/internal/domain/entity"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// The application layer will depend on this interface, not the concrete implementation.
// Callers are expected to pass normalized emails; the store enforces uniqueness.
type AccountRepository interface {
	// FindByEmail retrieves a single account by its normalized email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByEmailAndCode retrieves the account matching both the normalized email
	// and the exact verification code. Used to distinguish "unknown user" from
	// "wrong code" during email verification.
	FindByEmailAndCode(ctx context.Context, email, code string) (*entity.Account, error)

	// FindByID retrieves a single account by its identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// Create persists a new account entity to the storage.
	Create(ctx context.Context, account *entity.Account) error

	// Update modifies an existing account entity in the storage.
	Update(ctx context.Context, account *entity.Account) error
}
