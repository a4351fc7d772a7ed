// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the persisted identity record for one registered user.
// The email is normalized (lower-cased, trimmed) before storage and before
// every lookup; uniqueness is enforced by the credential store.
type Account struct {
	ID                        uuid.UUID  // Unique identifier, assigned by the store at creation.
	FullName                  string     // Display name, set at registration.
	Email                     string     // Normalized login identifier, unique across all accounts.
	PasswordHash              string     // Bcrypt hash of the password. Never logged, never serialized out.
	IsEmailVerified           bool       // False at creation; flips to true exactly once and never reverts.
	VerificationCode          *string    // Pending 6-digit one-time code; nil once verified.
	VerificationCodeExpiresAt *time.Time // Validity window of the current code; nil exactly when the code is nil.
	CreatedAt                 time.Time  // Timestamp of when this account was created.
	UpdatedAt                 time.Time  // Timestamp of the last modification to this account.
}

// HasPendingCode reports whether a verification code has been issued and not yet consumed.
func (a *Account) HasPendingCode() bool {
	return a.VerificationCode != nil && a.VerificationCodeExpiresAt != nil
}

// IssueCode attaches a fresh verification code with its expiry instant.
func (a *Account) IssueCode(code string, expiresAt time.Time) {
	a.VerificationCode = &code
	a.VerificationCodeExpiresAt = &expiresAt
}

// MarkVerified flips the account to verified and clears both code fields,
// keeping the code/expiry pairing invariant intact.
func (a *Account) MarkVerified() {
	a.IsEmailVerified = true
	a.VerificationCode = nil
	a.VerificationCodeExpiresAt = nil
}
