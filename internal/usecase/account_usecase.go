// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// Validation tags carry the caller-facing rules; the usecase itself only
// assumes non-empty strings have been delivered.
type RegisterInput struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// VerifyEmailInput defines the data required to verify an email address.
type VerifyEmailInput struct {
	Email            string `json:"email" validate:"required,email"`
	VerificationCode string `json:"verificationCode" validate:"required,len=6,numeric"`
}

// ResendCodeInput defines the data required to reissue a verification code.
type ResendCodeInput struct {
	Email string `json:"email" validate:"required,email"`
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// MessageOutput returns a confirmation message with no sensitive data.
type MessageOutput struct {
	Message string `json:"message"`
}

// LoginOutput returns the signed access token after a successful login.
type LoginOutput struct {
	AccessToken string `json:"accessToken"`
}

// AccountOutput returns the public view of an account. Credential material
// and pending verification codes never leave the usecase layer.
type AccountOutput struct {
	ID              uuid.UUID `json:"id"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
}

// AccountUsecase defines the interface for account-credential business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*MessageOutput, error)
	VerifyEmail(ctx context.Context, input *VerifyEmailInput) (*MessageOutput, error)
	ResendCode(ctx context.Context, input *ResendCodeInput) (*MessageOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	GetAccount(ctx context.Context, accountID uuid.UUID) (*AccountOutput, error)
}
