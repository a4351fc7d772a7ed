// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmedhalac/brainstack-backend/config"
	"github.com/ahmedhalac/brainstack-backend/internal/domain/entity"
	domainerrors "github.com/ahmedhalac/brainstack-backend/internal/domain/errors"
	"github.com/ahmedhalac/brainstack-backend/internal/domain/repository"
	"github.com/ahmedhalac/brainstack-backend/internal/domain/service"
	"github.com/ahmedhalac/brainstack-backend/internal/usecase"
	"github.com/ahmedhalac/brainstack-backend/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sethvargo/go-retry"
)

// dummyPasswordHash is a bcrypt hash (cost 10) of a throwaway string. When a
// login targets an unknown email, the password is still checked against this
// hash so response timing does not reveal whether the account exists.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

const notifyBackoffBase = 500 * time.Millisecond

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager     repository.TransactionManager
	accounts      repository.AccountRepository
	hasher        service.PasswordHasher
	tokens        service.TokenService
	codes         service.CodeGenerator
	notifier      service.Notifier
	codeTTL       time.Duration
	notifyRetries uint64
	logger        *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(
	txManager repository.TransactionManager,
	accounts repository.AccountRepository,
	hasher service.PasswordHasher,
	tokens service.TokenService,
	codes service.CodeGenerator,
	notifier service.Notifier,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.AccountUsecase {
	notifyRetries := uint64(0)
	if cfg.Mail != nil && cfg.Mail.MaxRetries > 0 {
		notifyRetries = uint64(cfg.Mail.MaxRetries)
	}

	return &accountService{
		txManager:     txManager,
		accounts:      accounts,
		hasher:        hasher,
		tokens:        tokens,
		codes:         codes,
		notifier:      notifier,
		codeTTL:       cfg.Auth.CodeTTL,
		notifyRetries: notifyRetries,
		logger:        logger,
	}
}

// Register orchestrates the complete account registration process: uniqueness
// check, password hashing, code issuance, persistence and email delivery.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.MessageOutput, error) {
	email := util.NormalizeEmail(input.Email)
	srv.logger.Info("Starting registration", "email", email)

	// Advisory pre-check for a friendlier early failure. The store's unique
	// index on email is the authoritative guard against the race.
	_, err := srv.accounts.FindByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.ErrAccountAlreadyExists.WrapMessage("registration failed")
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(err, "failed to find account by email")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during registration", "error", err)

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("registration failed")
	}

	code, err := srv.codes.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate verification code")
	}

	account := &entity.Account{
		FullName:     input.FullName,
		Email:        email,
		PasswordHash: hashedPassword,
	}
	account.IssueCode(code, time.Now().Add(srv.codeTTL))

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		// A concurrent duplicate registration that wins the race surfaces here
		// as a unique violation, which the repository maps to AlreadyExists.
		return errors.WithStack(repoFactory.AccountRepo().Create(ctx, account))
	})
	if err != nil {
		srv.logger.Error("Failed to execute registration transaction", "error", err, "email", email)

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	// The account is committed at this point. A delivery failure is surfaced
	// but never rolls the account back; a later resend recovers it.
	if err := srv.deliverCode(ctx, email, code); err != nil {
		srv.logger.Error("Verification email delivery failed", "email", email, "error", err.Error())

		return nil, domainerrors.ErrDeliveryFailed.WrapMessage("registration notification failed")
	}
	srv.logger.Debug("Account registered successfully", "accountID", account.ID)

	return &usecase.MessageOutput{Message: "Registration successful! Check your email for the code."}, nil
}

// VerifyEmail checks the submitted code against the pending one and flips the
// account to verified, clearing both code fields atomically.
func (srv *accountService) VerifyEmail(ctx context.Context, input *usecase.VerifyEmailInput) (*usecase.MessageOutput, error) {
	email := util.NormalizeEmail(input.Email)
	srv.logger.Debug("Starting email verification", "email", email)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		// Two-step lookup so "user not found" and "code mismatch" stay
		// distinguishable failure kinds.
		account, err := accountRepo.FindByEmail(ctx, email)
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound.WrapMessage("verification failed")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find account by email")
		}

		// A verified account has no code on file; answering "invalid code"
		// here would conflate the two, so it gets its own failure kind.
		if account.IsEmailVerified {
			return domainerrors.ErrAlreadyVerified.WrapMessage("verification failed")
		}

		account, err = accountRepo.FindByEmailAndCode(ctx, email, input.VerificationCode)
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrCodeInvalid.WrapMessage("verification failed")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find account by email and code")
		}

		if account.VerificationCodeExpiresAt != nil && account.VerificationCodeExpiresAt.Before(time.Now()) {
			return domainerrors.ErrCodeExpired.WrapMessage("verification failed")
		}

		account.MarkVerified()

		return errors.WithStack(accountRepo.Update(ctx, account))
	})
	if err != nil {
		srv.logger.Warn("Email verification failed", "email", email, "error", err.Error())

		return nil, errors.Wrap(err, "failed to execute verification transaction")
	}
	srv.logger.Debug("Email verified successfully", "email", email)

	return &usecase.MessageOutput{Message: "Email verified successfully"}, nil
}

// ResendCode reissues a fresh verification code for a not-yet-verified
// account and emails it again.
func (srv *accountService) ResendCode(ctx context.Context, input *usecase.ResendCodeInput) (*usecase.MessageOutput, error) {
	email := util.NormalizeEmail(input.Email)
	srv.logger.Info("Resending verification code", "email", email)

	code, err := srv.codes.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate verification code")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByEmail(ctx, email)
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound.WrapMessage("resend failed")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find account by email")
		}

		if account.IsEmailVerified {
			return domainerrors.ErrAlreadyVerified.WrapMessage("resend failed")
		}

		account.IssueCode(code, time.Now().Add(srv.codeTTL))

		return errors.WithStack(accountRepo.Update(ctx, account))
	})
	if err != nil {
		srv.logger.Warn("Resend code failed", "email", email, "error", err.Error())

		return nil, errors.Wrap(err, "failed to execute resend transaction")
	}

	if err := srv.deliverCode(ctx, email, code); err != nil {
		srv.logger.Error("Verification email delivery failed", "email", email, "error", err.Error())

		return nil, domainerrors.ErrDeliveryFailed.WrapMessage("resend notification failed")
	}

	return &usecase.MessageOutput{Message: "A new verification code has been sent to your email."}, nil
}

// Login checks the credentials and issues an access token bound to the
// account identifier. Verified status does not gate login; that is the
// preserved product policy, not an oversight.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := util.NormalizeEmail(input.Email)
	srv.logger.Debug("Starting login", "email", email)

	account, err := srv.accounts.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(err, "failed to find account by email")
		}
		// Burn a full bcrypt comparison on the miss path so unknown emails
		// and wrong passwords answer in roughly equal time.
		srv.hasher.Check(input.Password, dummyPasswordHash)

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.logger.Warn("Login failed", "email", email)

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	accessToken, err := srv.tokens.Issue(account.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}
	srv.logger.Debug("Login successful", "accountID", account.ID)

	return &usecase.LoginOutput{AccessToken: accessToken}, nil
}

// GetAccount returns the public profile of the account behind a validated
// token. Credential material never crosses this boundary.
func (srv *accountService) GetAccount(ctx context.Context, accountID uuid.UUID) (*usecase.AccountOutput, error) {
	account, err := srv.accounts.FindByID(ctx, accountID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrAccountNotFound.WrapMessage("profile lookup failed")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return &usecase.AccountOutput{
		ID:              account.ID,
		FullName:        account.FullName,
		Email:           account.Email,
		IsEmailVerified: account.IsEmailVerified,
		CreatedAt:       account.CreatedAt,
	}, nil
}

// deliverCode sends the code with bounded exponential backoff. Each attempt
// is individually bounded by the notifier's own dial and IO deadlines.
func (srv *accountService) deliverCode(ctx context.Context, email, code string) error {
	backoff := retry.WithMaxRetries(srv.notifyRetries, retry.NewExponential(notifyBackoffBase))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := srv.notifier.SendVerificationCode(ctx, email, code); err != nil {
			srv.logger.Warn("Verification email attempt failed", "email", email, "error", err.Error())

			return retry.RetryableError(err)
		}

		return nil
	})
}
