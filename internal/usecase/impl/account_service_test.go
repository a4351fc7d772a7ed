package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ahmedhalac/brainstack-backend/config"
	"github.com/ahmedhalac/brainstack-backend/internal/domain/entity"
	domainerrors "github.com/ahmedhalac/brainstack-backend/internal/domain/errors"
	"github.com/ahmedhalac/brainstack-backend/internal/domain/repository"
	"github.com/ahmedhalac/brainstack-backend/internal/mocks"
	"github.com/ahmedhalac/brainstack-backend/internal/usecase"
)

type serviceFixture struct {
	txm      *mocks.MockTransactionManager
	accounts *mocks.MockAccountRepository
	hasher   *mocks.MockPasswordHasher
	tokens   *mocks.MockTokenService
	codes    *mocks.MockCodeGenerator
	notifier *mocks.MockNotifier
	svc      usecase.AccountUsecase
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	accounts := new(mocks.MockAccountRepository)
	factory := new(mocks.MockRepositoryFactory)
	factory.On("AccountRepo").Return(accounts).Maybe()

	txm := &mocks.MockTransactionManager{Factory: factory}
	hasher := new(mocks.MockPasswordHasher)
	tokens := new(mocks.MockTokenService)
	codes := new(mocks.MockCodeGenerator)
	notifier := new(mocks.MockNotifier)

	cfg := &config.Config{
		Auth: &config.AuthConfig{CodeTTL: 10 * time.Minute},
		Mail: &config.MailConfig{MaxRetries: 1},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &serviceFixture{
		txm:      txm,
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		codes:    codes,
		notifier: notifier,
		svc:      NewAccountService(txm, accounts, hasher, tokens, codes, notifier, cfg, logger),
	}
}

func unverifiedAccount(email, code string, expiresAt time.Time) *entity.Account {
	account := &entity.Account{
		ID:           uuid.New(),
		FullName:     "Jamie Doe",
		Email:        email,
		PasswordHash: "$stored-hash$",
	}
	account.IssueCode(code, expiresAt)

	return account
}

func TestRegister_Success(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.accounts.On("FindByEmail", mock.Anything, "jamie@example.com").
		Return(nil, repository.ErrAccountNotFound).Once()
	f.hasher.On("Hash", "secret-password").Return("$hashed$", nil).Once()
	f.codes.On("Generate").Return("123456", nil).Once()
	f.txm.On("Execute", mock.Anything, mock.Anything).Return(nil).Once()
	f.accounts.On("Create", mock.Anything, mock.MatchedBy(func(a *entity.Account) bool {
		return a.Email == "jamie@example.com" &&
			a.PasswordHash == "$hashed$" &&
			!a.IsEmailVerified &&
			a.HasPendingCode() &&
			*a.VerificationCode == "123456"
	})).Return(nil).Once()
	f.notifier.On("SendVerificationCode", mock.Anything, "jamie@example.com", "123456").
		Return(nil).Once()

	output, err := f.svc.Register(ctx, &usecase.RegisterInput{
		FullName: "Jamie Doe",
		Email:    "jamie@example.com",
		Password: "secret-password",
	})

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.NotEmpty(t, output.Message)
	f.accounts.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestRegister_NormalizesEmail(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.accounts.On("FindByEmail", mock.Anything, "jamie@example.com").
		Return(nil, repository.ErrAccountNotFound).Once()
	f.hasher.On("Hash", mock.Anything).Return("$hashed$", nil).Once()
	f.codes.On("Generate").Return("654321", nil).Once()
	f.txm.On("Execute", mock.Anything, mock.Anything).Return(nil).Once()
	f.accounts.On("Create", mock.Anything, mock.MatchedBy(func(a *entity.Account) bool {
		return a.Email == "jamie@example.com"
	})).Return(nil).Once()
	f.notifier.On("SendVerificationCode", mock.Anything, "jamie@example.com", "654321").
		Return(nil).Once()

	_, err := f.svc.Register(ctx, &usecase.RegisterInput{
		FullName: "Jamie Doe",
		Email:    "  Jamie@EXAMPLE.com ",
		Password: "secret-password",
	})

	assert.NoError(t, err)
	f.accounts.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newServiceFixture(t)

	existing := unverifiedAccount("jamie@example.com", "111111", time.Now().Add(time.Minute))
	f.accounts.On("FindByEmail", mock.Anything, "jamie@example.com").
		Return(existing, nil).Once()

	output, err := f.svc.Register(context.Background(), &usecase.RegisterInput{
		FullName: "Jamie Doe",
		Email:    "jamie@example.com",
		Password: "secret-password",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountAlreadyExists))
	f.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestRegister_DuplicateRace(t *testing.T) {
	f := newServiceFixture(t)

	// Pre-check misses, but a concurrent registration wins the race and the
	// unique index rejects the insert.
	f.accounts.On("FindByEmail", mock.Anything, "jamie@example.com").
		Return(nil, repository.ErrAccountNotFound).Once()
	f.hasher.On("Hash", mock.Anything).Return("$hashed$", nil).Once()
	f.codes.On("Generate").Return("123456", nil).Once()
	f.txm.On("Execute", mock.Anything, mock.Anything).Return(nil).Once()
	f.accounts.On("Create", mock.Anything, mock.Anything).
		Return(domainerrors.ErrAccountAlreadyExists).Once()

	output, err := f.svc.Register(context.Background(), &usecase.RegisterInput{
		FullName: "Jamie Doe",
		Email:    "jamie@example.com",
		Password: "secret-password",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountAlreadyExists))
	f.notifier.AssertNotCalled(t, "SendVerificationCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_DeliveryFailure(t *testing.T) {
	f := newServiceFixture(t)

	f.accounts.On("FindByEmail", mock.Anything, "jamie@example.com").
		Return(nil, repository.ErrAccountNotFound).Once()
	f.hasher.On("Hash", mock.Anything).Return("$hashed$", nil).Once()
	f.codes.On("Generate").Return("123456", nil).Once()
	f.txm.On("Execute", mock.Anything, mock.Anything).Return(nil).Once()
	f.accounts.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	f.notifier.On("SendVerificationCode", mock.Anything, "jamie@example.com", "123456").
		Return(errors.New("smtp unreachable"))

	output, err := f.svc.Register(context.Background(), &usecase.RegisterInput{
		FullName: "Jamie Doe",
		Email:    "jamie@example.com",
		Password: "secret-password",
	})

	// The account stays committed; only the delivery failure is surfaced.
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrDeliveryFailed))
	f.accounts.AssertExpectations(t)
}

func TestRegister_DeliveryRetriesThenSucceeds(t *testing.T) {
	f := newServiceFixture(t)

	f.accounts.On("FindByEmail", mock.Anything, "jamie@example.com").
		Return(nil, repository.ErrAccountNotFound).Once()
	f.hasher.On("Hash", mock.Anything).Return("$hashed$", nil).Once()
	f.codes.On("Generate").Return("123456", nil).Once()
	f.txm.On("Execute", mock.Anything, mock.Anything).Return(nil).Once()
	f.accounts.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	f.notifier.On("SendVerificationCode", mock.Anything, "jamie@example.com", "123456").
		Return(errors.New("transient failure")).Once()
	f.notifier.On("SendVerificationCode", mock.Anything, "jamie@example.com", "123456").
		Return(nil).Once()

	output, err := f.svc.Register(context.Background(), &usecase.RegisterInput{
		FullName: "Jamie Doe",
		Email:    "jamie@example.com",
		Password: "secret-password",
	})

	assert.NoError(t, err)
	assert.NotNil(t, output)
	f.notifier.AssertExpectations(t)
}

func TestVerifyEmail_Success(t *testing.T) {
	f := newServiceFixture(t)

	account := unverifiedAccount("jamie@example.com", "123456", time.Now().Add(time.Minute))
	f.txm.On("Execute", mock.Anything, mock.Anything).Return(nil).Once()
	f.accounts.On("FindByEmail", mock.Anything, "jamie@example.com").
		Return(account, nil).Once()
	f.accounts.On("FindByEmailAndCode", mock.Anything, "jamie@example.com", "123456").
		Return(account, nil).Once()
	f.accounts.On("Update", mock.Anything, mock.MatchedBy(func(a *entity.Account) bool {
		return a.IsEmailVerified && !a.HasPendingCode()
	})).Return(nil).Once()

	output, err := f.svc.VerifyEmail(context.Background(), &usecase.VerifyEmailInput{
		Email:            "jamie@example.com",
		VerificationCode: "123456",
	})

	assert.NoError(t, err)
	assert.NotNil(t, output)
	f.accounts.AssertExpectations(t)
}

func TestVerifyEmail_UnknownAccount(t *testing.T) {
	f := newServiceFixture(t)

	f.txm.On("Execute", mock.Anything, mock.Anything).Return(nil).Once()
	f.accounts.On("FindByEmail", mock.Anything, "nobody@example.com").
		Return(nil, repository.ErrAccountNotFound).Once()

	_, err := f.svc.VerifyEmail(context.Background(), &usecase.VerifyEmailInput{
		Email:            "nobody@example.com",
		VerificationCode: "123456",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}

func TestVerifyEmail_AlreadyVerified(t *testing.T) {
	f := newServiceFixture(t)

	account := unverifiedAccount("jamie@example.com", "123456", time.Now().Add(time.Minute))
	account.MarkVerified()

	f.txm.On("Execute", mock.Anything, mock.Anything).Return(nil).Once()
	f.accounts.On("FindByEmail", mock.Anything, "jamie@example.com").
		Return(account, nil).Once()

	_, err := f.svc.VerifyEmail(context.Background(), &usecase.VerifyEmailInput{
		Email:            "jamie@example.com",
		VerificationCode: "123456",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrAlreadyVerified))
	f.accounts.AssertNotCalled(t, "FindByEmailAndCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyEmail_WrongCode(t *testing.T) {
	f := newServiceFixture(t)

	account := unverifiedAccount("jamie@example.com", "123456", time.Now().Add(time.Minute))
	f.txm.On("Execute", mock.Anything, mock.Anything).Return(nil).Once()
	f.accounts.On("FindByEmail", mock.Anything, "jamie@example.com").
		Return(account, nil).Once()
	f.accounts.On("FindByEmailAndCode", mock.Anything, "jamie@example.com", "999999").
		Return(nil, repository.ErrAccountNotFound).Once()

	_, err := f.svc.VerifyEmail(context.Background(), &usecase.VerifyEmailInput{
		Email:            "jamie@example.com",
		VerificationCode: "999999",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrCodeInvalid))
	f.accounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestVerifyEmail_ExpiredCode(t *testing.T) {
	f := newServiceFixture(t)

	account := unverifiedAccount("jamie@example.com", "123456", time.Now().Add(-time.Minute))
	f.txm.On("Execute", mock.Anything, mock.Anything).Return(nil).Once()
	f.accounts.On("FindByEmail", mock.Anything, "jamie@example.com").
		Return(account, nil).Once()
	f.accounts.On("FindByEmailAndCode", mock.Anything, "jamie@example.com", "123456").
		Return(account, nil).Once()

	_, err := f.svc.VerifyEmail(context.Background(), &usecase.VerifyEmailInput{
		Email:            "jamie@example.com",
		VerificationCode: "123456",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrCodeExpired))
	f.accounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestResendCode_Success(t *testing.T) {
	f := newServiceFixture(t)

	account := unverifiedAccount("jamie@example.com", "123456", time.Now().Add(-time.Minute))

	f.codes.On("Generate").Return("777777", nil).Once()
	f.txm.On("Execute", mock.Anything, mock.Anything).Return(nil).Once()
	f.accounts.On("FindByEmail", mock.Anything, "jamie@example.com").
		Return(account, nil).Once()
	f.accounts.On("Update", mock.Anything, mock.MatchedBy(func(a *entity.Account) bool {
		return a.HasPendingCode() &&
			*a.VerificationCode == "777777" &&
			a.VerificationCodeExpiresAt.After(time.Now())
	})).Return(nil).Once()
	f.notifier.On("SendVerificationCode", mock.Anything, "jamie@example.com", "777777").
		Return(nil).Once()

	output, err := f.svc.ResendCode(context.Background(), &usecase.ResendCodeInput{
		Email: "jamie@example.com",
	})

	assert.NoError(t, err)
	assert.NotNil(t, output)
	f.accounts.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestResendCode_AlreadyVerified(t *testing.T) {
	f := newServiceFixture(t)

	account := unverifiedAccount("jamie@example.com", "123456", time.Now().Add(time.Minute))
	account.MarkVerified()

	f.codes.On("Generate").Return("777777", nil).Once()
	f.txm.On("Execute", mock.Anything, mock.Anything).Return(nil).Once()
	f.accounts.On("FindByEmail", mock.Anything, "jamie@example.com").
		Return(account, nil).Once()

	_, err := f.svc.ResendCode(context.Background(), &usecase.ResendCodeInput{
		Email: "jamie@example.com",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrAlreadyVerified))
	f.notifier.AssertNotCalled(t, "SendVerificationCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestResendCode_UnknownAccount(t *testing.T) {
	f := newServiceFixture(t)

	f.codes.On("Generate").Return("777777", nil).Once()
	f.txm.On("Execute", mock.Anything, mock.Anything).Return(nil).Once()
	f.accounts.On("FindByEmail", mock.Anything, "nobody@example.com").
		Return(nil, repository.ErrAccountNotFound).Once()

	_, err := f.svc.ResendCode(context.Background(), &usecase.ResendCodeInput{
		Email: "nobody@example.com",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}

func TestLogin_Success(t *testing.T) {
	f := newServiceFixture(t)

	account := unverifiedAccount("jamie@example.com", "123456", time.Now().Add(time.Minute))
	f.accounts.On("FindByEmail", mock.Anything, "jamie@example.com").
		Return(account, nil).Once()
	f.hasher.On("Check", "secret-password", "$stored-hash$").Return(true).Once()
	f.tokens.On("Issue", account.ID).Return("signed.jwt.token", nil).Once()

	output, err := f.svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "jamie@example.com",
		Password: "secret-password",
	})

	assert.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", output.AccessToken)
}

func TestLogin_UnverifiedAccountStillAllowed(t *testing.T) {
	f := newServiceFixture(t)

	// Verified status does not gate login.
	account := unverifiedAccount("jamie@example.com", "123456", time.Now().Add(time.Minute))
	assert.False(t, account.IsEmailVerified)

	f.accounts.On("FindByEmail", mock.Anything, "jamie@example.com").
		Return(account, nil).Once()
	f.hasher.On("Check", "secret-password", "$stored-hash$").Return(true).Once()
	f.tokens.On("Issue", account.ID).Return("signed.jwt.token", nil).Once()

	output, err := f.svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "jamie@example.com",
		Password: "secret-password",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, output.AccessToken)
}

func TestLogin_UnknownEmail(t *testing.T) {
	f := newServiceFixture(t)

	f.accounts.On("FindByEmail", mock.Anything, "nobody@example.com").
		Return(nil, repository.ErrAccountNotFound).Once()
	// The dummy comparison still runs so timing does not reveal existence.
	f.hasher.On("Check", "whatever", dummyPasswordHash).Return(false).Once()

	output, err := f.svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	f.hasher.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newServiceFixture(t)

	account := unverifiedAccount("jamie@example.com", "123456", time.Now().Add(time.Minute))
	f.accounts.On("FindByEmail", mock.Anything, "jamie@example.com").
		Return(account, nil).Once()
	f.hasher.On("Check", "wrong-password", "$stored-hash$").Return(false).Once()

	output, err := f.svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "jamie@example.com",
		Password: "wrong-password",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	f.tokens.AssertNotCalled(t, "Issue", mock.Anything)
}

func TestGetAccount_Success(t *testing.T) {
	f := newServiceFixture(t)

	account := unverifiedAccount("jamie@example.com", "123456", time.Now().Add(time.Minute))
	f.accounts.On("FindByID", mock.Anything, account.ID).Return(account, nil).Once()

	output, err := f.svc.GetAccount(context.Background(), account.ID)

	assert.NoError(t, err)
	assert.Equal(t, account.ID, output.ID)
	assert.Equal(t, "jamie@example.com", output.Email)
	assert.Equal(t, "Jamie Doe", output.FullName)
	assert.False(t, output.IsEmailVerified)
}

func TestGetAccount_NotFound(t *testing.T) {
	f := newServiceFixture(t)

	missingID := uuid.New()
	f.accounts.On("FindByID", mock.Anything, missingID).
		Return(nil, repository.ErrAccountNotFound).Once()

	output, err := f.svc.GetAccount(context.Background(), missingID)

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}
