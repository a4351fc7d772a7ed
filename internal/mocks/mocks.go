// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ahmedhalac/brainstack-backend/internal/domain/entity"
	"github.com/ahmedhalac/brainstack-backend/internal/domain/repository"
	"github.com/ahmedhalac/brainstack-backend/internal/domain/service"
	"github.com/ahmedhalac/brainstack-backend/internal/usecase"
)

// MockAccountUsecase mocks usecase.AccountUsecase.
type MockAccountUsecase struct {
	mock.Mock
}

func (m *MockAccountUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.MessageOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.MessageOutput), args.Error(1)
}

func (m *MockAccountUsecase) VerifyEmail(ctx context.Context, input *usecase.VerifyEmailInput) (*usecase.MessageOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.MessageOutput), args.Error(1)
}

func (m *MockAccountUsecase) ResendCode(ctx context.Context, input *usecase.ResendCodeInput) (*usecase.MessageOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.MessageOutput), args.Error(1)
}

func (m *MockAccountUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.LoginOutput), args.Error(1)
}

func (m *MockAccountUsecase) GetAccount(ctx context.Context, accountID uuid.UUID) (*usecase.AccountOutput, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.AccountOutput), args.Error(1)
}

// MockAccountRepository mocks repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmailAndCode(ctx context.Context, email, code string) (*entity.Account, error) {
	args := m.Called(ctx, email, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)

	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)

	return args.Error(0)
}

// MockRepositoryFactory mocks repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

func (m *MockRepositoryFactory) AccountRepo() repository.AccountRepository {
	args := m.Called()

	return args.Get(0).(repository.AccountRepository)
}

// MockTransactionManager mocks repository.TransactionManager. Execute runs
// the callback against the configured factory so the business logic inside
// the transaction is actually exercised.
type MockTransactionManager struct {
	mock.Mock

	Factory repository.RepositoryFactory
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}

	return fn(m.Factory)
}

// MockPasswordHasher mocks service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// MockTokenService mocks service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(accountID uuid.UUID) (string, error) {
	args := m.Called(accountID)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Validate(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockTokenService) AccessTokenDuration() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}

// MockCodeGenerator mocks service.CodeGenerator.
type MockCodeGenerator struct {
	mock.Mock
}

func (m *MockCodeGenerator) Generate() (string, error) {
	args := m.Called()

	return args.String(0), args.Error(1)
}

// MockNotifier mocks service.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendVerificationCode(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)

	return args.Error(0)
}
