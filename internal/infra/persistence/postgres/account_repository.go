package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ahmedhalac/brainstack-backend/internal/domain/entity"
	domainerrors "github.com/ahmedhalac/brainstack-backend/internal/domain/errors"
	"github.com/ahmedhalac/brainstack-backend/internal/domain/repository"
	"github.com/ahmedhalac/brainstack-backend/internal/infra/persistence/model"
)

// accountRepository implements the repository.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a repository bound to the given GORM handle,
// which may be either the shared pool or an open transaction.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByEmail looks an account up by its normalized email address.
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var record model.AccountModel
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to query account by email")
	}

	return toAccountDomain(&record), nil
}

// FindByEmailAndCode matches an account by email together with its pending
// verification code. A cleared or different code yields not-found.
func (r *accountRepository) FindByEmailAndCode(ctx context.Context, email, code string) (*entity.Account, error) {
	var record model.AccountModel
	err := r.db.WithContext(ctx).
		Where("email = ? AND verification_code = ?", email, code).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to query account by email and code")
	}

	return toAccountDomain(&record), nil
}

// FindByID looks an account up by its identifier.
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var record model.AccountModel
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to query account by id")
	}

	return toAccountDomain(&record), nil
}

// Create persists a new account. The unique index on email is the
// authoritative duplicate guard, so a constraint violation here maps to the
// duplicate-registration domain error. The generated ID and timestamps are
// written back onto the entity.
func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	record := fromAccountDomain(account)

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrAccountAlreadyExists
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	account.ID = record.ID
	account.CreatedAt = record.CreatedAt
	account.UpdatedAt = record.UpdatedAt

	return nil
}

// Update writes the full account row back. Save is used on purpose so that
// cleared verification fields are written out as NULL.
func (r *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	record := fromAccountDomain(account)

	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update account")
	}

	return nil
}

func toAccountDomain(record *model.AccountModel) *entity.Account {
	return &entity.Account{
		ID:                        record.ID,
		FullName:                  record.FullName,
		Email:                     record.Email,
		PasswordHash:              record.PasswordHash,
		IsEmailVerified:           record.IsEmailVerified,
		VerificationCode:          record.VerificationCode,
		VerificationCodeExpiresAt: record.VerificationCodeExpiresAt,
		CreatedAt:                 record.CreatedAt,
		UpdatedAt:                 record.UpdatedAt,
	}
}

func fromAccountDomain(account *entity.Account) *model.AccountModel {
	return &model.AccountModel{
		ID:                        account.ID,
		FullName:                  account.FullName,
		Email:                     account.Email,
		PasswordHash:              account.PasswordHash,
		IsEmailVerified:           account.IsEmailVerified,
		VerificationCode:          account.VerificationCode,
		VerificationCodeExpiresAt: account.VerificationCodeExpiresAt,
		CreatedAt:                 account.CreatedAt,
		UpdatedAt:                 account.UpdatedAt,
	}
}
