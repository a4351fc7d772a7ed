package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. PostgreSQL generates UUIDs via gen_random_uuid().
// The unique index on email is the authoritative guard against duplicate
// registrations; the usecase pre-check is advisory only.
type AccountModel struct {
	ID                        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FullName                  string    `gorm:"type:varchar(100);not null"`
	Email                     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash              string    `gorm:"type:varchar(255);not null"`
	IsEmailVerified           bool      `gorm:"not null;default:false"`
	VerificationCode          *string   `gorm:"type:varchar(6)"`
	VerificationCodeExpiresAt *time.Time
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
