// Package authsvc implements the auth service: credential storage over
// Postgres, password hashing, token issue and verification, and the RPC
// operations the gateway calls.
package authsvc

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/chirper/social-system/internal/core/domain"
)

// credentialRecord is the relational row backing one account. Exactly one
// row per user, keyed by the user's internal id.
type credentialRecord struct {
	UserID       string    `gorm:"column:user_id;primaryKey"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"column:role;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (credentialRecord) TableName() string {
	return "user_credentials"
}

// Repository is the persistence seam for credentials.
type Repository interface {
	Insert(ctx context.Context, rec *credentialRecord) error
	FindByUserID(ctx context.Context, userID string) (*credentialRecord, error)
}

// GormRepository stores credentials in Postgres through GORM.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Migrate creates the credentials table.
func (r *GormRepository) Migrate() error {
	return r.db.AutoMigrate(&credentialRecord{})
}

func (r *GormRepository) Insert(ctx context.Context, rec *credentialRecord) error {
	err := r.db.WithContext(ctx).Create(rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrCredentialExists
	}
	return err
}

func (r *GormRepository) FindByUserID(ctx context.Context, userID string) (*credentialRecord, error) {
	var rec credentialRecord
	err := r.db.WithContext(ctx).First(&rec, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCredentialNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
