// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"

	"gorm.io/gorm"
)

// resetTokenMySQL is a MySQL implementation of the ResetTokenRepository interface.
type resetTokenMySQL struct {
	db *gorm.DB
}

// Compile-time check to ensure resetTokenMySQL implements ResetTokenRepository.
var _ usecase.ResetTokenRepository = (*resetTokenMySQL)(nil)

// NewResetTokenMySQL creates a new instance of resetTokenMySQL.
func NewResetTokenMySQL(db *gorm.DB) *resetTokenMySQL {
	return &resetTokenMySQL{db: db}
}

// Create persists a new reset token to the database.
func (r *resetTokenMySQL) Create(ctx context.Context, token *entity.ResetToken) error {
	model := ResetTokenModelFromEntity(token)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByHashAndUnexpired retrieves the token matching the hash whose
// expiry is after now. Returns usecase.ErrResetTokenInvalid when no such
// token exists, covering both unknown and expired tokens.
func (r *resetTokenMySQL) FindByHashAndUnexpired(ctx context.Context, tokenHash string, now time.Time) (*entity.ResetToken, error) {
	var model ResetTokenModel
	if err := r.db.WithContext(ctx).
		Where("token_hash = ? AND expires_at > ?", tokenHash, now).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrResetTokenInvalid
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// DeleteByUserID removes all reset tokens belonging to a user.
func (r *resetTokenMySQL) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&ResetTokenModel{}).Error
}
