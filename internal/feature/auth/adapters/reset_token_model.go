package adapters

import (
	"time"

	"auth_backend/internal/feature/auth/domain/entity"
)

// ResetTokenModel is the GORM model for the reset_tokens table.
type ResetTokenModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	TokenHash string    `gorm:"uniqueIndex;size:64;not null"` // hex-encoded SHA-256
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
}

// TableName returns the table name for GORM.
func (ResetTokenModel) TableName() string {
	return "reset_tokens"
}

// ToEntity converts the GORM model to a domain entity.
func (m *ResetTokenModel) ToEntity() *entity.ResetToken {
	return &entity.ResetToken{
		UserID:    m.UserID,
		TokenHash: m.TokenHash,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
	}
}

// ResetTokenModelFromEntity converts a domain entity to a GORM model.
func ResetTokenModelFromEntity(t *entity.ResetToken) *ResetTokenModel {
	return &ResetTokenModel{
		UserID:    t.UserID,
		TokenHash: t.TokenHash,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
	}
}
