package usecase

import (
	"context"
	"time"

	"auth_backend/internal/feature/auth/domain/entity"
)

// ResetTokenRepository abstracts the persistence layer for password-reset tokens.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ResetTokenRepository interface {
	// Create persists a new reset token to the storage.
	Create(ctx context.Context, token *entity.ResetToken) error

	// FindByHashAndUnexpired retrieves the token matching the given hash
	// whose expiry is after now. A single lookup enforces both hash match
	// and freshness.
	FindByHashAndUnexpired(ctx context.Context, tokenHash string, now time.Time) (*entity.ResetToken, error)

	// DeleteByUserID removes all reset tokens belonging to a user.
	DeleteByUserID(ctx context.Context, userID uint) error
}
