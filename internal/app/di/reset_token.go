package di

import (
	authadapters "auth_backend/internal/feature/auth/adapters"
	"auth_backend/internal/feature/auth/usecase"
	"auth_backend/internal/platform/resettoken"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewResetTokenRepository creates a ResetTokenRepository implementation.
// If Redis is available, it returns a Redis-backed implementation whose
// TTL handles token expiry. Otherwise, it falls back to MySQL.
func NewResetTokenRepository(rdb *redis.Client, db *gorm.DB) usecase.ResetTokenRepository {
	if rdb != nil {
		return resettoken.NewResetTokenRedis(rdb, "reset")
	}
	return authadapters.NewResetTokenMySQL(db)
}
