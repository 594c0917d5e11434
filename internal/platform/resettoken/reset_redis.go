package resettoken

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"

	"github.com/redis/go-redis/v9"
)

// ResetTokenRedis implements usecase.ResetTokenRepository using Redis.
// The TTL of each entry matches the token's expiry, so expired tokens
// vanish without a cleanup job.
type ResetTokenRedis struct {
	client *redis.Client
	prefix string
}

var _ usecase.ResetTokenRepository = (*ResetTokenRedis)(nil)

// NewResetTokenRedis creates a new ResetTokenRedis instance.
func NewResetTokenRedis(client *redis.Client, prefix string) *ResetTokenRedis {
	return &ResetTokenRedis{
		client: client,
		prefix: prefix,
	}
}

// tokenKey returns the Redis key for a token hash.
func (r *ResetTokenRedis) tokenKey(hash string) string {
	return fmt.Sprintf("%s:%s", r.prefix, hash)
}

// userKey returns the Redis key indexing a user's live token hash.
// At most one reset token is live per user, so a plain string key suffices.
func (r *ResetTokenRedis) userKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", r.prefix, userID)
}

// Create persists a new reset token to Redis.
func (r *ResetTokenRedis) Create(ctx context.Context, token *entity.ResetToken) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal reset token: %w", err)
	}

	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("reset token already expired")
	}

	// Store token data keyed by hash
	if err := r.client.Set(ctx, r.tokenKey(token.TokenHash), data, ttl).Err(); err != nil {
		return err
	}

	// Index the hash under the owning user for DeleteByUserID
	return r.client.Set(ctx, r.userKey(token.UserID), token.TokenHash, ttl).Err()
}

// FindByHashAndUnexpired retrieves the token matching the hash whose
// expiry is after now. Redis TTL already evicts expired entries; the
// explicit check covers entries still pending eviction.
func (r *ResetTokenRedis) FindByHashAndUnexpired(ctx context.Context, tokenHash string, now time.Time) (*entity.ResetToken, error) {
	data, err := r.client.Get(ctx, r.tokenKey(tokenHash)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, usecase.ErrResetTokenInvalid
		}
		return nil, err
	}

	var token entity.ResetToken
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reset token: %w", err)
	}

	if !token.ExpiresAt.After(now) {
		return nil, usecase.ErrResetTokenInvalid
	}

	return &token, nil
}

// DeleteByUserID removes the user's live reset token, if any.
func (r *ResetTokenRedis) DeleteByUserID(ctx context.Context, userID uint) error {
	hash, err := r.client.Get(ctx, r.userKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return err
	}

	if err := r.client.Del(ctx, r.tokenKey(hash)).Err(); err != nil {
		return err
	}
	return r.client.Del(ctx, r.userKey(userID)).Err()
}
