package resettoken

import (
	"context"
	"testing"
	"time"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

// createTestToken creates a reset token entity for testing.
func createTestToken(userID uint, hash string, expiresIn time.Duration) *entity.ResetToken {
	now := time.Now()
	return &entity.ResetToken{
		UserID:    userID,
		TokenHash: hash,
		CreatedAt: now,
		ExpiresAt: now.Add(expiresIn),
	}
}

func TestNewResetTokenRedis(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewResetTokenRedis(client, "reset")

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.client, "client is nil")
	assert.Equal(t, "reset", repo.prefix)
}

func TestResetTokenRedis_Create(t *testing.T) {
	t.Run("success: create token", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewResetTokenRedis(client, "reset")

		token := createTestToken(1, "hash-001", 30*time.Minute)
		err := repo.Create(context.Background(), token)

		require.NoError(t, err)

		// Verify token data exists in Redis
		data, err := client.Get(context.Background(), repo.tokenKey("hash-001")).Result()
		assert.NoError(t, err)
		assert.NotEmpty(t, data)

		// Verify the user index points at the hash
		hash, err := client.Get(context.Background(), repo.userKey(1)).Result()
		assert.NoError(t, err)
		assert.Equal(t, "hash-001", hash)
	})

	t.Run("failure: already expired token", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewResetTokenRedis(client, "reset")

		err := repo.Create(context.Background(), createTestToken(1, "hash-expired", -time.Minute))

		assert.Error(t, err)
	})
}

func TestResetTokenRedis_FindByHashAndUnexpired(t *testing.T) {
	t.Run("live token is found", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewResetTokenRedis(client, "reset")

		require.NoError(t, repo.Create(context.Background(), createTestToken(7, "hash-live", 30*time.Minute)))

		found, err := repo.FindByHashAndUnexpired(context.Background(), "hash-live", time.Now())

		require.NoError(t, err)
		assert.Equal(t, uint(7), found.UserID)
		assert.Equal(t, "hash-live", found.TokenHash)
	})

	t.Run("unknown hash returns ErrResetTokenInvalid", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewResetTokenRedis(client, "reset")

		_, err := repo.FindByHashAndUnexpired(context.Background(), "hash-unknown", time.Now())

		assert.ErrorIs(t, err, usecase.ErrResetTokenInvalid)
	})

	t.Run("token evicted by TTL returns ErrResetTokenInvalid", func(t *testing.T) {
		client, mr := setupTestRedis(t)
		repo := NewResetTokenRedis(client, "reset")

		require.NoError(t, repo.Create(context.Background(), createTestToken(7, "hash-ttl", time.Minute)))

		// Advance miniredis past the TTL
		mr.FastForward(2 * time.Minute)

		_, err := repo.FindByHashAndUnexpired(context.Background(), "hash-ttl", time.Now())
		assert.ErrorIs(t, err, usecase.ErrResetTokenInvalid)
	})
}

func TestResetTokenRedis_DeleteByUserID(t *testing.T) {
	t.Run("deletes token and index", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewResetTokenRedis(client, "reset")

		require.NoError(t, repo.Create(context.Background(), createTestToken(1, "hash-del", 30*time.Minute)))

		require.NoError(t, repo.DeleteByUserID(context.Background(), 1))

		_, err := repo.FindByHashAndUnexpired(context.Background(), "hash-del", time.Now())
		assert.ErrorIs(t, err, usecase.ErrResetTokenInvalid)

		exists, err := client.Exists(context.Background(), repo.userKey(1)).Result()
		assert.NoError(t, err)
		assert.Zero(t, exists, "user index should be removed")
	})

	t.Run("no token is not an error", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewResetTokenRedis(client, "reset")

		assert.NoError(t, repo.DeleteByUserID(context.Background(), 42))
	})

	t.Run("supersede: create after delete leaves one live token", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewResetTokenRedis(client, "reset")

		require.NoError(t, repo.Create(context.Background(), createTestToken(1, "hash-old", 30*time.Minute)))
		require.NoError(t, repo.DeleteByUserID(context.Background(), 1))
		require.NoError(t, repo.Create(context.Background(), createTestToken(1, "hash-new", 30*time.Minute)))

		_, err := repo.FindByHashAndUnexpired(context.Background(), "hash-old", time.Now())
		assert.ErrorIs(t, err, usecase.ErrResetTokenInvalid, "old token must no longer validate")

		found, err := repo.FindByHashAndUnexpired(context.Background(), "hash-new", time.Now())
		require.NoError(t, err)
		assert.Equal(t, "hash-new", found.TokenHash)
	})
}
