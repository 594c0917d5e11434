package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"auth_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

// resetSecretBytes is the entropy of the reset secret (32 bytes = 64 hex chars).
const resetSecretBytes = 32

// generateResetSecret creates a secure random secret with the user ID
// appended as a suffix. The ID is not secret; the suffix only rules out
// hash collisions between users. Returns (plaintext_secret, sha256_hash).
func generateResetSecret(userID uint) (secret, hash string, err error) {
	buf := make([]byte, resetSecretBytes)
	if _, err = rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate reset secret: %w", err)
	}
	secret = hex.EncodeToString(buf) + strconv.FormatUint(uint64(userID), 10)
	return secret, hashResetSecret(secret), nil
}

// hashResetSecret computes the hex-encoded SHA-256 hash of a secret.
// Only the hash is ever persisted.
func hashResetSecret(secret string) string {
	h := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(h[:])
}

// ForgotPassword starts the reset flow for the given email address.
// Any previous token for the user is superseded: at most one reset token
// is live per user. The unhashed secret is embedded in the emailed URL;
// the store only ever sees its hash.
func (u *authUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := u.tokens.DeleteByUserID(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to delete previous reset token: %w", err)
	}

	secret, hash, err := generateResetSecret(user.ID)
	if err != nil {
		return err
	}

	now := time.Now()
	token := &entity.ResetToken{
		UserID:    user.ID,
		TokenHash: hash,
		CreatedAt: now,
		ExpiresAt: now.Add(u.cfg.ResetTokenLifetime),
	}
	if err := u.tokens.Create(ctx, token); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/resetpassword/%s", u.cfg.FrontendURL, secret)
	body := fmt.Sprintf(`
	<h2>Hello %s</h2>
	<p>Please use the url below to reset your password</p>
	<p>This reset link is valid for only %d minutes</p>
	<a href=%q clicktracking=off>%s</a>
	`, user.Name, int(u.cfg.ResetTokenLifetime.Minutes()), resetURL, resetURL)

	if err := u.notifier.Send(ctx, "Password Reset Request", body, user.Email, u.cfg.MailFrom); err != nil {
		return fmt.Errorf("%w: %w", ErrEmailNotSent, err)
	}
	return nil
}

// ResetPassword completes the reset flow using the unhashed secret from
// the reset URL. A single store lookup enforces both the hash match and
// the expiry filter. The consumed token is deleted afterwards so the
// secret cannot be replayed; cleanup failure is ignored because the
// password update already succeeded.
func (u *authUsecase) ResetPassword(ctx context.Context, secret, newPassword string) error {
	if newPassword == "" {
		return ErrMissingPassword
	}

	token, err := u.tokens.FindByHashAndUnexpired(ctx, hashResetSecret(secret), time.Now())
	if err != nil {
		if errors.Is(err, ErrResetTokenInvalid) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	user, err := u.users.FindByID(ctx, token.UserID)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)

	if err := u.users.Save(ctx, user); err != nil {
		return err
	}

	//nolint:errcheck // Cleanup failure is acceptable; password was already updated
	u.tokens.DeleteByUserID(ctx, token.UserID)

	return nil
}
