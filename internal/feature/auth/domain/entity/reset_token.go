package entity

import "time"

// ResetToken represents a pending password-reset request for a user.
// Only the SHA-256 hash of the emailed secret is stored; the secret
// itself never touches persistent storage.
type ResetToken struct {
	UserID    uint      // Owning user ID
	TokenHash string    // Hex-encoded SHA-256 hash of the reset secret
	CreatedAt time.Time // Token creation time
	ExpiresAt time.Time // Token expiration time (creation + 30 minutes)
}

// IsExpired returns true if the token has passed its expiration time.
func (t *ResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
