package model

import "time"

// PasswordResetWindow is how long a reset token stays usable after creation.
const PasswordResetWindow = 18_000_000 * time.Millisecond

// PasswordReset links an opaque reset token to a user.
type PasswordReset struct {
	ID        int64
	Token     string
	UserID    int64
	CreatedAt time.Time
}

// ExpiresAt is the last instant at which the token is still accepted.
func (r PasswordReset) ExpiresAt() time.Time {
	return r.CreatedAt.Add(PasswordResetWindow)
}

// Expired reports whether createdAt + window is strictly before now.
func (r PasswordReset) Expired(now time.Time) bool {
	return r.ExpiresAt().Before(now)
}
