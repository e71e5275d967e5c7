package domain

import "time"

// RefreshToken is a per-login opaque credential. Only the SHA-256 hash of
// the token value is stored; revocation is a flag, never a delete, so
// consumed tokens remain auditable.
type RefreshToken struct {
	ID         int64
	UserID     int64
	TokenHash  string
	DeviceInfo string
	ExpiresAt  time.Time
	IsRevoked  bool
	RevokedAt  *time.Time
	Lifecycle
}

// IsActive reports whether the token can still be redeemed.
func (t *RefreshToken) IsActive(now time.Time) bool {
	return !t.IsRevoked && now.Before(t.ExpiresAt)
}

// PasswordResetToken is an OTP ticket. TokenHash binds the owning user id
// and the OTP digits through a keyed hash; the raw OTP is never stored.
// Consumed tokens are marked used and retained.
type PasswordResetToken struct {
	ID        int64
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	IsUsed    bool
	UsedAt    *time.Time
	Lifecycle
}

// TokenPair is the result of a successful login or refresh: a short-lived
// signed access token and the plaintext of a freshly minted refresh token.
type TokenPair struct {
	AccessToken          string
	AccessTokenExpiresAt time.Time
	RefreshToken         string
}
