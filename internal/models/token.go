package models

import "time"

// RefreshToken is the database representation of a stored refresh-token
// hash.
type RefreshToken struct {
	ID         int64      `db:"id"`
	UserID     int64      `db:"user_id"`
	TokenHash  string     `db:"token_hash"`
	DeviceInfo string     `db:"device_info"`
	ExpiresAt  time.Time  `db:"expires_at"`
	IsRevoked  bool       `db:"is_revoked"`
	RevokedAt  *time.Time `db:"revoked_at"`
	LifecycleFields
}

// PasswordResetToken is the database representation of an OTP ticket.
type PasswordResetToken struct {
	ID        int64      `db:"id"`
	UserID    int64      `db:"user_id"`
	TokenHash string     `db:"token_hash"`
	ExpiresAt time.Time  `db:"expires_at"`
	IsUsed    bool       `db:"is_used"`
	UsedAt    *time.Time `db:"used_at"`
	LifecycleFields
}
