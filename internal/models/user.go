package models

import "time"

// User is the database representation of a user account.
type User struct {
	ID        int64  `db:"id"`
	Email     string `db:"email"`
	Name      string `db:"name"`
	IsActive  bool   `db:"is_active"`
	AvatarURL string `db:"avatar_url"`
	CompanyID int64  `db:"company_id"`
	LifecycleFields
}

// UserCredentials is the database representation of a user's password record.
type UserCredentials struct {
	ID                 int64      `db:"id"`
	UserID             int64      `db:"user_id"`
	PasswordHash       string     `db:"password_hash"`
	LastPasswordChange *time.Time `db:"last_password_change"`
	LifecycleFields
}
