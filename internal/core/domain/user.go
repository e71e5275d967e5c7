package domain

import "time"

// User represents an application account. A user belongs to exactly one
// company; CompanyID is a denormalized copy of the authoritative
// CompanyMember row and is updated in lockstep on every membership change.
type User struct {
	ID        int64  `json:"-"`
	Email     string `json:"email"` // stored case-folded, globally unique
	Name      string `json:"name"`
	IsActive  bool   `json:"isActive"`
	AvatarURL string `json:"avatarURL,omitempty"`
	CompanyID int64  `json:"-"`
	Lifecycle
}

func (u *User) TenantCompanyID() int64 {
	return u.CompanyID
}

func (u *User) SetTenantCompanyID(companyID int64) {
	u.CompanyID = companyID
}

// UserCredentials is the 1:1 password record for a user. It is created
// atomically with the user and replaced on password reset.
type UserCredentials struct {
	ID                 int64
	UserID             int64
	PasswordHash       string
	LastPasswordChange *time.Time
	Lifecycle
}
