package domain

import "time"

// Audit event types recorded for security-relevant actions.
const (
	AuditSignup        = "signup"
	AuditLogin         = "login"
	AuditLoginFailed   = "login_failed"
	AuditLogout        = "logout"
	AuditResetPassword = "reset_password"
)

// UnknownUserID marks audit events for actors that could not be resolved,
// e.g. a failed login against a non-existent email.
const UnknownUserID int64 = 0

// AuditEvent is an append-only record of a security-relevant action.
type AuditEvent struct {
	ID        int64
	UserID    int64
	EventType string
	IPAddress string
	UserAgent string
	Timestamp time.Time
	Details   string
}

// AppLog is a structured record of a captured request failure. Rows are
// written best-effort by the error-capture middleware; the original
// failure still propagates to the boundary.
type AppLog struct {
	ID            int64
	Level         string
	Message       string
	Error         string
	UserID        *int64
	CompanyID     *int64
	TraceID       string
	RequestPath   string
	RequestMethod string
	StatusCode    int
	CreatedAt     time.Time
}

func (l *AppLog) TenantCompanyID() int64 {
	if l.CompanyID == nil {
		return 0
	}
	return *l.CompanyID
}

func (l *AppLog) SetTenantCompanyID(companyID int64) {
	l.CompanyID = &companyID
}
