package models

import "time"

// AuditEvent is the database representation of an append-only security
// event.
type AuditEvent struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	EventType string    `db:"event_type"`
	IPAddress string    `db:"ip_address"`
	UserAgent string    `db:"user_agent"`
	Timestamp time.Time `db:"timestamp"`
	Details   string    `db:"details"`
}

// AppLog is the database representation of a captured request failure.
type AppLog struct {
	ID            int64     `db:"id"`
	Level         string    `db:"level"`
	Message       string    `db:"message"`
	Error         string    `db:"error"`
	UserID        *int64    `db:"user_id"`
	CompanyID     *int64    `db:"company_id"`
	TraceID       string    `db:"trace_id"`
	RequestPath   string    `db:"request_path"`
	RequestMethod string    `db:"request_method"`
	StatusCode    int       `db:"status_code"`
	CreatedAt     time.Time `db:"created_at"`
}
