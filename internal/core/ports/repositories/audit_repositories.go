package repositories

import (
	"context"

	"github.com/basehq/base_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AuditEventRepositoryFacade appends security-relevant events. There are
// no update or delete operations: the log is append-only.
type AuditEventRepositoryFacade interface {
	// SaveAuditEvent appends an event outside any transaction (e.g. a
	// failed login, which has no other writes to be atomic with).
	SaveAuditEvent(ctx context.Context, event *domain.AuditEvent) error

	// SaveAuditEventInTx appends an event inside tx so it commits or
	// rolls back with the operation it records.
	SaveAuditEventInTx(ctx context.Context, tx pgx.Tx, event *domain.AuditEvent) error
}

// AppLogRepositoryFacade stores captured request failures. Writes are
// best-effort; a failed insert is logged and dropped, never propagated.
type AppLogRepositoryFacade interface {
	SaveAppLog(ctx context.Context, entry *domain.AppLog) error
}
