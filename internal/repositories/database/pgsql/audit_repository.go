package pgsql

import (
	"context"
	"fmt"

	"github.com/basehq/base_backend/internal/core/domain"
	portsrepo "github.com/basehq/base_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditEventRepository struct {
	BaseRepository
}

func newPgxAuditEventRepository(pool *pgxpool.Pool) portsrepo.AuditEventRepositoryFacade {
	return &PgxAuditEventRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxAuditEventRepository implements portsrepo.AuditEventRepositoryFacade
var _ portsrepo.AuditEventRepositoryFacade = (*PgxAuditEventRepository)(nil)

const insertAuditEventQuery = `
	INSERT INTO audit_events (user_id, event_type, ip_address, user_agent, timestamp, details)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id;
`

func (r *PgxAuditEventRepository) SaveAuditEvent(ctx context.Context, event *domain.AuditEvent) error {
	err := r.Pool.QueryRow(ctx, insertAuditEventQuery,
		event.UserID,
		event.EventType,
		event.IPAddress,
		event.UserAgent,
		event.Timestamp,
		event.Details,
	).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("failed to save audit event: %w", err)
	}
	return nil
}

func (r *PgxAuditEventRepository) SaveAuditEventInTx(ctx context.Context, tx pgx.Tx, event *domain.AuditEvent) error {
	err := tx.QueryRow(ctx, insertAuditEventQuery,
		event.UserID,
		event.EventType,
		event.IPAddress,
		event.UserAgent,
		event.Timestamp,
		event.Details,
	).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("failed to save audit event: %w", err)
	}
	return nil
}

type PgxAppLogRepository struct {
	BaseRepository
}

func newPgxAppLogRepository(pool *pgxpool.Pool) portsrepo.AppLogRepositoryFacade {
	return &PgxAppLogRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxAppLogRepository implements portsrepo.AppLogRepositoryFacade
var _ portsrepo.AppLogRepositoryFacade = (*PgxAppLogRepository)(nil)

func (r *PgxAppLogRepository) SaveAppLog(ctx context.Context, entry *domain.AppLog) error {
	query := `
		INSERT INTO app_logs (level, message, error, user_id, company_id, trace_id,
			request_path, request_method, status_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id;
	`
	err := r.Pool.QueryRow(ctx, query,
		entry.Level,
		entry.Message,
		entry.Error,
		entry.UserID,
		entry.CompanyID,
		entry.TraceID,
		entry.RequestPath,
		entry.RequestMethod,
		entry.StatusCode,
		entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to save app log: %w", err)
	}
	return nil
}
