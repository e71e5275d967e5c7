package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/basehq/base_backend/internal/apperrors"
	"github.com/basehq/base_backend/internal/core/domain"
	portsrepo "github.com/basehq/base_backend/internal/core/ports/repositories"
	"github.com/basehq/base_backend/internal/models"
	"github.com/basehq/base_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCredentialsRepository struct {
	BaseRepository
}

func newPgxCredentialsRepository(pool *pgxpool.Pool) portsrepo.CredentialsRepositoryFacade {
	return &PgxCredentialsRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxCredentialsRepository implements portsrepo.CredentialsRepositoryFacade
var _ portsrepo.CredentialsRepositoryFacade = (*PgxCredentialsRepository)(nil)

func (r *PgxCredentialsRepository) FindCredentialsByUserID(ctx context.Context, userID int64) (*domain.UserCredentials, error) {
	var m models.UserCredentials
	query := `
		SELECT id, user_id, password_hash, last_password_change,
			public_id, created_at, updated_at, deleted_at, is_deleted
		FROM user_credentials
		WHERE user_id = $1 AND is_deleted = FALSE;
	`
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&m.ID,
		&m.UserID,
		&m.PasswordHash,
		&m.LastPasswordChange,
		&m.PublicID,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.DeletedAt,
		&m.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credentials: %w", err)
	}
	creds := mapping.ToDomainUserCredentials(m)
	return &creds, nil
}

func (r *PgxCredentialsRepository) CreateCredentialsInTx(ctx context.Context, tx pgx.Tx, creds *domain.UserCredentials) error {
	m := mapping.ToModelUserCredentials(*creds)
	query := `
		INSERT INTO user_credentials (user_id, password_hash, last_password_change, public_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id;
	`
	err := tx.QueryRow(ctx, query,
		m.UserID,
		m.PasswordHash,
		m.LastPasswordChange,
		m.PublicID,
		m.CreatedAt,
	).Scan(&creds.ID)
	if err != nil {
		return fmt.Errorf("failed to create credentials: %w", err)
	}
	return nil
}

func (r *PgxCredentialsRepository) ReplacePasswordHashInTx(ctx context.Context, tx pgx.Tx, userID int64, passwordHash string, changedAt time.Time) error {
	query := `
		UPDATE user_credentials
		SET password_hash = $1, last_password_change = $2, updated_at = $2
		WHERE user_id = $3 AND is_deleted = FALSE;
	`
	cmdTag, err := tx.Exec(ctx, query, passwordHash, changedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to replace password hash: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
