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

type PgxRefreshTokenRepository struct {
	BaseRepository
}

func newPgxRefreshTokenRepository(pool *pgxpool.Pool) portsrepo.RefreshTokenRepositoryFacade {
	return &PgxRefreshTokenRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxRefreshTokenRepository implements portsrepo.RefreshTokenRepositoryFacade
var _ portsrepo.RefreshTokenRepositoryFacade = (*PgxRefreshTokenRepository)(nil)

func (r *PgxRefreshTokenRepository) FindActiveTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	var m models.RefreshToken
	query := `
		SELECT id, user_id, token_hash, device_info, expires_at, is_revoked, revoked_at,
			public_id, created_at, updated_at, deleted_at, is_deleted
		FROM refresh_tokens
		WHERE token_hash = $1 AND is_revoked = FALSE AND is_deleted = FALSE;
	`
	err := r.Pool.QueryRow(ctx, query, tokenHash).Scan(
		&m.ID,
		&m.UserID,
		&m.TokenHash,
		&m.DeviceInfo,
		&m.ExpiresAt,
		&m.IsRevoked,
		&m.RevokedAt,
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
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}
	token := mapping.ToDomainRefreshToken(m)
	return &token, nil
}

func (r *PgxRefreshTokenRepository) CreateTokenInTx(ctx context.Context, tx pgx.Tx, token *domain.RefreshToken) error {
	m := mapping.ToModelRefreshToken(*token)
	query := `
		INSERT INTO refresh_tokens (user_id, token_hash, device_info, expires_at, public_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id;
	`
	err := tx.QueryRow(ctx, query,
		m.UserID,
		m.TokenHash,
		m.DeviceInfo,
		m.ExpiresAt,
		m.PublicID,
		m.CreatedAt,
	).Scan(&token.ID)
	if err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

// RevokeTokenInTx guards on is_revoked = FALSE so two concurrent
// rotations of the same token resolve to one winner: the loser sees zero
// rows and gets ErrNotFound.
func (r *PgxRefreshTokenRepository) RevokeTokenInTx(ctx context.Context, tx pgx.Tx, tokenID int64, revokedAt time.Time) error {
	query := `
		UPDATE refresh_tokens
		SET is_revoked = TRUE, revoked_at = $1, updated_at = $1
		WHERE id = $2 AND is_revoked = FALSE;
	`
	cmdTag, err := tx.Exec(ctx, query, revokedAt, tokenID)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRefreshTokenRepository) RevokeAllTokensForUserInTx(ctx context.Context, tx pgx.Tx, userID int64, revokedAt time.Time) error {
	query := `
		UPDATE refresh_tokens
		SET is_revoked = TRUE, revoked_at = $1, updated_at = $1
		WHERE user_id = $2 AND is_revoked = FALSE;
	`
	if _, err := tx.Exec(ctx, query, revokedAt, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens for user: %w", err)
	}
	return nil
}
