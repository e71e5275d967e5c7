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

type PgxPasswordResetTokenRepository struct {
	BaseRepository
}

func newPgxPasswordResetTokenRepository(pool *pgxpool.Pool) portsrepo.PasswordResetTokenRepositoryFacade {
	return &PgxPasswordResetTokenRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxPasswordResetTokenRepository implements portsrepo.PasswordResetTokenRepositoryFacade
var _ portsrepo.PasswordResetTokenRepositoryFacade = (*PgxPasswordResetTokenRepository)(nil)

func (r *PgxPasswordResetTokenRepository) FindActiveTokenByUserAndHash(ctx context.Context, userID int64, tokenHash string) (*domain.PasswordResetToken, error) {
	var m models.PasswordResetToken
	query := `
		SELECT id, user_id, token_hash, expires_at, is_used, used_at,
			public_id, created_at, updated_at, deleted_at, is_deleted
		FROM password_reset_tokens
		WHERE user_id = $1 AND token_hash = $2
			AND is_used = FALSE AND expires_at > NOW() AND is_deleted = FALSE;
	`
	err := r.Pool.QueryRow(ctx, query, userID, tokenHash).Scan(
		&m.ID,
		&m.UserID,
		&m.TokenHash,
		&m.ExpiresAt,
		&m.IsUsed,
		&m.UsedAt,
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
		return nil, fmt.Errorf("failed to find password reset token: %w", err)
	}
	token := mapping.ToDomainPasswordResetToken(m)
	return &token, nil
}

// InvalidateActiveTokensForUserInTx marks every still-active token used so
// a newly issued OTP supersedes all prior ones.
func (r *PgxPasswordResetTokenRepository) InvalidateActiveTokensForUserInTx(ctx context.Context, tx pgx.Tx, userID int64, usedAt time.Time) error {
	query := `
		UPDATE password_reset_tokens
		SET is_used = TRUE, used_at = $1, updated_at = $1
		WHERE user_id = $2 AND is_used = FALSE;
	`
	if _, err := tx.Exec(ctx, query, usedAt, userID); err != nil {
		return fmt.Errorf("failed to invalidate password reset tokens: %w", err)
	}
	return nil
}

func (r *PgxPasswordResetTokenRepository) CreateTokenInTx(ctx context.Context, tx pgx.Tx, token *domain.PasswordResetToken) error {
	m := mapping.ToModelPasswordResetToken(*token)
	query := `
		INSERT INTO password_reset_tokens (user_id, token_hash, expires_at, public_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id;
	`
	err := tx.QueryRow(ctx, query,
		m.UserID,
		m.TokenHash,
		m.ExpiresAt,
		m.PublicID,
		m.CreatedAt,
	).Scan(&token.ID)
	if err != nil {
		return fmt.Errorf("failed to create password reset token: %w", err)
	}
	return nil
}

// MarkTokenUsedInTx guards on is_used = FALSE so an OTP redeems exactly
// once even under concurrent attempts.
func (r *PgxPasswordResetTokenRepository) MarkTokenUsedInTx(ctx context.Context, tx pgx.Tx, tokenID int64, usedAt time.Time) error {
	query := `
		UPDATE password_reset_tokens
		SET is_used = TRUE, used_at = $1, updated_at = $1
		WHERE id = $2 AND is_used = FALSE;
	`
	cmdTag, err := tx.Exec(ctx, query, usedAt, tokenID)
	if err != nil {
		return fmt.Errorf("failed to mark password reset token used: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
