package repositories

import (
	"context"
	"time"

	"github.com/basehq/base_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// RefreshTokenRepositoryFacade manages stored refresh-token hashes.
// Tokens are revoked in place, never deleted.
type RefreshTokenRepositoryFacade interface {
	// FindActiveTokenByHash retrieves a non-revoked token by its digest.
	// Expiry is checked by the caller so expired and revoked tokens
	// surface as the same failure.
	FindActiveTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)

	// CreateTokenInTx persists a new token inside tx.
	CreateTokenInTx(ctx context.Context, tx pgx.Tx, token *domain.RefreshToken) error

	// RevokeTokenInTx marks a token revoked. It returns ErrNotFound when
	// the token was already revoked, which makes rotation races resolve
	// to exactly one winner.
	RevokeTokenInTx(ctx context.Context, tx pgx.Tx, tokenID int64, revokedAt time.Time) error

	// RevokeAllTokensForUserInTx revokes every active token of a user
	// (password reset forces re-login everywhere).
	RevokeAllTokensForUserInTx(ctx context.Context, tx pgx.Tx, userID int64, revokedAt time.Time) error
}

// PasswordResetTokenRepositoryFacade manages OTP tickets. Consumed tokens
// are marked used with a timestamp and retained for audit.
type PasswordResetTokenRepositoryFacade interface {
	// FindActiveTokenByUserAndHash retrieves an unused, unexpired token
	// matching the keyed hash of (userID, otp).
	FindActiveTokenByUserAndHash(ctx context.Context, userID int64, tokenHash string) (*domain.PasswordResetToken, error)

	// InvalidateActiveTokensForUserInTx marks all still-active tokens of
	// a user used, so initiating a new reset supersedes prior OTPs.
	InvalidateActiveTokensForUserInTx(ctx context.Context, tx pgx.Tx, userID int64, usedAt time.Time) error

	// CreateTokenInTx persists a new reset token inside tx.
	CreateTokenInTx(ctx context.Context, tx pgx.Tx, token *domain.PasswordResetToken) error

	// MarkTokenUsedInTx consumes a token. It returns ErrNotFound when the
	// token was already used, so an OTP can be redeemed exactly once.
	MarkTokenUsedInTx(ctx context.Context, tx pgx.Tx, tokenID int64, usedAt time.Time) error
}
