package services

import (
	"context"
	"time"

	"github.com/basehq/base_backend/internal/core/domain"
)

// AuthSvcFacade is the authentication core: registration, credential
// login, refresh-token rotation, logout, and the password-reset OTP
// lifecycle. Failures are the sentinel errors in apperrors; the HTTP
// boundary maps them to status codes.
type AuthSvcFacade interface {
	// Register creates an account: a new company named after the user, the
	// user, credentials, and the Owner membership, all in one transaction.
	// Fails with ErrDuplicateEmail if the email exists anywhere.
	Register(ctx context.Context, email, password, name string) (*domain.User, error)

	// Login verifies credentials and issues an access/refresh token pair.
	// Unknown email and wrong password both fail with ErrInvalidCredentials
	// and both record a login_failed audit event.
	Login(ctx context.Context, email, password, ipAddress, userAgent string) (*domain.User, *domain.TokenPair, error)

	// Refresh rotates a refresh token: the consumed token is revoked and a
	// new pair is minted, atomically. A replayed or expired token fails
	// with ErrInvalidOrExpiredToken.
	Refresh(ctx context.Context, refreshTokenValue string) (*domain.TokenPair, error)

	// Logout revokes the refresh token if it belongs to currentUserID.
	// Unknown token or owner mismatch is a silent no-op.
	Logout(ctx context.Context, currentUserID int64, refreshTokenValue string) error

	// GetCurrentUser returns the user, or ErrNotFound if missing or
	// soft-deleted.
	GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error)

	// InitiatePasswordReset issues a fresh OTP, superseding any prior
	// active reset tokens, and enqueues the OTP email. It succeeds even
	// when the email is unknown, so callers cannot enumerate accounts.
	InitiatePasswordReset(ctx context.Context, email string) error

	// ResetPassword consumes a valid OTP exactly once: replaces the
	// password hash, marks the token used, and revokes every refresh
	// token of the user. Anything else fails with ErrInvalidOrExpiredOtp.
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}

// TokenSvcFacade mints access and refresh tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates a new opaque refresh token value and
	// its expiry. The value carries no claims; revocation is a store
	// lookup, never a signature check.
	GenerateRefreshToken(ctx context.Context) (string, time.Time, error)
}
