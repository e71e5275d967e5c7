package repositories

import (
	"context"
	"time"

	"github.com/basehq/base_backend/internal/core/domain"
	"github.com/basehq/base_backend/internal/core/tenant"
	"github.com/jackc/pgx/v5"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a user by internal id. Soft-deleted users
	// are filtered out.
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// FindUserByPublicID retrieves a user by public id within the
	// caller's tenant. Unauthenticated tenants always get ErrNotFound.
	FindUserByPublicID(ctx context.Context, t tenant.Tenant, publicID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by case-folded email. This lookup
	// deliberately bypasses tenant scoping: it backs registration's
	// global uniqueness check and login, both of which run before any
	// tenant is resolved.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// EmailExists reports whether any account (in any tenant) uses the
	// email. Global by design, same exception as FindUserByEmail.
	EmailExists(ctx context.Context, email string) (bool, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// CreateUserInTx persists a new user inside tx and fills the
	// generated ids.
	CreateUserInTx(ctx context.Context, tx pgx.Tx, user *domain.User) error

	// UpdateUser updates mutable user fields after verifying the user
	// belongs to the caller's tenant.
	UpdateUser(ctx context.Context, t tenant.Tenant, user *domain.User) error

	// SetUserCompanyInTx repoints the denormalized User.CompanyID cache.
	// Called only together with CompanyMember changes, in the same tx.
	SetUserCompanyInTx(ctx context.Context, tx pgx.Tx, userID, companyID int64) error

	// MarkUserDeleted soft-deletes a user.
	MarkUserDeleted(ctx context.Context, t tenant.Tenant, userID int64, deletedAt time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

// CredentialsRepositoryFacade manages the 1:1 password records.
type CredentialsRepositoryFacade interface {
	// FindCredentialsByUserID retrieves the password record for a user.
	FindCredentialsByUserID(ctx context.Context, userID int64) (*domain.UserCredentials, error)

	// CreateCredentialsInTx persists a new password record inside tx,
	// atomically with its user.
	CreateCredentialsInTx(ctx context.Context, tx pgx.Tx, creds *domain.UserCredentials) error

	// ReplacePasswordHashInTx swaps the stored hash on password reset and
	// records the change timestamp.
	ReplacePasswordHashInTx(ctx context.Context, tx pgx.Tx, userID int64, passwordHash string, changedAt time.Time) error
}
