package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/basehq/base_backend/internal/apperrors"
	"github.com/basehq/base_backend/internal/core/domain"
	portsrepo "github.com/basehq/base_backend/internal/core/ports/repositories"
	"github.com/basehq/base_backend/internal/core/tenant"
	"github.com/basehq/base_backend/internal/models"
	"github.com/basehq/base_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	TenantScopedRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{TenantScopedRepository{BaseRepository{Pool: pool}}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `id, email, name, is_active, avatar_url, company_id,
	public_id, created_at, updated_at, deleted_at, is_deleted`

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.ID,
		&m.Email,
		&m.Name,
		&m.IsActive,
		&m.AvatarURL,
		&m.CompanyID,
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
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND is_deleted = FALSE;`
	return scanUser(r.Pool.QueryRow(ctx, query, userID))
}

func (r *PgxUserRepository) FindUserByPublicID(ctx context.Context, t tenant.Tenant, publicID string) (*domain.User, error) {
	if !t.IsAuthenticated() {
		return nil, apperrors.ErrNotFound
	}
	query := `SELECT ` + userColumns + ` FROM users
		WHERE public_id = $1 AND company_id = $2 AND is_deleted = FALSE;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, publicID, t.CompanyID))
	if err != nil {
		return nil, err
	}
	if err := guardTenantRead(t, user); err != nil {
		return nil, err
	}
	return user, nil
}

// FindUserByEmail looks up a user by case-folded email across all tenants.
// This is the documented tenant-scoping exception: it backs registration's
// global uniqueness check and login, both of which run before a tenant
// exists for the request.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE email = LOWER($1) AND is_deleted = FALSE;`
	return scanUser(r.Pool.QueryRow(ctx, query, email))
}

// EmailExists checks email uniqueness globally (same exception as
// FindUserByEmail).
func (r *PgxUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = LOWER($1) AND is_deleted = FALSE);`
	if err := r.Pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

func (r *PgxUserRepository) CreateUserInTx(ctx context.Context, tx pgx.Tx, user *domain.User) error {
	m := mapping.ToModelUser(*user)
	query := `
		INSERT INTO users (email, name, is_active, avatar_url, company_id, public_id, created_at, updated_at)
		VALUES (LOWER($1), $2, $3, $4, $5, $6, $7, $7)
		RETURNING id;
	`
	err := tx.QueryRow(ctx, query,
		m.Email,
		m.Name,
		m.IsActive,
		m.AvatarURL,
		m.CompanyID,
		m.PublicID,
		m.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, t tenant.Tenant, user *domain.User) error {
	if err := guardTenantWrite(t, user); err != nil {
		return err
	}
	query := `
		UPDATE users
		SET name = $1, avatar_url = $2, is_active = $3, updated_at = $4
		WHERE id = $5 AND company_id = $6 AND is_deleted = FALSE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		user.Name,
		user.AvatarURL,
		user.IsActive,
		user.UpdatedAt,
		user.ID,
		t.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetUserCompanyInTx repoints the denormalized company cache on the user
// row. Only membership changes call this, in the same tx that writes the
// CompanyMember row, so the two can never drift.
func (r *PgxUserRepository) SetUserCompanyInTx(ctx context.Context, tx pgx.Tx, userID, companyID int64) error {
	query := `UPDATE users SET company_id = $1, updated_at = $2 WHERE id = $3 AND is_deleted = FALSE;`
	cmdTag, err := tx.Exec(ctx, query, companyID, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to set user company: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) MarkUserDeleted(ctx context.Context, t tenant.Tenant, userID int64, deletedAt time.Time) error {
	if !t.IsAuthenticated() {
		return apperrors.ErrCrossTenantAccess
	}
	query := `
		UPDATE users
		SET is_deleted = TRUE, deleted_at = $1, updated_at = $1
		WHERE id = $2 AND company_id = $3 AND is_deleted = FALSE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, deletedAt, userID, t.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to mark user as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
