package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/basehq/base_backend/internal/apperrors"
	"github.com/basehq/base_backend/internal/core/domain"
	portsrepo "github.com/basehq/base_backend/internal/core/ports/repositories"
	"github.com/basehq/base_backend/internal/core/tenant"
	"github.com/basehq/base_backend/internal/models"
	"github.com/basehq/base_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCompanyMemberRepository struct {
	TenantScopedRepository
}

func newPgxCompanyMemberRepository(pool *pgxpool.Pool) portsrepo.CompanyMemberRepositoryFacade {
	return &PgxCompanyMemberRepository{TenantScopedRepository{BaseRepository{Pool: pool}}}
}

// Ensure PgxCompanyMemberRepository implements portsrepo.CompanyMemberRepositoryFacade
var _ portsrepo.CompanyMemberRepositoryFacade = (*PgxCompanyMemberRepository)(nil)

// FindMembershipByUserID runs before any tenant exists for the request
// (the resolver derives the tenant from its result), so it is deliberately
// unscoped.
func (r *PgxCompanyMemberRepository) FindMembershipByUserID(ctx context.Context, userID int64) (*domain.CompanyMember, error) {
	var m models.CompanyMember
	query := `
		SELECT id, company_id, user_id, role,
			public_id, created_at, updated_at, deleted_at, is_deleted
		FROM company_members
		WHERE user_id = $1 AND is_deleted = FALSE;
	`
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&m.ID,
		&m.CompanyID,
		&m.UserID,
		&m.Role,
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
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	member := mapping.ToDomainCompanyMember(m)
	return &member, nil
}

func (r *PgxCompanyMemberRepository) IsUserInAnyCompany(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM company_members WHERE user_id = $1 AND is_deleted = FALSE);`
	if err := r.Pool.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check company membership: %w", err)
	}
	return exists, nil
}

// CreateMemberInTx stamps the resolved tenant onto the member before the
// insert. Pre-tenant callers (registration, first company creation) pass an
// unauthenticated tenant and keep the CompanyID they set themselves.
func (r *PgxCompanyMemberRepository) CreateMemberInTx(ctx context.Context, tx pgx.Tx, t tenant.Tenant, member *domain.CompanyMember) error {
	stampTenant(t, member)
	m := mapping.ToModelCompanyMember(*member)
	query := `
		INSERT INTO company_members (company_id, user_id, role, public_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id;
	`
	err := tx.QueryRow(ctx, query,
		m.CompanyID,
		m.UserID,
		m.Role,
		m.PublicID,
		m.CreatedAt,
	).Scan(&member.ID)
	if err != nil {
		return fmt.Errorf("failed to create company member: %w", err)
	}
	return nil
}
