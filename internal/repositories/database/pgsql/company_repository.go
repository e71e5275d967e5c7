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

type PgxCompanyRepository struct {
	BaseRepository
}

func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxCompanyRepository implements portsrepo.CompanyRepositoryFacade
var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

const companyColumns = `id, name, settings,
	public_id, created_at, updated_at, deleted_at, is_deleted`

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var m models.Company
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Settings,
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
		return nil, fmt.Errorf("failed to scan company row: %w", err)
	}
	company := mapping.ToDomainCompany(m)
	return &company, nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID int64) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1 AND is_deleted = FALSE;`
	return scanCompany(r.Pool.QueryRow(ctx, query, companyID))
}

func (r *PgxCompanyRepository) FindCompanyWithMembers(ctx context.Context, t tenant.Tenant) (*domain.Company, []domain.CompanyMember, error) {
	if !t.IsAuthenticated() {
		return nil, nil, apperrors.ErrNotFound
	}

	company, err := r.FindCompanyByID(ctx, t.CompanyID)
	if err != nil {
		return nil, nil, err
	}

	query := `
		SELECT cm.id, cm.company_id, cm.user_id, cm.role, u.name, u.email,
			cm.public_id, cm.created_at, cm.updated_at, cm.deleted_at, cm.is_deleted
		FROM company_members cm
		JOIN users u ON u.id = cm.user_id
		WHERE cm.company_id = $1 AND cm.is_deleted = FALSE AND u.is_deleted = FALSE
		ORDER BY cm.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, t.CompanyID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query company members: %w", err)
	}
	defer rows.Close()

	var ms []models.CompanyMember
	for rows.Next() {
		var m models.CompanyMember
		err := rows.Scan(
			&m.ID,
			&m.CompanyID,
			&m.UserID,
			&m.Role,
			&m.UserName,
			&m.UserEmail,
			&m.PublicID,
			&m.CreatedAt,
			&m.UpdatedAt,
			&m.DeletedAt,
			&m.IsDeleted,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan company member row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate company members: %w", err)
	}

	return company, mapping.ToDomainCompanyMemberSlice(ms), nil
}

func (r *PgxCompanyRepository) NameExists(ctx context.Context, name string, excludeCompanyID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM companies
			WHERE LOWER(name) = LOWER($1) AND id <> $2 AND is_deleted = FALSE
		);
	`
	if err := r.Pool.QueryRow(ctx, query, name, excludeCompanyID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check company name existence: %w", err)
	}
	return exists, nil
}

func (r *PgxCompanyRepository) CreateCompanyInTx(ctx context.Context, tx pgx.Tx, company *domain.Company) error {
	m := mapping.ToModelCompany(*company)
	query := `
		INSERT INTO companies (name, settings, public_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id;
	`
	err := tx.QueryRow(ctx, query,
		m.Name,
		m.Settings,
		m.PublicID,
		m.CreatedAt,
	).Scan(&company.ID)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, t tenant.Tenant, company *domain.Company) error {
	// A company can only be updated as the caller's own tenant.
	if !t.IsAuthenticated() || company.ID != t.CompanyID {
		return apperrors.ErrCrossTenantAccess
	}
	query := `
		UPDATE companies
		SET name = $1, settings = $2, updated_at = $3
		WHERE id = $4 AND is_deleted = FALSE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		company.Name,
		[]byte(company.Settings),
		company.UpdatedAt,
		company.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCompanyRepository) MarkCompanyDeleted(ctx context.Context, t tenant.Tenant, deletedAt time.Time) error {
	if !t.IsAuthenticated() {
		return apperrors.ErrCrossTenantAccess
	}
	query := `
		UPDATE companies
		SET is_deleted = TRUE, deleted_at = $1, updated_at = $1
		WHERE id = $2 AND is_deleted = FALSE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, deletedAt, t.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to mark company as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
