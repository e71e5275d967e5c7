package repositories

import (
	"context"
	"time"

	"github.com/basehq/base_backend/internal/core/domain"
	"github.com/basehq/base_backend/internal/core/tenant"
	"github.com/jackc/pgx/v5"
)

// CompanyReader defines read operations for companies.
type CompanyReader interface {
	// FindCompanyByID retrieves a company by internal id.
	FindCompanyByID(ctx context.Context, companyID int64) (*domain.Company, error)

	// FindCompanyWithMembers retrieves the caller's own company together
	// with its active memberships.
	FindCompanyWithMembers(ctx context.Context, t tenant.Tenant) (*domain.Company, []domain.CompanyMember, error)

	// NameExists reports whether a company name is taken,
	// case-insensitively, excluding the given company id (0 to exclude
	// none).
	NameExists(ctx context.Context, name string, excludeCompanyID int64) (bool, error)
}

// CompanyWriter defines write operations for companies.
type CompanyWriter interface {
	// CreateCompanyInTx persists a new company inside tx and fills the
	// generated ids.
	CreateCompanyInTx(ctx context.Context, tx pgx.Tx, company *domain.Company) error

	// UpdateCompany updates name/settings after verifying the company is
	// the caller's own tenant.
	UpdateCompany(ctx context.Context, t tenant.Tenant, company *domain.Company) error

	// MarkCompanyDeleted soft-deletes the caller's company.
	MarkCompanyDeleted(ctx context.Context, t tenant.Tenant, deletedAt time.Time) error
}

// CompanyRepositoryFacade combines company reads and writes.
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}

// CompanyMemberRepositoryFacade manages company membership rows, the
// authoritative record of which company a user belongs to.
type CompanyMemberRepositoryFacade interface {
	// FindMembershipByUserID retrieves a user's membership. Used by the
	// tenant resolver before any tenant exists, hence unscoped.
	FindMembershipByUserID(ctx context.Context, userID int64) (*domain.CompanyMember, error)

	// IsUserInAnyCompany reports whether the user already belongs to a
	// company. Backs the single-company-per-user invite constraint.
	IsUserInAnyCompany(ctx context.Context, userID int64) (bool, error)

	// CreateMemberInTx persists a membership inside tx and fills the
	// generated ids. Authenticated tenants are stamped onto the member;
	// pre-tenant flows (registration, first company) set CompanyID
	// themselves and pass their unauthenticated tenant through.
	CreateMemberInTx(ctx context.Context, tx pgx.Tx, t tenant.Tenant, member *domain.CompanyMember) error
}
