package pgsql

import (
	"github.com/basehq/base_backend/internal/apperrors"
	"github.com/basehq/base_backend/internal/core/domain"
	"github.com/basehq/base_backend/internal/core/tenant"
)

// TenantScopedRepository is the base for repositories over entities that
// implement domain.TenantScoped. Reads are filtered to the resolved
// company both in SQL (a company_id predicate on every scoped query) and
// through guardTenantRead as a second check; writes must pass
// guardTenantWrite; creates are stamped via stampTenant.
//
// Lookups that intentionally cross tenants (email uniqueness at signup,
// login, tenant resolution itself) live on plain BaseRepository methods
// and are documented at their declaration.
type TenantScopedRepository struct {
	BaseRepository
}

// guardTenantRead hides entities that belong to a different company than
// the caller's tenant. Unauthenticated tenants see nothing: not-found,
// never unfiltered data.
func guardTenantRead[T domain.TenantScoped](t tenant.Tenant, entity T) error {
	if !t.IsAuthenticated() {
		return apperrors.ErrNotFound
	}
	if entity.TenantCompanyID() != t.CompanyID {
		return apperrors.ErrNotFound
	}
	return nil
}

// guardTenantWrite rejects mutations of entities owned by a different
// company. Unlike reads, a cross-tenant write is an explicit error, not a
// not-found, so the caller can audit the attempt.
func guardTenantWrite(t tenant.Tenant, entity domain.TenantScoped) error {
	if !t.IsAuthenticated() || entity.TenantCompanyID() != t.CompanyID {
		return apperrors.ErrCrossTenantAccess
	}
	return nil
}

// stampTenant sets the entity's company reference from the resolved tenant
// before insert.
func stampTenant(t tenant.Tenant, entity domain.TenantScoped) {
	if t.IsAuthenticated() {
		entity.SetTenantCompanyID(t.CompanyID)
	}
}
