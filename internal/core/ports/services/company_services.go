package services

import (
	"context"
	"encoding/json"

	"github.com/basehq/base_backend/internal/core/domain"
	"github.com/basehq/base_backend/internal/core/tenant"
)

// CompanySvcFacade manages the caller's company and its memberships. Every
// operation receives the tenant resolved at the boundary; there is no
// ambient tenant state.
type CompanySvcFacade interface {
	// CreateCompany creates a company. Fails with ErrDuplicateName if the
	// name is taken (case-insensitive).
	CreateCompany(ctx context.Context, t tenant.Tenant, name string, settings json.RawMessage) (*domain.Company, error)

	// GetCompany returns the caller's company with its members.
	GetCompany(ctx context.Context, t tenant.Tenant) (*domain.Company, []domain.CompanyMember, error)

	// UpdateCompany renames the company and/or replaces its settings.
	// Requires Owner or Admin role.
	UpdateCompany(ctx context.Context, t tenant.Tenant, name string, settings json.RawMessage) (*domain.Company, error)

	// DeleteCompany soft-deletes the caller's company. Requires Owner or
	// Admin role.
	DeleteCompany(ctx context.Context, t tenant.Tenant) error

	// InviteMember adds an existing user to the caller's company and
	// repoints the user's denormalized company id, in one transaction.
	// Fails with ErrUserNotFound for unknown emails and ErrAlreadyInCompany
	// when the user already belongs to any company.
	InviteMember(ctx context.Context, t tenant.Tenant, email string, role domain.CompanyRole) (*domain.CompanyMember, error)

	// GetMember returns a member's user profile by public id, scoped to
	// the caller's company. Members of other companies are ErrNotFound.
	GetMember(ctx context.Context, t tenant.Tenant, memberPublicID string) (*domain.User, error)

	// SetMemberActive enables or disables a member's account. Requires
	// Owner or Admin role; callers cannot change their own flag.
	SetMemberActive(ctx context.Context, t tenant.Tenant, memberPublicID string, isActive bool) (*domain.User, error)

	// RemoveMember retires a member's account (soft delete). Requires
	// Owner or Admin role; self-removal is rejected.
	RemoveMember(ctx context.Context, t tenant.Tenant, memberPublicID string) error
}
