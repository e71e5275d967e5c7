// Package tenant carries the per-request tenant facts resolved once at the
// boundary and threaded explicitly into services and repositories. There is
// no ambient tenant state: an unauthenticated request is the zero value.
package tenant

import (
	"context"

	"github.com/basehq/base_backend/internal/core/domain"
)

// Tenant identifies the caller's company and membership for one request.
// The zero value means "not authenticated": CompanyID 0, empty role.
type Tenant struct {
	CompanyID       int64
	CompanyPublicID string
	UserID          int64
	Role            domain.CompanyRole
}

// IsAuthenticated reports whether the request resolved to a company
// membership.
func (t Tenant) IsAuthenticated() bool {
	return t.CompanyID > 0
}

// CanManageCompany reports whether the caller may update or delete the
// company and invite members.
func (t Tenant) CanManageCompany() bool {
	return t.IsAuthenticated() && t.Role.CanManageCompany()
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying the resolved tenant.
func NewContext(ctx context.Context, t Tenant) context.Context {
	return context.WithValue(ctx, contextKey{}, t)
}

// FromContext extracts the tenant resolved for this request. It returns
// the unauthenticated zero value when no tenant was resolved.
func FromContext(ctx context.Context) Tenant {
	if t, ok := ctx.Value(contextKey{}).(Tenant); ok {
		return t
	}
	return Tenant{}
}
