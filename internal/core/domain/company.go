package domain

import "encoding/json"

// Company is the tenant boundary. All tenant-scoped data access is
// filtered to the caller's company.
type Company struct {
	ID       int64           `json:"-"`
	Name     string          `json:"name"` // unique, case-insensitive
	Settings json.RawMessage `json:"settings,omitempty"`
	Lifecycle
}

// CompanyRole defines the possible roles a user can have within a company.
type CompanyRole string

const (
	RoleOwner  CompanyRole = "OWNER"
	RoleAdmin  CompanyRole = "ADMIN"
	RoleMember CompanyRole = "MEMBER"
)

// IsValid reports whether the role is one of the known company roles.
func (r CompanyRole) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// CanManageCompany reports whether the role may update or delete the
// company and invite members.
func (r CompanyRole) CanManageCompany() bool {
	return r == RoleOwner || r == RoleAdmin
}

// CompanyMember joins a user to a company with a role. It is the
// authoritative membership record; User.CompanyID mirrors it. A user
// belongs to at most one company, enforced at invite time.
type CompanyMember struct {
	ID        int64       `json:"-"`
	CompanyID int64       `json:"-"`
	UserID    int64       `json:"-"`
	Role      CompanyRole `json:"role"`
	UserName  string      `json:"userName,omitempty"`  // populated on reads with members
	UserEmail string      `json:"userEmail,omitempty"` // populated on reads with members
	Lifecycle
}

func (m *CompanyMember) TenantCompanyID() int64 {
	return m.CompanyID
}

func (m *CompanyMember) SetTenantCompanyID(companyID int64) {
	m.CompanyID = companyID
}
