package domain

import (
	"time"

	"github.com/google/uuid"
)

// Lifecycle holds the shared identity and soft-delete fields embedded in
// every persisted entity. PublicID is the stable external identifier;
// internal numeric ids never leave the API boundary.
type Lifecycle struct {
	PublicID  string     `json:"publicID"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	IsDeleted bool       `json:"-"`
}

// NewLifecycle returns lifecycle fields for a freshly created entity.
func NewLifecycle(now time.Time) Lifecycle {
	return Lifecycle{
		PublicID:  uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TenantScoped is implemented by entities that carry a company reference
// and therefore participate in tenant isolation. Repositories use it to
// filter reads, verify writes, and stamp creates with the resolved tenant.
type TenantScoped interface {
	TenantCompanyID() int64
	SetTenantCompanyID(companyID int64)
}
