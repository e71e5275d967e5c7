package mapping

import (
	"github.com/basehq/base_backend/internal/core/domain"
	"github.com/basehq/base_backend/internal/models"
)

// ToModelLifecycle converts a domain Lifecycle to a model LifecycleFields
func ToModelLifecycle(d domain.Lifecycle) models.LifecycleFields {
	return models.LifecycleFields{
		PublicID:  d.PublicID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		DeletedAt: d.DeletedAt,
		IsDeleted: d.IsDeleted,
	}
}

// ToDomainLifecycle converts a model LifecycleFields to a domain Lifecycle
func ToDomainLifecycle(m models.LifecycleFields) domain.Lifecycle {
	return domain.Lifecycle{
		PublicID:  m.PublicID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: m.DeletedAt,
		IsDeleted: m.IsDeleted,
	}
}
