package mapping

import (
	"github.com/basehq/base_backend/internal/core/domain"
	"github.com/basehq/base_backend/internal/models"
)

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		ID:              d.ID,
		Name:            d.Name,
		Settings:        []byte(d.Settings),
		LifecycleFields: ToModelLifecycle(d.Lifecycle),
	}
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		ID:        m.ID,
		Name:      m.Name,
		Settings:  m.Settings,
		Lifecycle: ToDomainLifecycle(m.LifecycleFields),
	}
}

// ToModelCompanyMember converts a domain CompanyMember to its model
func ToModelCompanyMember(d domain.CompanyMember) models.CompanyMember {
	return models.CompanyMember{
		ID:              d.ID,
		CompanyID:       d.CompanyID,
		UserID:          d.UserID,
		Role:            string(d.Role),
		LifecycleFields: ToModelLifecycle(d.Lifecycle),
	}
}

// ToDomainCompanyMember converts a model CompanyMember to its domain form
func ToDomainCompanyMember(m models.CompanyMember) domain.CompanyMember {
	return domain.CompanyMember{
		ID:        m.ID,
		CompanyID: m.CompanyID,
		UserID:    m.UserID,
		Role:      domain.CompanyRole(m.Role),
		UserName:  m.UserName,
		UserEmail: m.UserEmail,
		Lifecycle: ToDomainLifecycle(m.LifecycleFields),
	}
}

// ToDomainCompanyMemberSlice converts a slice of model members to domain form
func ToDomainCompanyMemberSlice(ms []models.CompanyMember) []domain.CompanyMember {
	ds := make([]domain.CompanyMember, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCompanyMember(m)
	}
	return ds
}
