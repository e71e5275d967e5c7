package mapping

import (
	"github.com/basehq/base_backend/internal/core/domain"
	"github.com/basehq/base_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		ID:              d.ID,
		Email:           d.Email,
		Name:            d.Name,
		IsActive:        d.IsActive,
		AvatarURL:       d.AvatarURL,
		CompanyID:       d.CompanyID,
		LifecycleFields: ToModelLifecycle(d.Lifecycle),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		IsActive:  m.IsActive,
		AvatarURL: m.AvatarURL,
		CompanyID: m.CompanyID,
		Lifecycle: ToDomainLifecycle(m.LifecycleFields),
	}
}

// ToModelUserCredentials converts a domain UserCredentials to its model
func ToModelUserCredentials(d domain.UserCredentials) models.UserCredentials {
	return models.UserCredentials{
		ID:                 d.ID,
		UserID:             d.UserID,
		PasswordHash:       d.PasswordHash,
		LastPasswordChange: d.LastPasswordChange,
		LifecycleFields:    ToModelLifecycle(d.Lifecycle),
	}
}

// ToDomainUserCredentials converts a model UserCredentials to its domain form
func ToDomainUserCredentials(m models.UserCredentials) domain.UserCredentials {
	return domain.UserCredentials{
		ID:                 m.ID,
		UserID:             m.UserID,
		PasswordHash:       m.PasswordHash,
		LastPasswordChange: m.LastPasswordChange,
		Lifecycle:          ToDomainLifecycle(m.LifecycleFields),
	}
}
