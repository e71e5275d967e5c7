package mapping

import (
	"github.com/basehq/base_backend/internal/core/domain"
	"github.com/basehq/base_backend/internal/models"
)

// ToModelRefreshToken converts a domain RefreshToken to its model
func ToModelRefreshToken(d domain.RefreshToken) models.RefreshToken {
	return models.RefreshToken{
		ID:              d.ID,
		UserID:          d.UserID,
		TokenHash:       d.TokenHash,
		DeviceInfo:      d.DeviceInfo,
		ExpiresAt:       d.ExpiresAt,
		IsRevoked:       d.IsRevoked,
		RevokedAt:       d.RevokedAt,
		LifecycleFields: ToModelLifecycle(d.Lifecycle),
	}
}

// ToDomainRefreshToken converts a model RefreshToken to its domain form
func ToDomainRefreshToken(m models.RefreshToken) domain.RefreshToken {
	return domain.RefreshToken{
		ID:         m.ID,
		UserID:     m.UserID,
		TokenHash:  m.TokenHash,
		DeviceInfo: m.DeviceInfo,
		ExpiresAt:  m.ExpiresAt,
		IsRevoked:  m.IsRevoked,
		RevokedAt:  m.RevokedAt,
		Lifecycle:  ToDomainLifecycle(m.LifecycleFields),
	}
}

// ToModelPasswordResetToken converts a domain PasswordResetToken to its model
func ToModelPasswordResetToken(d domain.PasswordResetToken) models.PasswordResetToken {
	return models.PasswordResetToken{
		ID:              d.ID,
		UserID:          d.UserID,
		TokenHash:       d.TokenHash,
		ExpiresAt:       d.ExpiresAt,
		IsUsed:          d.IsUsed,
		UsedAt:          d.UsedAt,
		LifecycleFields: ToModelLifecycle(d.Lifecycle),
	}
}

// ToDomainPasswordResetToken converts a model PasswordResetToken to its domain form
func ToDomainPasswordResetToken(m models.PasswordResetToken) domain.PasswordResetToken {
	return domain.PasswordResetToken{
		ID:        m.ID,
		UserID:    m.UserID,
		TokenHash: m.TokenHash,
		ExpiresAt: m.ExpiresAt,
		IsUsed:    m.IsUsed,
		UsedAt:    m.UsedAt,
		Lifecycle: ToDomainLifecycle(m.LifecycleFields),
	}
}
