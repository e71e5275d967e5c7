package services

import (
	portsrepo "github.com/basehq/base_backend/internal/core/ports/repositories"
	portssvc "github.com/basehq/base_backend/internal/core/ports/services"
	"github.com/basehq/base_backend/internal/platform/config"
	"github.com/basehq/base_backend/internal/utils"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. It fails when the OTP protector cannot be
// keyed: running without one would make stored reset tokens forgeable.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, mail portssvc.MailSvcFacade) (*portssvc.ServiceContainer, error) {
	otp, err := utils.NewOtpProtector(cfg.PasswordResetPepper, cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	container := &portssvc.ServiceContainer{}
	container.Mail = mail
	container.Token = NewTokenService(cfg)
	container.Auth = NewAuthService(cfg, repos, container.Token, container.Mail, otp)
	container.Company = NewCompanyService(repos)

	return container, nil
}
