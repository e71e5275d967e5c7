package mail

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/basehq/base_backend/internal/core/ports/services"
	"github.com/basehq/base_backend/internal/platform/config"
)

// Dispatcher implements MailSvcFacade over the provider client. Each
// enqueue spawns a goroutine with its own deadline, detached from the
// request context so an early HTTP response does not cancel delivery.
type Dispatcher struct {
	client               *Client
	logger               *slog.Logger
	welcomeTemplate      string
	verificationTemplate string
}

// NewDispatcher creates the mail dispatcher from configuration.
func NewDispatcher(cfg *config.Config, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		client:               NewClient(cfg.MailAPIURL, cfg.MailAPIToken, cfg.MailFromAddress, cfg.MailFromName),
		logger:               logger,
		welcomeTemplate:      cfg.MailWelcomeTemplate,
		verificationTemplate: cfg.MailVerificationTemplate,
	}
}

var _ portssvc.MailSvcFacade = (*Dispatcher)(nil)

// EnqueueWelcomeEmail sends the post-registration welcome email.
func (d *Dispatcher) EnqueueWelcomeEmail(email string, data portssvc.WelcomeEmailData) {
	d.dispatch("welcome", d.welcomeTemplate, email, data.Name, map[string]any{
		"name": data.Name,
	})
}

// EnqueueVerificationCodeEmail sends the password-reset OTP email.
func (d *Dispatcher) EnqueueVerificationCodeEmail(email string, data portssvc.VerificationCodeEmailData) {
	d.dispatch("verification_code", d.verificationTemplate, email, data.Name, map[string]any{
		"name":               data.Name,
		"otp":                data.OTP,
		"expiration_minutes": data.ExpirationMinutes,
	})
}

func (d *Dispatcher) dispatch(kind, templateKey, toAddress, toName string, mergeInfo map[string]any) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		start := time.Now()
		if err := d.client.SendTemplate(ctx, templateKey, toAddress, toName, mergeInfo); err != nil {
			d.logger.Error("failed to send email",
				slog.String("kind", kind),
				slog.String("error", err.Error()))
			return
		}
		d.logger.Info("email sent",
			slog.String("kind", kind),
			slog.Duration("duration", time.Since(start)))
	}()
}
