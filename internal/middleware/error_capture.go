package middleware

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/basehq/base_backend/internal/core/domain"
	portsrepo "github.com/basehq/base_backend/internal/core/ports/repositories"
	"github.com/basehq/base_backend/internal/core/tenant"
	"github.com/gin-gonic/gin"
)

const appLogWriteTimeout = 5 * time.Second

// ErrorCapture creates a Gin middleware that persists failed requests
// (status >= 500, or handler errors) as app_logs rows. Writes are
// best-effort on a detached context so a broken log store never changes a
// response.
func ErrorCapture(appLogRepo portsrepo.AppLogRepositoryFacade, baseLogger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 500 && len(c.Errors) == 0 {
			return
		}

		entry := &domain.AppLog{
			Level:         "error",
			Message:       "request failed",
			TraceID:       GetRequestIDFromCtx(c.Request.Context()),
			RequestPath:   c.Request.URL.Path,
			RequestMethod: c.Request.Method,
			StatusCode:    status,
			CreatedAt:     time.Now(),
		}
		if len(c.Errors) > 0 {
			msgs := make([]string, 0, len(c.Errors))
			for _, ginErr := range c.Errors {
				msgs = append(msgs, ginErr.Error())
			}
			entry.Error = strings.Join(msgs, "; ")
		}
		if userID, ok := GetUserIDFromContext(c); ok {
			entry.UserID = &userID
		}
		if t := tenant.FromContext(c.Request.Context()); t.IsAuthenticated() {
			entry.SetTenantCompanyID(t.CompanyID)
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), appLogWriteTimeout)
			defer cancel()
			if err := appLogRepo.SaveAppLog(ctx, entry); err != nil {
				baseLogger.Error("failed to persist app log", slog.String("error", err.Error()))
			}
		}()
	}
}
