package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/basehq/base_backend/internal/apperrors"
	portsrepo "github.com/basehq/base_backend/internal/core/ports/repositories"
	"github.com/basehq/base_backend/internal/core/tenant"
	"github.com/gin-gonic/gin"
)

// TenantResolver creates a Gin middleware that resolves the caller's
// company membership once per request and stores the resulting tenant in
// the request context. It runs after AuthMiddleware. A user without a
// membership still passes through with an unauthenticated tenant carrying
// only the user id; endpoints that need a company reject that themselves.
func TenantResolver(memberRepo portsrepo.CompanyMemberRepositoryFacade, companyRepo portsrepo.CompanyRepositoryFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())
		if logger == nil {
			logger = slog.Default()
		}

		t := tenant.Tenant{UserID: userID}

		member, err := memberRepo.FindMembershipByUserID(c.Request.Context(), userID)
		switch {
		case err == nil:
			company, cerr := companyRepo.FindCompanyByID(c.Request.Context(), member.CompanyID)
			if cerr != nil && !errors.Is(cerr, apperrors.ErrNotFound) {
				logger.Error("Failed to load company for tenant resolution", slog.String("error", cerr.Error()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve tenant"})
				return
			}
			if cerr == nil {
				t.CompanyID = member.CompanyID
				t.CompanyPublicID = company.PublicID
				t.Role = member.Role
			}
			// A soft-deleted company leaves the tenant unauthenticated.
		case errors.Is(err, apperrors.ErrNotFound):
			// No membership yet, e.g. right after an invite flow began.
		default:
			logger.Error("Failed to resolve membership", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve tenant"})
			return
		}

		c.Request = c.Request.WithContext(tenant.NewContext(c.Request.Context(), t))
		c.Next()
	}
}
