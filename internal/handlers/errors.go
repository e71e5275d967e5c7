package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/basehq/base_backend/internal/apperrors"
	"github.com/basehq/base_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the generic error body returned by all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps service-layer sentinel errors onto HTTP statuses.
// Anything unmapped is a 500 with a generic body; the real error goes to
// the log and to the error-capture middleware via c.Error.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email is already registered"})
	case errors.Is(err, apperrors.ErrDuplicateName):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Name is already taken"})
	case errors.Is(err, apperrors.ErrInvalidOrExpiredOtp):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired verification code"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request"})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
	case errors.Is(err, apperrors.ErrInvalidOrExpiredToken):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired token"})
	case errors.Is(err, apperrors.ErrCrossTenantAccess), errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrAlreadyInCompany):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "User already belongs to a company"})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("unhandled error in handler", slog.String("error", err.Error()))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
