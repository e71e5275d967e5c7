package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context keys set by this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	// loggerCtxKey stores the request-scoped *slog.Logger.
	loggerCtxKey = contextKey("logger")
	// userIDKey stores the authenticated user's internal id (int64).
	userIDKey = contextKey("userID")
	// requestIDCtxKey stores the request id issued by the logging middleware.
	requestIDCtxKey = contextKey("requestID")
)

// GetLoggerFromCtx retrieves the request-scoped logger from a standard
// context. It returns nil when no logger was attached; callers fall back
// to slog.Default.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger)
	if !ok {
		return nil
	}
	return logger
}

// GetUserIDFromContext retrieves the authenticated user id from the Gin
// request context. It returns the id and a boolean indicating if it was
// found.
func GetUserIDFromContext(c *gin.Context) (int64, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(int64)
	return userID, ok
}

// GetRequestIDFromCtx retrieves the request id, or "" when absent.
func GetRequestIDFromCtx(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDCtxKey).(string)
	return requestID
}
