package middleware_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/basehq/base_backend/internal/core/domain"
	"github.com/basehq/base_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingAppLogRepo records entries and signals each save so tests can
// wait for the asynchronous write.
type capturingAppLogRepo struct {
	mu      sync.Mutex
	entries []*domain.AppLog
	saved   chan struct{}
}

func newCapturingAppLogRepo() *capturingAppLogRepo {
	return &capturingAppLogRepo{saved: make(chan struct{}, 8)}
}

func (r *capturingAppLogRepo) SaveAppLog(_ context.Context, entry *domain.AppLog) error {
	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
	r.saved <- struct{}{}
	return nil
}

func (r *capturingAppLogRepo) awaitSave(t *testing.T) *domain.AppLog {
	t.Helper()
	select {
	case <-r.saved:
	case <-time.After(2 * time.Second):
		t.Fatal("no app log entry was persisted")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[len(r.entries)-1]
}

func (r *capturingAppLogRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// newCapturedRouter wires the production middleware order: capture outside
// recovery, so recovered panics flow back through the capture.
func newCapturedRouter(repo *capturingAppLogRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(slog.New(slog.DiscardHandler)),
		middleware.ErrorCapture(repo, slog.New(slog.DiscardHandler)),
		gin.Recovery(),
	)
	return r
}

func TestErrorCapture_PersistsPanics(t *testing.T) {
	repo := newCapturingAppLogRepo()
	r := newCapturedRouter(repo)
	r.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entry := repo.awaitSave(t)
	assert.Equal(t, http.StatusInternalServerError, entry.StatusCode)
	assert.Equal(t, "/boom", entry.RequestPath)
	assert.Equal(t, http.MethodGet, entry.RequestMethod)
	assert.NotEmpty(t, entry.TraceID)
}

func TestErrorCapture_PersistsHandlerErrors(t *testing.T) {
	repo := newCapturingAppLogRepo()
	r := newCapturedRouter(repo)
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("downstream unavailable"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	entry := repo.awaitSave(t)
	assert.Equal(t, http.StatusInternalServerError, entry.StatusCode)
	assert.Contains(t, entry.Error, "downstream unavailable")
}

func TestErrorCapture_IgnoresSuccessfulRequests(t *testing.T) {
	repo := newCapturingAppLogRepo()
	r := newCapturedRouter(repo)
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, repo.count())
}
