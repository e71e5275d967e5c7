package handlers

import (
	portsrepo "github.com/basehq/base_backend/internal/core/ports/repositories"
	portssvc "github.com/basehq/base_backend/internal/core/ports/services"
	"github.com/basehq/base_backend/internal/middleware"
	"github.com/basehq/base_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	repos *portsrepo.RepositoryProvider,
) {
	RegisterValidators()

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	registerAuthRoutes(r, cfg, services, repos)
	registerCompanyRoutes(r, cfg, services, repos)
}

// credentialRateLimiter limits credential-guessing endpoints to 5 requests
// per minute per IP.
func credentialRateLimiter() gin.HandlerFunc {
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	return middleware.RateLimit(limiter.New(store, rate))
}

// registerAuthRoutes sets up the /api/v1/auth routes. Register, login,
// refresh, and the password-reset pair are public; logout and me require a
// valid access token.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, repos *portsrepo.RepositoryProvider) {
	h := NewAuthHandler(services.Auth)
	limit := credentialRateLimiter()

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", limit, h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/forgot-password", limit, h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
	}

	authed := r.Group("/api/v1/auth", middleware.AuthMiddleware(cfg.JWTSecret))
	{
		authed.POST("/logout", h.Logout)
		authed.GET("/me", h.Me)
	}
}

// registerCompanyRoutes sets up the /api/v1/companies routes. All require
// an access token; the tenant resolver turns the caller's membership into
// the per-request tenant.
func registerCompanyRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, repos *portsrepo.RepositoryProvider) {
	h := NewCompanyHandler(services.Company)

	companies := r.Group("/api/v1/companies",
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.TenantResolver(repos.MemberRepo, repos.CompanyRepo),
	)
	{
		companies.POST("", h.Create)
		companies.GET("", h.Get)
		companies.PUT("", h.Update)
		companies.DELETE("", h.Delete)
		companies.POST("/members", h.InviteMember)
		companies.GET("/members/:memberId", h.GetMember)
		companies.PUT("/members/:memberId", h.UpdateMember)
		companies.DELETE("/members/:memberId", h.RemoveMember)
	}
}
