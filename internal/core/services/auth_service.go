package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/basehq/base_backend/internal/apperrors"
	"github.com/basehq/base_backend/internal/core/domain"
	portsrepo "github.com/basehq/base_backend/internal/core/ports/repositories"
	portssvc "github.com/basehq/base_backend/internal/core/ports/services"
	"github.com/basehq/base_backend/internal/core/tenant"
	"github.com/basehq/base_backend/internal/platform/config"
	"github.com/basehq/base_backend/internal/utils"
	"github.com/google/uuid"
)

// authService implements AuthSvcFacade: registration, credential login,
// refresh-token rotation, logout, and the password-reset OTP lifecycle.
type authService struct {
	BaseService
	repos *portsrepo.RepositoryProvider
	token portssvc.TokenSvcFacade
	mail  portssvc.MailSvcFacade
	otp   *utils.OtpProtector
	cfg   *config.Config
}

// NewAuthService creates the authentication core service.
func NewAuthService(cfg *config.Config, repos *portsrepo.RepositoryProvider, token portssvc.TokenSvcFacade, mail portssvc.MailSvcFacade, otp *utils.OtpProtector) portssvc.AuthSvcFacade {
	return &authService{
		repos: repos,
		token: token,
		mail:  mail,
		otp:   otp,
		cfg:   cfg,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Register creates the company, user, credentials, and Owner membership in
// one transaction, so a failure partway leaves no orphaned rows.
func (s *authService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	exists, err := s.repos.UserRepo.EmailExists(ctx, email)
	if err != nil {
		s.LogError(ctx, err, "failed to check email existence during registration")
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateEmail
	}

	passwordHash, err := utils.HashPassword(password, s.cfg.PasswordHashIterations)
	if err != nil {
		s.LogError(ctx, err, "failed to hash password during registration")
		return nil, err
	}

	now := time.Now()

	companyName, err := s.availableCompanyName(ctx, name)
	if err != nil {
		return nil, err
	}

	tx, err := s.repos.TxManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin registration transaction: %w", err)
	}
	defer s.repos.TxManager.Rollback(ctx, tx)

	company := &domain.Company{
		Name:      companyName,
		Lifecycle: domain.NewLifecycle(now),
	}
	if err := s.repos.CompanyRepo.CreateCompanyInTx(ctx, tx, company); err != nil {
		s.LogError(ctx, err, "failed to create company during registration")
		return nil, err
	}

	user := &domain.User{
		Email:     email,
		Name:      name,
		IsActive:  true,
		AvatarURL: utils.GenerateUserAvatar(name),
		CompanyID: company.ID,
		Lifecycle: domain.NewLifecycle(now),
	}
	if err := s.repos.UserRepo.CreateUserInTx(ctx, tx, user); err != nil {
		s.LogError(ctx, err, "failed to create user during registration")
		return nil, err
	}

	creds := &domain.UserCredentials{
		UserID:       user.ID,
		PasswordHash: passwordHash,
		Lifecycle:    domain.NewLifecycle(now),
	}
	if err := s.repos.CredentialsRepo.CreateCredentialsInTx(ctx, tx, creds); err != nil {
		s.LogError(ctx, err, "failed to create credentials during registration")
		return nil, err
	}

	member := &domain.CompanyMember{
		CompanyID: company.ID,
		UserID:    user.ID,
		Role:      domain.RoleOwner,
		Lifecycle: domain.NewLifecycle(now),
	}
	// No tenant exists yet at registration, so the member carries its
	// CompanyID explicitly.
	if err := s.repos.MemberRepo.CreateMemberInTx(ctx, tx, tenant.Tenant{}, member); err != nil {
		s.LogError(ctx, err, "failed to create owner membership during registration")
		return nil, err
	}

	event := &domain.AuditEvent{
		UserID:    user.ID,
		EventType: domain.AuditSignup,
		Timestamp: now,
	}
	if err := s.repos.AuditRepo.SaveAuditEventInTx(ctx, tx, event); err != nil {
		s.LogError(ctx, err, "failed to record signup audit event")
		return nil, err
	}

	if err := s.repos.TxManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit registration transaction: %w", err)
	}

	s.LogInfo(ctx, "user registered", slog.Int64("user_id", user.ID), slog.Int64("company_id", company.ID))
	s.mail.EnqueueWelcomeEmail(user.Email, portssvc.WelcomeEmailData{Name: user.Name})

	return user, nil
}

// availableCompanyName derives the default company name from the user's
// name, appending a random suffix when the plain form is taken.
func (s *authService) availableCompanyName(ctx context.Context, userName string) (string, error) {
	base := strings.TrimSpace(userName)
	if base == "" {
		base = "My"
	}
	candidate := base + "'s Company"

	taken, err := s.repos.CompanyRepo.NameExists(ctx, candidate, 0)
	if err != nil {
		return "", fmt.Errorf("failed to check company name availability: %w", err)
	}
	if taken {
		candidate = fmt.Sprintf("%s (%s)", candidate, uuid.NewString()[:8])
	}
	return candidate, nil
}

// Login verifies credentials and mints a token pair. Unknown email and
// wrong password converge on ErrInvalidCredentials so responses do not
// reveal which accounts exist.
func (s *authService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (*domain.User, *domain.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	now := time.Now()

	user, err := s.repos.UserRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.recordLoginFailure(ctx, domain.UnknownUserID, email, ipAddress, userAgent)
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		s.LogError(ctx, err, "failed to look up user during login")
		return nil, nil, err
	}

	creds, err := s.repos.CredentialsRepo.FindCredentialsByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.recordLoginFailure(ctx, user.ID, email, ipAddress, userAgent)
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		s.LogError(ctx, err, "failed to load credentials during login")
		return nil, nil, err
	}

	if !utils.CheckPasswordHash(password, creds.PasswordHash, s.cfg.PasswordHashIterations) {
		s.recordLoginFailure(ctx, user.ID, email, ipAddress, userAgent)
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		s.recordLoginFailure(ctx, user.ID, email, ipAddress, userAgent)
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(ctx, user, ipAddress, userAgent, now)
	if err != nil {
		return nil, nil, err
	}

	s.LogInfo(ctx, "user logged in", slog.Int64("user_id", user.ID))
	return user, pair, nil
}

// issueTokenPair mints an access token plus a refresh token and persists
// the refresh-token hash together with the login audit event.
func (s *authService) issueTokenPair(ctx context.Context, user *domain.User, ipAddress, userAgent string, now time.Time) (*domain.TokenPair, error) {
	accessToken, accessExpiry, err := s.token.GenerateAccessToken(ctx, user)
	if err != nil {
		s.LogError(ctx, err, "failed to generate access token", slog.Int64("user_id", user.ID))
		return nil, err
	}

	rawRefreshToken, refreshExpiry, err := s.token.GenerateRefreshToken(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to generate refresh token", slog.Int64("user_id", user.ID))
		return nil, err
	}

	tx, err := s.repos.TxManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin login transaction: %w", err)
	}
	defer s.repos.TxManager.Rollback(ctx, tx)

	stored := &domain.RefreshToken{
		UserID:     user.ID,
		TokenHash:  utils.HashRefreshToken(rawRefreshToken),
		DeviceInfo: userAgent,
		ExpiresAt:  refreshExpiry,
		Lifecycle:  domain.NewLifecycle(now),
	}
	if err := s.repos.RefreshTokenRepo.CreateTokenInTx(ctx, tx, stored); err != nil {
		s.LogError(ctx, err, "failed to store refresh token", slog.Int64("user_id", user.ID))
		return nil, err
	}

	event := &domain.AuditEvent{
		UserID:    user.ID,
		EventType: domain.AuditLogin,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Timestamp: now,
	}
	if err := s.repos.AuditRepo.SaveAuditEventInTx(ctx, tx, event); err != nil {
		s.LogError(ctx, err, "failed to record login audit event", slog.Int64("user_id", user.ID))
		return nil, err
	}

	if err := s.repos.TxManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit login transaction: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: accessExpiry,
		RefreshToken:         rawRefreshToken,
	}, nil
}

// recordLoginFailure appends a login_failed audit event. The failure is
// best-effort: a broken audit store must not change the login response.
func (s *authService) recordLoginFailure(ctx context.Context, userID int64, email, ipAddress, userAgent string) {
	event := &domain.AuditEvent{
		UserID:    userID,
		EventType: domain.AuditLoginFailed,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Timestamp: time.Now(),
		Details:   fmt.Sprintf(`{"email":%q}`, email),
	}
	if err := s.repos.AuditRepo.SaveAuditEvent(ctx, event); err != nil {
		s.LogError(ctx, err, "failed to record login_failed audit event")
	}
}

// Refresh rotates a refresh token. Revoking the consumed token and storing
// the replacement commit together, and the revoke is guarded, so a token
// presented twice concurrently yields exactly one new pair.
func (s *authService) Refresh(ctx context.Context, refreshTokenValue string) (*domain.TokenPair, error) {
	now := time.Now()

	stored, err := s.repos.RefreshTokenRepo.FindActiveTokenByHash(ctx, utils.HashRefreshToken(refreshTokenValue))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidOrExpiredToken
		}
		s.LogError(ctx, err, "failed to look up refresh token")
		return nil, err
	}
	if !stored.IsActive(now) {
		return nil, apperrors.ErrInvalidOrExpiredToken
	}

	user, err := s.repos.UserRepo.FindUserByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidOrExpiredToken
		}
		s.LogError(ctx, err, "failed to load user during token refresh", slog.Int64("user_id", stored.UserID))
		return nil, err
	}

	accessToken, accessExpiry, err := s.token.GenerateAccessToken(ctx, user)
	if err != nil {
		s.LogError(ctx, err, "failed to generate access token during refresh", slog.Int64("user_id", user.ID))
		return nil, err
	}
	rawRefreshToken, refreshExpiry, err := s.token.GenerateRefreshToken(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to generate replacement refresh token", slog.Int64("user_id", user.ID))
		return nil, err
	}

	tx, err := s.repos.TxManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin refresh transaction: %w", err)
	}
	defer s.repos.TxManager.Rollback(ctx, tx)

	if err := s.repos.RefreshTokenRepo.RevokeTokenInTx(ctx, tx, stored.ID, now); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Lost the rotation race: another request consumed this token first.
			return nil, apperrors.ErrInvalidOrExpiredToken
		}
		s.LogError(ctx, err, "failed to revoke consumed refresh token", slog.Int64("user_id", user.ID))
		return nil, err
	}

	replacement := &domain.RefreshToken{
		UserID:     user.ID,
		TokenHash:  utils.HashRefreshToken(rawRefreshToken),
		DeviceInfo: stored.DeviceInfo,
		ExpiresAt:  refreshExpiry,
		Lifecycle:  domain.NewLifecycle(now),
	}
	if err := s.repos.RefreshTokenRepo.CreateTokenInTx(ctx, tx, replacement); err != nil {
		s.LogError(ctx, err, "failed to store replacement refresh token", slog.Int64("user_id", user.ID))
		return nil, err
	}

	if err := s.repos.TxManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit refresh transaction: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: accessExpiry,
		RefreshToken:         rawRefreshToken,
	}, nil
}

// Logout revokes the presented refresh token when it belongs to the
// caller. Unknown tokens and tokens owned by someone else are silent
// no-ops: logout is idempotent and reveals nothing about stored tokens.
func (s *authService) Logout(ctx context.Context, currentUserID int64, refreshTokenValue string) error {
	now := time.Now()

	stored, err := s.repos.RefreshTokenRepo.FindActiveTokenByHash(ctx, utils.HashRefreshToken(refreshTokenValue))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		s.LogError(ctx, err, "failed to look up refresh token during logout", slog.Int64("user_id", currentUserID))
		return err
	}
	if stored.UserID != currentUserID {
		s.LogWarn(ctx, "logout presented a refresh token owned by another user",
			slog.Int64("user_id", currentUserID), slog.Int64("token_owner_id", stored.UserID))
		return nil
	}

	tx, err := s.repos.TxManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin logout transaction: %w", err)
	}
	defer s.repos.TxManager.Rollback(ctx, tx)

	if err := s.repos.RefreshTokenRepo.RevokeTokenInTx(ctx, tx, stored.ID, now); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		s.LogError(ctx, err, "failed to revoke refresh token during logout", slog.Int64("user_id", currentUserID))
		return err
	}

	event := &domain.AuditEvent{
		UserID:    currentUserID,
		EventType: domain.AuditLogout,
		Timestamp: now,
	}
	if err := s.repos.AuditRepo.SaveAuditEventInTx(ctx, tx, event); err != nil {
		s.LogError(ctx, err, "failed to record logout audit event", slog.Int64("user_id", currentUserID))
		return err
	}

	if err := s.repos.TxManager.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit logout transaction: %w", err)
	}

	s.LogInfo(ctx, "user logged out", slog.Int64("user_id", currentUserID))
	return nil
}

// GetCurrentUser returns the authenticated user's profile.
func (s *authService) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.repos.UserRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "failed to load current user", slog.Int64("user_id", userID))
		return nil, err
	}
	return user, nil
}

// InitiatePasswordReset issues a fresh OTP. It reports success for unknown
// emails too, so the endpoint cannot be used to enumerate accounts.
func (s *authService) InitiatePasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	now := time.Now()

	user, err := s.repos.UserRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "password reset requested for unknown email")
			return nil
		}
		s.LogError(ctx, err, "failed to look up user for password reset")
		return err
	}

	otp, err := utils.GenerateOtp()
	if err != nil {
		s.LogError(ctx, err, "failed to generate OTP", slog.Int64("user_id", user.ID))
		return err
	}

	tx, err := s.repos.TxManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin password reset transaction: %w", err)
	}
	defer s.repos.TxManager.Rollback(ctx, tx)

	// A new OTP supersedes every earlier one still outstanding.
	if err := s.repos.ResetTokenRepo.InvalidateActiveTokensForUserInTx(ctx, tx, user.ID, now); err != nil {
		s.LogError(ctx, err, "failed to invalidate prior reset tokens", slog.Int64("user_id", user.ID))
		return err
	}

	ticket := &domain.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: s.otp.HashOtp(user.ID, otp),
		ExpiresAt: now.Add(s.cfg.PasswordResetOtpExpiry),
		Lifecycle: domain.NewLifecycle(now),
	}
	if err := s.repos.ResetTokenRepo.CreateTokenInTx(ctx, tx, ticket); err != nil {
		s.LogError(ctx, err, "failed to store password reset token", slog.Int64("user_id", user.ID))
		return err
	}

	if err := s.repos.TxManager.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit password reset transaction: %w", err)
	}

	s.LogInfo(ctx, "password reset initiated", slog.Int64("user_id", user.ID))
	s.mail.EnqueueVerificationCodeEmail(user.Email, portssvc.VerificationCodeEmailData{
		Name:              user.Name,
		OTP:               otp,
		ExpirationMinutes: int(s.cfg.PasswordResetOtpExpiry.Minutes()),
	})

	return nil
}

// ResetPassword redeems an OTP. Every failure mode (unknown email, wrong
// digits, expired, already used) collapses into ErrInvalidOrExpiredOtp.
func (s *authService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	now := time.Now()

	user, err := s.repos.UserRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrInvalidOrExpiredOtp
		}
		s.LogError(ctx, err, "failed to look up user for password reset redemption")
		return err
	}

	ticket, err := s.repos.ResetTokenRepo.FindActiveTokenByUserAndHash(ctx, user.ID, s.otp.HashOtp(user.ID, otp))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrInvalidOrExpiredOtp
		}
		s.LogError(ctx, err, "failed to look up password reset token", slog.Int64("user_id", user.ID))
		return err
	}

	passwordHash, err := utils.HashPassword(newPassword, s.cfg.PasswordHashIterations)
	if err != nil {
		s.LogError(ctx, err, "failed to hash new password", slog.Int64("user_id", user.ID))
		return err
	}

	tx, err := s.repos.TxManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin password reset redemption transaction: %w", err)
	}
	defer s.repos.TxManager.Rollback(ctx, tx)

	if err := s.repos.ResetTokenRepo.MarkTokenUsedInTx(ctx, tx, ticket.ID, now); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Lost the redemption race: the OTP was consumed concurrently.
			return apperrors.ErrInvalidOrExpiredOtp
		}
		s.LogError(ctx, err, "failed to consume password reset token", slog.Int64("user_id", user.ID))
		return err
	}

	if err := s.repos.CredentialsRepo.ReplacePasswordHashInTx(ctx, tx, user.ID, passwordHash, now); err != nil {
		s.LogError(ctx, err, "failed to replace password hash", slog.Int64("user_id", user.ID))
		return err
	}

	// A reset invalidates every open session.
	if err := s.repos.RefreshTokenRepo.RevokeAllTokensForUserInTx(ctx, tx, user.ID, now); err != nil {
		s.LogError(ctx, err, "failed to revoke refresh tokens after password reset", slog.Int64("user_id", user.ID))
		return err
	}

	event := &domain.AuditEvent{
		UserID:    user.ID,
		EventType: domain.AuditResetPassword,
		Timestamp: now,
	}
	if err := s.repos.AuditRepo.SaveAuditEventInTx(ctx, tx, event); err != nil {
		s.LogError(ctx, err, "failed to record reset_password audit event", slog.Int64("user_id", user.ID))
		return err
	}

	if err := s.repos.TxManager.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit password reset redemption transaction: %w", err)
	}

	s.LogInfo(ctx, "password reset completed", slog.Int64("user_id", user.ID))
	return nil
}
