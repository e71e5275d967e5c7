package services

import (
	"context"
	"fmt"
	"time"

	"github.com/basehq/base_backend/internal/core/domain"
	portssvc "github.com/basehq/base_backend/internal/core/ports/services"
	"github.com/basehq/base_backend/internal/platform/config"
	"github.com/basehq/base_backend/internal/utils"
)

const refreshTokenByteLength = 32

// tokenService implements TokenSvcFacade. It needs only the configuration:
// signing secret, issuer, and the two expiry windows.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.ID, user.Email, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, expiryTime, nil
}

// GenerateRefreshToken creates a new opaque refresh token value. The value
// never reaches storage in plaintext; callers persist utils.HashRefreshToken
// of it.
func (s *tokenService) GenerateRefreshToken(ctx context.Context) (string, time.Time, error) {
	rawRefreshToken, err := utils.GenerateSecureRandomString(refreshTokenByteLength)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiryTime := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)

	return rawRefreshToken, expiryTime, nil
}
