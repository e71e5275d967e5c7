package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/basehq/base_backend/internal/apperrors"
	"github.com/basehq/base_backend/internal/core/domain"
	"github.com/basehq/base_backend/internal/dto"
	"github.com/basehq/base_backend/internal/handlers"
	"github.com/basehq/base_backend/internal/middleware"
	"github.com/basehq/base_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AuthService ---

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	args := m.Called(ctx, email, password, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (*domain.User, *domain.TokenPair, error) {
	args := m.Called(ctx, email, password, ipAddress, userAgent)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	var pair *domain.TokenPair
	if args.Get(1) != nil {
		pair = args.Get(1).(*domain.TokenPair)
	}
	return user, pair, args.Error(2)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshTokenValue string) (*domain.TokenPair, error) {
	args := m.Called(ctx, refreshTokenValue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenPair), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, currentUserID int64, refreshTokenValue string) error {
	args := m.Called(ctx, currentUserID, refreshTokenValue)
	return args.Error(0)
}

func (m *MockAuthService) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) InitiatePasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	args := m.Called(ctx, email, otp, newPassword)
	return args.Error(0)
}

// --- Suite ---

const testJWTSecret = "handler-test-secret"

type AuthHandlerTestSuite struct {
	suite.Suite
	mockAuth *MockAuthService
	router   *gin.Engine
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterValidators()

	suite.mockAuth = new(MockAuthService)
	h := handlers.NewAuthHandler(suite.mockAuth)

	suite.router = gin.New()
	auth := suite.router.Group("/api/v1/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/refresh", h.Refresh)
	auth.POST("/forgot-password", h.ForgotPassword)
	auth.POST("/reset-password", h.ResetPassword)

	authed := suite.router.Group("/api/v1/auth", middleware.AuthMiddleware(testJWTSecret))
	authed.POST("/logout", h.Logout)
	authed.GET("/me", h.Me)
}

func (suite *AuthHandlerTestSuite) postJSON(path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) bearerFor(userID int64) map[string]string {
	token, err := utils.GenerateJWT(userID, "user@example.com", testJWTSecret, time.Minute, "test")
	suite.Require().NoError(err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func (suite *AuthHandlerTestSuite) TestRegister_Created() {
	suite.mockAuth.On("Register", mock.Anything, "new@example.com", "password123", "New User").
		Return(&domain.User{Email: "new@example.com", Name: "New User", IsActive: true}, nil).Once()

	w := suite.postJSON("/api/v1/auth/register", dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "password123",
		Name:     "New User",
	}, nil)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockAuth.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRegister_ShortPasswordRejectedAtBinding() {
	w := suite.postJSON("/api/v1/auth/register", dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "short",
		Name:     "New User",
	}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAuth.AssertNotCalled(suite.T(), "Register")
}

func (suite *AuthHandlerTestSuite) TestRegister_DuplicateEmailIs400() {
	suite.mockAuth.On("Register", mock.Anything, "taken@example.com", "password123", "Someone").
		Return(nil, apperrors.ErrDuplicateEmail).Once()

	w := suite.postJSON("/api/v1/auth/register", dto.RegisterRequest{
		Email:    "taken@example.com",
		Password: "password123",
		Name:     "Someone",
	}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLogin_InvalidCredentialsIs401() {
	suite.mockAuth.On("Login", mock.Anything, "user@example.com", "bad", mock.Anything, mock.Anything).
		Return(nil, nil, apperrors.ErrInvalidCredentials).Once()

	w := suite.postJSON("/api/v1/auth/login", dto.LoginRequest{Email: "user@example.com", Password: "bad"}, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRefresh_InvalidTokenIs401() {
	suite.mockAuth.On("Refresh", mock.Anything, "stale").
		Return(nil, apperrors.ErrInvalidOrExpiredToken).Once()

	w := suite.postJSON("/api/v1/auth/refresh", dto.RefreshRequest{RefreshToken: "stale"}, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLogout_RequiresBearer() {
	w := suite.postJSON("/api/v1/auth/logout", dto.LogoutRequest{RefreshToken: "whatever"}, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAuth.AssertNotCalled(suite.T(), "Logout")
}

func (suite *AuthHandlerTestSuite) TestLogout_NoContent() {
	suite.mockAuth.On("Logout", mock.Anything, int64(42), "session-token").Return(nil).Once()

	w := suite.postJSON("/api/v1/auth/logout", dto.LogoutRequest{RefreshToken: "session-token"}, suite.bearerFor(42))

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockAuth.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestMe_ReturnsProfile() {
	suite.mockAuth.On("GetCurrentUser", mock.Anything, int64(42)).
		Return(&domain.User{ID: 42, Email: "user@example.com", Name: "User", IsActive: true}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	for k, v := range suite.bearerFor(42) {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("user@example.com", resp.Email)
}

func (suite *AuthHandlerTestSuite) TestForgotPassword_AlwaysNoContent() {
	suite.mockAuth.On("InitiatePasswordReset", mock.Anything, "nobody@example.com").Return(nil).Once()

	w := suite.postJSON("/api/v1/auth/forgot-password", dto.ForgotPasswordRequest{Email: "nobody@example.com"}, nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *AuthHandlerTestSuite) TestResetPassword_MalformedOtpRejectedAtBinding() {
	w := suite.postJSON("/api/v1/auth/reset-password", dto.ResetPasswordRequest{
		Email:       "user@example.com",
		Otp:         "12ab56",
		NewPassword: "brand-new-password",
	}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAuth.AssertNotCalled(suite.T(), "ResetPassword")
}

func (suite *AuthHandlerTestSuite) TestResetPassword_InvalidOtpIs400() {
	suite.mockAuth.On("ResetPassword", mock.Anything, "user@example.com", "123456", "brand-new-password").
		Return(apperrors.ErrInvalidOrExpiredOtp).Once()

	w := suite.postJSON("/api/v1/auth/reset-password", dto.ResetPasswordRequest{
		Email:       "user@example.com",
		Otp:         "123456",
		NewPassword: "brand-new-password",
	}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
