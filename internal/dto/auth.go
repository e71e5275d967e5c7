package dto

import (
	"time"

	"github.com/basehq/base_backend/internal/core/domain"
)

// --- Auth request DTOs ---

// RegisterRequest defines the data for creating a new account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
}

// LoginRequest defines the data for a credential login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the opaque refresh token to rotate.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest carries the refresh token to revoke.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ForgotPasswordRequest starts the password-reset OTP flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest redeems an OTP for a new password.
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Otp         string `json:"otp" binding:"required,otp"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// --- Auth response DTOs ---

// UserResponse defines the user data returned by the API. Internal
// numeric ids never appear here; UserID is the public UUID.
type UserResponse struct {
	UserID    string    `json:"userID"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	AvatarURL string    `json:"avatarURL,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts domain.User to DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.PublicID,
		Email:     u.Email,
		Name:      u.Name,
		IsActive:  u.IsActive,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

// TokenPairResponse carries a freshly minted access/refresh token pair.
type TokenPairResponse struct {
	AccessToken          string    `json:"accessToken"`
	AccessTokenExpiresAt time.Time `json:"accessTokenExpiresAt"`
	RefreshToken         string    `json:"refreshToken"`
}

// ToTokenPairResponse converts domain.TokenPair to DTO.
func ToTokenPairResponse(p *domain.TokenPair) TokenPairResponse {
	return TokenPairResponse{
		AccessToken:          p.AccessToken,
		AccessTokenExpiresAt: p.AccessTokenExpiresAt,
		RefreshToken:         p.RefreshToken,
	}
}

// LoginResponse combines the user profile with the token pair.
type LoginResponse struct {
	User   UserResponse      `json:"user"`
	Tokens TokenPairResponse `json:"tokens"`
}
