package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicateEmail indicates that an account already exists for the email.
// Registration is the only path that surfaces it; the check is global and
// deliberately ignores tenant scoping since signup creates a new tenant.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrDuplicateName indicates that a company name is already taken
// (case-insensitive).
var ErrDuplicateName = errors.New("company name already exists")

// ErrInvalidCredentials is returned for both unknown email and wrong
// password so callers cannot distinguish the two cases.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidOrExpiredToken indicates a refresh token that is unknown,
// revoked, or past its expiry.
var ErrInvalidOrExpiredToken = errors.New("invalid or expired refresh token")

// ErrInvalidOrExpiredOtp indicates a password-reset OTP that does not match
// any active reset token for the user.
var ErrInvalidOrExpiredOtp = errors.New("invalid or expired OTP")

// ErrCrossTenantAccess indicates an attempt to mutate an entity owned by a
// different company than the caller's resolved tenant.
var ErrCrossTenantAccess = errors.New("cross-tenant access denied")

// ErrForbidden indicates the caller lacks the role required for the action.
var ErrForbidden = errors.New("forbidden")

// ErrUserNotFound indicates an invite addressed to an email with no account.
var ErrUserNotFound = errors.New("user not found")

// ErrAlreadyInCompany indicates an invite for a user who already belongs to
// a company (single company per user).
var ErrAlreadyInCompany = errors.New("user is already a member of a company")

// AppError wraps a lower-level failure with an internal status code and a
// message suitable for logging.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
