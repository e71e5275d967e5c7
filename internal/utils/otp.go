package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
)

// OtpLength is the number of digits in a password-reset OTP. The boundary
// enforces the matching ^\d{6}$ shape on input.
const OtpLength = 6

var otpMaxExclusive = big.NewInt(1_000_000) // 10^OtpLength

// OtpProtector binds a user id and OTP digits through a keyed hash so raw
// OTPs are never stored. The pepper is a server-side secret independent of
// per-record salts.
type OtpProtector struct {
	pepper []byte
}

// NewOtpProtector creates a protector keyed with the dedicated pepper,
// falling back to the JWT signing secret when no pepper is configured.
// It fails when neither is set: silently hashing with an empty key would
// make every stored OTP hash forgeable.
func NewOtpProtector(pepper, jwtSecret string) (*OtpProtector, error) {
	key := pepper
	if key == "" {
		key = jwtSecret
	}
	if key == "" {
		return nil, errors.New("password reset pepper is required: configure PASSWORD_RESET_PEPPER or JWT_SECRET")
	}
	return &OtpProtector{pepper: []byte(key)}, nil
}

// HashOtp returns base64(HMAC-SHA256(pepper, "{userID}:{otp}")). It is
// deterministic so lookups only need the stored digest.
func (p *OtpProtector) HashOtp(userID int64, otp string) string {
	mac := hmac.New(sha256.New, p.pepper)
	fmt.Fprintf(mac, "%d:%s", userID, otp)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// GenerateOtp returns a uniformly random 6-digit numeric code, zero-padded.
func GenerateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, otpMaxExclusive)
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%0*d", OtpLength, n.Int64()), nil
}
