package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	passwordSaltSize = 16 // 128 bits
	passwordKeySize  = 32 // 256 bits

	// DefaultHashIterations is the PBKDF2 work factor used when the
	// configuration does not override it.
	DefaultHashIterations = 600_000
)

// HashPassword derives a PBKDF2-SHA256 key from the password with a fresh
// random salt and returns base64(salt || key).
func HashPassword(password string, iterations int) (string, error) {
	if iterations <= 0 {
		iterations = DefaultHashIterations
	}
	salt := make([]byte, passwordSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate password salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, passwordKeySize, sha256.New)

	record := make([]byte, 0, passwordSaltSize+passwordKeySize)
	record = append(record, salt...)
	record = append(record, key...)
	return base64.StdEncoding.EncodeToString(record), nil
}

// CheckPasswordHash re-derives the key with the stored salt and compares it
// in constant time. A malformed stored record fails closed (returns false).
func CheckPasswordHash(password, hashRecord string, iterations int) bool {
	if iterations <= 0 {
		iterations = DefaultHashIterations
	}
	record, err := base64.StdEncoding.DecodeString(hashRecord)
	if err != nil || len(record) != passwordSaltSize+passwordKeySize {
		return false
	}

	salt := record[:passwordSaltSize]
	key := pbkdf2.Key([]byte(password), salt, iterations, passwordKeySize, sha256.New)

	return subtle.ConstantTimeCompare(record[passwordSaltSize:], key) == 1
}
