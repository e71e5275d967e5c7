package utils

import (
	"crypto/sha256"
	"encoding/base64"
)

// HashRefreshToken generates a SHA256 digest of an opaque refresh token for
// storage. The token itself is already high-entropy random, so no salt is
// needed; the digest only has to make a stolen database useless for replay.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.StdEncoding.EncodeToString(sum[:])
}
