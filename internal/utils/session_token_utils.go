package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashSessionToken generates a SHA256 hash of a session token. Only the
// hash is persisted; the raw token stays in the client cookie.
func HashSessionToken(token string) string {
	hasher := sha256.New()
	hasher.Write([]byte(token))
	return hex.EncodeToString(hasher.Sum(nil))
}

// CompareSessionTokenHash compares a raw session token with its stored
// SHA256 hash.
func CompareSessionTokenHash(token string, storedHash string) bool {
	return HashSessionToken(token) == storedHash
}
