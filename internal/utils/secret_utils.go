package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

// HashSecret generates a SHA256 hash of a secret (refresh token, reset token
// or one-time password). Only the hash is ever persisted; the plaintext goes to
// the user out of band.
func HashSecret(secret string) string {
	hasher := sha256.New()
	hasher.Write([]byte(secret))
	return hex.EncodeToString(hasher.Sum(nil))
}

// CompareSecretHash compares a plaintext secret with its stored SHA256 hash.
// The `secret` parameter here is the raw value, not a hash.
func CompareSecretHash(secret string, storedHash string) bool {
	return HashSecret(secret) == storedHash
}

// GenerateSecureRandomString generates a cryptographically secure random string
// of the specified byte length, then hex encodes it. For example,
// lengthInBytes=20 results in a 40-character hex string.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateOneTimePassword generates a uniformly random 6-digit numeric code in
// [100000, 999999].
func GenerateOneTimePassword() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate one-time password: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
