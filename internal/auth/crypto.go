package auth

import (
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

// Argon2 parameters for API key hashing
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
)

// Pre-computed dummy hash for constant-time operations on failed lookups
const dummyAPIKeyHash = "0000000000000000000000000000000000000000000000000000000000000000"

// DummyAPIKeyHash returns a dummy hash for constant-time operations
func DummyAPIKeyHash() string {
	return dummyAPIKeyHash
}

// ConstantTimeCompareHashes compares two hex-encoded hash strings in constant time.
// This prevents timing attacks that could leak information about valid hashes.
func ConstantTimeCompareHashes(a, b string) bool {
	aBytes := []byte(a)
	bBytes := []byte(b)

	// If lengths differ, still do comparison to maintain constant time
	if len(aBytes) != len(bBytes) {
		if len(aBytes) < len(bBytes) {
			aBytes = make([]byte, len(bBytes))
		} else {
			bBytes = make([]byte, len(aBytes))
		}
	}

	return subtle.ConstantTimeCompare(aBytes, bBytes) == 1
}

// HashAPIKey hashes an API key using Argon2id with the configured salt.
func HashAPIKey(key string, salt []byte) string {
	hash := argon2.IDKey([]byte(key), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	return hex.EncodeToString(hash)
}
