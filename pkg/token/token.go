package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const (
	apiKeyPrefix              = "ck_"
	apiKeyByteLength          = 20
	errGenerateRandomBytesFmt = "failed to generate random bytes: %w"
)

func GenerateAPIKey() (string, error) {
	bytes := make([]byte, apiKeyByteLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf(errGenerateRandomBytesFmt, err)
	}
	return apiKeyPrefix + hex.EncodeToString(bytes), nil
}

func ExtractPrefix(token string, length int) string {
	if len(token) < length {
		return token
	}
	return token[:length]
}
