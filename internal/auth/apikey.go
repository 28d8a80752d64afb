package auth

import (
	"context"

	"content-gate/internal/domain/apikey"
	apperrors "content-gate/pkg/errors"
)

// APIKeyRepository provides lookup of API keys by their Argon2id hash.
type APIKeyRepository interface {
	GetByHash(ctx context.Context, hash string) (*apikey.APIKey, error)
}

type APIKeyService struct {
	repo APIKeyRepository
	salt []byte
}

func NewAPIKeyService(repo APIKeyRepository, salt []byte) *APIKeyService {
	return &APIKeyService{
		repo: repo,
		salt: salt,
	}
}

func (s *APIKeyService) ValidatePermissions(key *apikey.APIKey, required apikey.Permission) error {
	if !key.IsActive() {
		if key.RevokedAt != nil {
			return apperrors.Revoked(msgAPIKeyRevoked)
		}
		return apperrors.Expired(msgAPIKeyExpired)
	}

	if !key.HasPermission(required) {
		return apperrors.Forbidden(msgAPIKeyPermissionDenied)
	}

	return nil
}

// Hash hashes a raw key string with the service's configured salt.
func (s *APIKeyService) Hash(key string) string {
	return HashAPIKey(key, s.salt)
}
