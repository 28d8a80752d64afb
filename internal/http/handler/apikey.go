package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"content-gate/internal/auth"
	"content-gate/internal/domain/apikey"
	"content-gate/pkg/token"
)

const apiKeyPrefixLength = 8

// APIKeyService hashes plaintext keys for storage and lookup.
type APIKeyHasher interface {
	Hash(key string) string
}

type APIKeyHandler struct {
	apiKeys APIKeyStore
	hasher  APIKeyHasher
}

func NewAPIKeyHandler(apiKeys APIKeyStore, hasher APIKeyHasher) *APIKeyHandler {
	return &APIKeyHandler{
		apiKeys: apiKeys,
		hasher:  hasher,
	}
}

type CreateAPIKeyRequest struct {
	Name        string     `json:"name"`
	Permissions []string   `json:"permissions"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

type APIKeyResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	KeyPrefix   string     `json:"key_prefix"`
	Permissions []string   `json:"permissions"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty"`
}

type CreateAPIKeyResponse struct {
	APIKey APIKeyResponse `json:"api_key"`
	Key    string         `json:"key"`
}

// Create mints a key for a server-side front-end. The plaintext is returned
// exactly once; only its hash is stored.
func (h *APIKeyHandler) Create(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	var req CreateAPIKeyRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return respondError(c, http.StatusBadRequest, msgKeyNameRequired)
	}
	if len(req.Permissions) == 0 {
		return respondError(c, http.StatusBadRequest, msgPermissionsRequired)
	}

	seen := make(map[string]struct{}, len(req.Permissions))
	permissions := make([]apikey.Permission, 0, len(req.Permissions))
	for _, permission := range req.Permissions {
		permission = strings.ToLower(strings.TrimSpace(permission))
		if _, dup := seen[permission]; dup {
			continue
		}
		seen[permission] = struct{}{}
		perm := apikey.Permission(permission)
		if err := perm.Validate(); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		permissions = append(permissions, perm)
	}

	plainKey, err := token.GenerateAPIKey()
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgGenerateKeyFail)
	}

	keyRecord, err := h.apiKeys.Create(c.Request().Context(), apikey.CreateAPIKeyInput{
		Name:        req.Name,
		KeyHash:     h.hasher.Hash(plainKey),
		KeyPrefix:   token.ExtractPrefix(plainKey, apiKeyPrefixLength),
		Permissions: permissions,
		ExpiresAt:   req.ExpiresAt,
		CreatedBy:   userID,
	})
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusCreated, CreateAPIKeyResponse{
		APIKey: toAPIKeyResponse(keyRecord),
		Key:    plainKey,
	})
}

func (h *APIKeyHandler) List(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	keys, err := h.apiKeys.List(c.Request().Context(), userID.String())
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	out := make([]APIKeyResponse, 0, len(keys))
	for _, key := range keys {
		out = append(out, toAPIKeyResponse(key))
	}

	return c.JSON(http.StatusOK, out)
}

func (h *APIKeyHandler) Revoke(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	keyID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidKeyID)
	}

	if err := h.apiKeys.Revoke(c.Request().Context(), apikey.RevokeAPIKeyInput{
		ID:        keyID,
		RevokedBy: userID,
	}); err != nil {
		return RespondWithMappedError(c, err)
	}

	return respondMessage(c, http.StatusOK, msgAPIKeyRevoked)
}

func toAPIKeyResponse(key *apikey.APIKey) APIKeyResponse {
	permissions := make([]string, 0, len(key.Permissions))
	for _, p := range key.Permissions {
		permissions = append(permissions, string(p))
	}

	return APIKeyResponse{
		ID:          key.ID.String(),
		Name:        key.Name,
		KeyPrefix:   key.KeyPrefix,
		Permissions: permissions,
		ExpiresAt:   key.ExpiresAt,
		CreatedAt:   key.CreatedAt,
		RevokedAt:   key.RevokedAt,
		LastUsedAt:  key.LastUsedAt,
	}
}
