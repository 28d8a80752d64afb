package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-gate/internal/auth"
	"content-gate/internal/domain/apikey"
)

type fakeAPIKeyStore struct {
	created *apikey.CreateAPIKeyInput
	revoked *apikey.RevokeAPIKeyInput
	keys    []*apikey.APIKey
}

func (f *fakeAPIKeyStore) Create(_ context.Context, input apikey.CreateAPIKeyInput) (*apikey.APIKey, error) {
	f.created = &input
	return &apikey.APIKey{
		ID:          uuid.New(),
		Name:        input.Name,
		KeyHash:     input.KeyHash,
		KeyPrefix:   input.KeyPrefix,
		Permissions: input.Permissions,
		ExpiresAt:   input.ExpiresAt,
		CreatedBy:   input.CreatedBy,
	}, nil
}

func (f *fakeAPIKeyStore) List(_ context.Context, _ string) ([]*apikey.APIKey, error) {
	return f.keys, nil
}

func (f *fakeAPIKeyStore) Revoke(_ context.Context, input apikey.RevokeAPIKeyInput) error {
	f.revoked = &input
	return nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(key string) string { return "hashed:" + key }

func apiKeyContext(t *testing.T, method, target, body string, userID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, contentTypeJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(auth.ContextKeyUserID, userID)
	return c, rec
}

func TestAPIKeyCreate(t *testing.T) {
	store := &fakeAPIKeyStore{}
	h := NewAPIKeyHandler(store, fakeHasher{})
	userID := uuid.New()

	c, rec := apiKeyContext(t, http.MethodPost, "/api/api-keys",
		`{"name":"frontend","permissions":["read","READ","write"]}`, userID)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CreateAPIKeyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// The plaintext is returned once and only its hash is stored.
	assert.True(t, strings.HasPrefix(resp.Key, "ck_"))
	assert.Equal(t, "hashed:"+resp.Key, store.created.KeyHash)
	assert.Equal(t, resp.Key[:apiKeyPrefixLength], store.created.KeyPrefix)

	// Duplicate permissions collapse.
	assert.Equal(t, []apikey.Permission{apikey.PermissionRead, apikey.PermissionWrite}, store.created.Permissions)
	assert.Equal(t, userID, store.created.CreatedBy)
}

func TestAPIKeyCreateValidation(t *testing.T) {
	h := NewAPIKeyHandler(&fakeAPIKeyStore{}, fakeHasher{})
	userID := uuid.New()

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"name":"  ","permissions":["read"]}`},
		{"missing permissions", `{"name":"frontend","permissions":[]}`},
		{"unknown permission", `{"name":"frontend","permissions":["admin"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := apiKeyContext(t, http.MethodPost, "/api/api-keys", tt.body, userID)
			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAPIKeyRevoke(t *testing.T) {
	store := &fakeAPIKeyStore{}
	h := NewAPIKeyHandler(store, fakeHasher{})
	userID := uuid.New()
	keyID := uuid.New()

	c, rec := apiKeyContext(t, http.MethodDelete, "/api/api-keys/"+keyID.String(), "", userID)
	c.SetParamNames(paramID)
	c.SetParamValues(keyID.String())

	require.NoError(t, h.Revoke(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, store.revoked)
	assert.Equal(t, keyID, store.revoked.ID)
	assert.Equal(t, userID, store.revoked.RevokedBy)
}

func TestAPIKeyRevokeInvalidID(t *testing.T) {
	h := NewAPIKeyHandler(&fakeAPIKeyStore{}, fakeHasher{})

	c, rec := apiKeyContext(t, http.MethodDelete, "/api/api-keys/nope", "", uuid.New())
	c.SetParamNames(paramID)
	c.SetParamValues("nope")

	require.NoError(t, h.Revoke(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
