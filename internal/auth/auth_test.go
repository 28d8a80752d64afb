package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-gate/internal/domain/apikey"
	apperrors "content-gate/pkg/errors"
)

const testJWTSecret = "unit-test-jwt-secret-0123456789abcdef"

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService(testJWTSecret, time.Hour)
	userID := uuid.New()

	token, err := svc.Generate(userID, "editor@example.com")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "editor@example.com", claims.Email)
}

func TestJWTVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService(testJWTSecret, time.Hour).Generate(uuid.New(), "e@example.com")
	require.NoError(t, err)

	_, err = NewJWTService("a-completely-different-secret-value!", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestJWTVerifyRejectsExpired(t *testing.T) {
	svc := NewJWTService(testJWTSecret, -time.Minute)

	token, err := svc.Generate(uuid.New(), "e@example.com")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestJWTVerifyRejectsGarbage(t *testing.T) {
	svc := NewJWTService(testJWTSecret, time.Hour)

	for _, token := range []string{"", "not.a.jwt", "a.b"} {
		_, err := svc.Verify(token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestHashAPIKeyDeterministic(t *testing.T) {
	salt := []byte("api-key-salt")

	first := HashAPIKey("ck_abcdef", salt)
	second := HashAPIKey("ck_abcdef", salt)
	assert.Equal(t, first, second)

	assert.NotEqual(t, first, HashAPIKey("ck_abcdeg", salt))
	assert.NotEqual(t, first, HashAPIKey("ck_abcdef", []byte("other-salt")))
}

func TestConstantTimeCompareHashes(t *testing.T) {
	assert.True(t, ConstantTimeCompareHashes("abc", "abc"))
	assert.False(t, ConstantTimeCompareHashes("abc", "abd"))
	assert.False(t, ConstantTimeCompareHashes("abc", "abcd"))
	assert.False(t, ConstantTimeCompareHashes("", "abc"))
}

func TestValidatePermissions(t *testing.T) {
	svc := NewAPIKeyService(nil, []byte("salt"))
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	active := &apikey.APIKey{Permissions: []apikey.Permission{apikey.PermissionRead}}
	assert.NoError(t, svc.ValidatePermissions(active, apikey.PermissionRead))

	err := svc.ValidatePermissions(active, apikey.PermissionWrite)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	revoked := &apikey.APIKey{
		Permissions: []apikey.Permission{apikey.PermissionRead},
		RevokedAt:   &past,
	}
	assert.ErrorIs(t, svc.ValidatePermissions(revoked, apikey.PermissionRead), apperrors.ErrRevoked)

	expired := &apikey.APIKey{
		Permissions: []apikey.Permission{apikey.PermissionRead},
		ExpiresAt:   &past,
	}
	assert.ErrorIs(t, svc.ValidatePermissions(expired, apikey.PermissionRead), apperrors.ErrExpired)

	notYetExpired := &apikey.APIKey{
		Permissions: []apikey.Permission{apikey.PermissionRead},
		ExpiresAt:   &future,
	}
	assert.NoError(t, svc.ValidatePermissions(notYetExpired, apikey.PermissionRead))
}
