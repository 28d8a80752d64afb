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

	"content-gate/internal/domain/user"
	apperrors "content-gate/pkg/errors"
	"content-gate/pkg/password"
)

type fakeUserGetter struct {
	users map[string]*user.User
}

func (f *fakeUserGetter) GetByEmail(_ context.Context, email string) (*user.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("user not found")
}

type fakeTokenGenerator struct {
	token string
	err   error
}

func (f *fakeTokenGenerator) Generate(_ uuid.UUID, _ string) (string, error) {
	return f.token, f.err
}

func doLogin(t *testing.T, h *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, contentTypeJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Login(c))
	return rec
}

func TestLogin(t *testing.T) {
	hash, err := password.Hash("correct horse battery staple")
	require.NoError(t, err)

	editor := &user.User{
		ID:           uuid.New(),
		Email:        "editor@example.com",
		PasswordHash: hash,
	}
	users := &fakeUserGetter{users: map[string]*user.User{editor.Email: editor}}
	h := NewAuthHandler(users, &fakeTokenGenerator{token: "signed.jwt.token"})

	t.Run("success", func(t *testing.T) {
		rec := doLogin(t, h, `{"email":"Editor@Example.com","password":"correct horse battery staple"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "signed.jwt.token", resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doLogin(t, h, `{"email":"editor@example.com","password":"guess"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown account gets the same answer", func(t *testing.T) {
		rec := doLogin(t, h, `{"email":"nobody@example.com","password":"guess"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		known := doLogin(t, h, `{"email":"editor@example.com","password":"guess"}`)
		assert.Equal(t, known.Body.String(), rec.Body.String())
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		rec := doLogin(t, h, `{"email":"editor@example.com","password":"guess","remember":true}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
