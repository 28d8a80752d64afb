package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "content-gate/pkg/errors"
	"content-gate/pkg/password"
)

// Pre-computed bcrypt hash (cost 12) used to equalize timing on failed lookups.
// The actual plaintext is irrelevant — this just ensures constant-time response.
const dummyBcryptHash = "$2a$12$dWR5CQpS4zNHLavLSIr4o.P6QDQEUJKv7mJ7WekUHHqyRSRMJzH0S"

// AuthHandler signs editors in. Accounts are provisioned by the seed script;
// there is no signup endpoint.
type AuthHandler struct {
	users      UserGetter
	jwtService TokenGenerator
}

func NewAuthHandler(users UserGetter, jwtService TokenGenerator) *AuthHandler {
	return &AuthHandler{
		users:      users,
		jwtService: jwtService,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	u, err := h.users.GetByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Burn a bcrypt comparison so a missing account takes as long
			// as a wrong password.
			password.Verify(req.Password, dummyBcryptHash)
			return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
		}
		return RespondWithMappedError(c, err)
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	token, err := h.jwtService.Generate(u.ID, u.Email)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgGenerateTokenFail)
	}

	return c.JSON(http.StatusOK, LoginResponse{Token: token})
}
