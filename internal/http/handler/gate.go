package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"content-gate/internal/domain/content"
	"content-gate/internal/gate"
)

// GateHandler accepts password submissions and issues access cookies.
type GateHandler struct {
	resolver   ContentResolver
	gate       *gate.Gate
	cookieName string
	cookiePath string
}

func NewGateHandler(resolver ContentResolver, g *gate.Gate, cookieName, cookiePath string) *GateHandler {
	return &GateHandler{
		resolver:   resolver,
		gate:       g,
		cookieName: cookieName,
		cookiePath: cookiePath,
	}
}

type UnlockRequest struct {
	ID       int64  `json:"id,omitempty"`
	Path     string `json:"path,omitempty"`
	Slug     string `json:"slug,omitempty"`
	Type     string `json:"type,omitempty"`
	Password string `json:"password"`
	TTL      int64  `json:"ttl,omitempty"`
}

type UnlockResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// Unlock handles POST /gate/unlock. A correct password sets the access
// cookie; a wrong one gets a 401 carrying no hint about the entry's secret.
func (h *GateHandler) Unlock(c echo.Context) error {
	var req UnlockRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	loc := content.Locator{ID: req.ID, Path: req.Path, Slug: req.Slug}
	if req.Type != "" {
		loc.Types = []string{req.Type}
	}
	if loc.Empty() {
		return respondError(c, http.StatusBadRequest, msgLocatorRequired)
	}

	entry, err := h.resolver.Resolve(c.Request().Context(), loc)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	decision, token, expiresAt, err := h.gate.Unlock(entry, req.Password, req.TTL)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	if !decision.Granted {
		return c.JSON(http.StatusUnauthorized, UnlockResponse{OK: false, Message: msgIncorrectPassword})
	}

	// An open entry grants without minting anything.
	if token != "" {
		c.SetCookie(&http.Cookie{
			Name:     h.cookieName,
			Value:    token,
			Path:     h.cookiePath,
			Expires:  expiresAt,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Secure:   isSecureRequest(c),
		})
	}

	return c.JSON(http.StatusOK, UnlockResponse{OK: true})
}

func isSecureRequest(c echo.Context) bool {
	if c.Request().TLS != nil {
		return true
	}
	return strings.EqualFold(c.Request().Header.Get(echo.HeaderXForwardedProto), "https")
}
