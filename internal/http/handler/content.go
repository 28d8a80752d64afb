package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"content-gate/internal/domain/content"
	"content-gate/internal/gate"
)

// ContentHandler serves the public read API. Every response passes through
// the gate before leaving the process.
type ContentHandler struct {
	resolver   ContentResolver
	gate       *gate.Gate
	signer     AttachmentSigner
	cookieName string
	pageSize   int
}

func NewContentHandler(resolver ContentResolver, g *gate.Gate, signer AttachmentSigner, cookieName string, pageSize int) *ContentHandler {
	return &ContentHandler{
		resolver:   resolver,
		gate:       g,
		signer:     signer,
		cookieName: cookieName,
		pageSize:   pageSize,
	}
}

// Get handles GET /contents/:id.
func (h *ContentHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param(paramID), 10, 64)
	if err != nil || id <= 0 {
		return respondError(c, http.StatusBadRequest, msgInvalidContentID)
	}

	return h.serveOne(c, content.Locator{ID: id, Types: typesFromQuery(c)})
}

// Lookup handles GET /contents/lookup?path=...&slug=...&type=...
func (h *ContentHandler) Lookup(c echo.Context) error {
	loc := content.Locator{
		Path:  c.QueryParam(queryPath),
		Slug:  c.QueryParam(querySlug),
		Types: typesFromQuery(c),
	}
	if loc.Path == "" && loc.Slug == "" {
		return respondError(c, http.StatusBadRequest, msgLocatorRequired)
	}

	return h.serveOne(c, loc)
}

func (h *ContentHandler) serveOne(c echo.Context, loc content.Locator) error {
	entry, err := h.resolver.Resolve(c.Request().Context(), loc)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	password, token := h.credentials(c)
	decision := h.gate.Decide(entry, password, token)
	doc := h.gate.Redact(entry, decision, renderDocument(entry, h.signer))

	return c.JSON(http.StatusOK, doc)
}

// List handles GET /contents?type=...&page=...
func (h *ContentHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam(queryPage))
	if page < 1 {
		page = 1
	}

	filter := content.ListFilter{
		Types:  typesFromQuery(c),
		Limit:  h.pageSize,
		Offset: (page - 1) * h.pageSize,
	}

	entries, err := h.resolver.List(c.Request().Context(), filter)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	byID := make(map[int64]*content.Content, len(entries))
	docs := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		byID[entry.ID] = entry
		docs = append(docs, renderDocument(entry, h.signer))
	}

	password, token := h.credentials(c)
	redacted := h.gate.RedactList(docs, func(id int64) *content.Content {
		return byID[id]
	}, password, token)

	return c.JSON(http.StatusOK, redacted)
}

// credentials pulls the caller's gate credentials off the request: a
// plaintext password from the query string and a signed token from the
// access cookie.
func (h *ContentHandler) credentials(c echo.Context) (password, token string) {
	password = c.QueryParam(queryPassword)
	if cookie, err := c.Cookie(h.cookieName); err == nil {
		token = cookie.Value
	}
	return password, token
}

func typesFromQuery(c echo.Context) []string {
	raw := c.QueryParam(queryType)
	if raw == "" {
		return nil
	}

	var types []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return types
}
