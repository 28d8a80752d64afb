package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"content-gate/internal/domain/content"
)

// AdminContentHandler is the editor-facing CRUD surface. It sits behind JWT
// auth and never redacts; editors see entries as stored, secret included.
type AdminContentHandler struct {
	writer ContentWriter
	getter ContentGetter
}

func NewAdminContentHandler(writer ContentWriter, getter ContentGetter) *AdminContentHandler {
	return &AdminContentHandler{
		writer: writer,
		getter: getter,
	}
}

type CreateContentRequest struct {
	Type        string               `json:"type"`
	Slug        string               `json:"slug"`
	Path        string               `json:"path,omitempty"`
	Title       string               `json:"title"`
	Rendered    string               `json:"rendered,omitempty"`
	Excerpt     string               `json:"excerpt,omitempty"`
	Secret      string               `json:"secret,omitempty"`
	Meta        map[string]string    `json:"meta,omitempty"`
	Fields      map[string]any       `json:"fields,omitempty"`
	Attachments []content.Attachment `json:"attachments,omitempty"`
}

type UpdateContentRequest struct {
	Title       *string              `json:"title,omitempty"`
	Rendered    *string              `json:"rendered,omitempty"`
	Excerpt     *string              `json:"excerpt,omitempty"`
	Secret      *string              `json:"secret,omitempty"`
	Meta        map[string]string    `json:"meta,omitempty"`
	Fields      map[string]any       `json:"fields,omitempty"`
	Attachments []content.Attachment `json:"attachments,omitempty"`
}

type ContentResponse struct {
	ID          int64                `json:"id"`
	Type        string               `json:"type"`
	Slug        string               `json:"slug"`
	Path        string               `json:"path,omitempty"`
	Title       string               `json:"title"`
	Rendered    string               `json:"rendered"`
	Excerpt     string               `json:"excerpt"`
	Gated       bool                 `json:"gated"`
	Meta        map[string]string    `json:"meta,omitempty"`
	Fields      map[string]any       `json:"fields,omitempty"`
	Attachments []content.Attachment `json:"attachments,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func (h *AdminContentHandler) Create(c echo.Context) error {
	var req CreateContentRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Type = strings.TrimSpace(req.Type)
	req.Slug = strings.TrimSpace(req.Slug)
	req.Title = strings.TrimSpace(req.Title)
	if req.Type == "" {
		return respondError(c, http.StatusBadRequest, msgTypeRequired)
	}
	if req.Slug == "" {
		return respondError(c, http.StatusBadRequest, msgSlugRequired)
	}
	if req.Title == "" {
		return respondError(c, http.StatusBadRequest, msgTitleRequired)
	}

	entry, err := h.writer.Create(c.Request().Context(), content.CreateContentInput{
		Type:        req.Type,
		Slug:        req.Slug,
		Path:        req.Path,
		Title:       req.Title,
		Rendered:    req.Rendered,
		Excerpt:     req.Excerpt,
		Secret:      req.Secret,
		Meta:        req.Meta,
		Fields:      req.Fields,
		Attachments: req.Attachments,
	})
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusCreated, toContentResponse(entry))
}

func (h *AdminContentHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param(paramID), 10, 64)
	if err != nil || id <= 0 {
		return respondError(c, http.StatusBadRequest, msgInvalidContentID)
	}

	entry, err := h.getter.GetByID(c.Request().Context(), id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, toContentResponse(entry))
}

func (h *AdminContentHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param(paramID), 10, 64)
	if err != nil || id <= 0 {
		return respondError(c, http.StatusBadRequest, msgInvalidContentID)
	}

	var req UpdateContentRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	entry, err := h.writer.Update(c.Request().Context(), id, content.UpdateContentInput{
		Title:       req.Title,
		Rendered:    req.Rendered,
		Excerpt:     req.Excerpt,
		Secret:      req.Secret,
		Meta:        req.Meta,
		Fields:      req.Fields,
		Attachments: req.Attachments,
	})
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, toContentResponse(entry))
}

func (h *AdminContentHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param(paramID), 10, 64)
	if err != nil || id <= 0 {
		return respondError(c, http.StatusBadRequest, msgInvalidContentID)
	}

	if err := h.writer.Delete(c.Request().Context(), id); err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func toContentResponse(entry *content.Content) ContentResponse {
	return ContentResponse{
		ID:          entry.ID,
		Type:        entry.Type,
		Slug:        entry.Slug,
		Path:        entry.Path,
		Title:       entry.Title,
		Rendered:    entry.Rendered,
		Excerpt:     entry.Excerpt,
		Gated:       entry.IsGated(),
		Meta:        entry.Meta,
		Fields:      entry.Fields,
		Attachments: entry.Attachments,
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
	}
}
