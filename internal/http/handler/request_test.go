package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bindTarget struct {
	Name string `json:"name"`
}

func bindJSONBody(t *testing.T, contentType, body string) (*bindTarget, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var target bindTarget
	err := bindStrictJSON(c, &target)
	return &target, err
}

func TestBindStrictJSON(t *testing.T) {
	target, err := bindJSONBody(t, contentTypeJSON, `{"name":"swordfish"}`)

	require.NoError(t, err)
	assert.Equal(t, "swordfish", target.Name)
}

func TestBindStrictJSONAcceptsCharsetParameter(t *testing.T) {
	target, err := bindJSONBody(t, "application/json; charset=utf-8", `{"name":"swordfish"}`)

	require.NoError(t, err)
	assert.Equal(t, "swordfish", target.Name)
}

func TestBindStrictJSONRejectsWrongContentType(t *testing.T) {
	_, err := bindJSONBody(t, echo.MIMETextPlain, `{"name":"swordfish"}`)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnsupportedMediaType, httpErr.Code)
}

func TestBindStrictJSONRejectsMissingContentType(t *testing.T) {
	_, err := bindJSONBody(t, "", `{"name":"swordfish"}`)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnsupportedMediaType, httpErr.Code)
}

func TestBindStrictJSONRejectsUnknownField(t *testing.T) {
	_, err := bindJSONBody(t, contentTypeJSON, `{"name":"a","extra":true}`)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestBindStrictJSONRejectsTrailingData(t *testing.T) {
	for _, body := range []string{
		`{"name":"a"}{"name":"b"}`,
		`{"name":"a"} garbage`,
	} {
		_, err := bindJSONBody(t, contentTypeJSON, body)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr, body)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code, body)
	}
}

func TestBindStrictJSONRejectsMalformedBody(t *testing.T) {
	_, err := bindJSONBody(t, contentTypeJSON, `{"name":`)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
