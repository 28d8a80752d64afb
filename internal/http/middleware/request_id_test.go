package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRequestID(t *testing.T, inbound string) (string, string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if inbound != "" {
		req.Header.Set(RequestIDHeader, inbound)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var fromContext string
	handler := RequestID()(func(c echo.Context) error {
		fromContext = GetRequestID(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	return fromContext, rec.Header().Get(RequestIDHeader)
}

func TestRequestIDGeneratedWhenMissing(t *testing.T) {
	fromContext, echoed := runRequestID(t, "")

	assert.Equal(t, fromContext, echoed)
	_, err := uuid.Parse(echoed)
	assert.NoError(t, err)
}

func TestRequestIDKeepsWellFormedID(t *testing.T) {
	inbound := uuid.New().String()

	fromContext, echoed := runRequestID(t, inbound)

	assert.Equal(t, inbound, fromContext)
	assert.Equal(t, inbound, echoed)
}

func TestRequestIDReplacesMalformedID(t *testing.T) {
	inbound := "not-a-uuid\r\ninjected: header"

	fromContext, echoed := runRequestID(t, inbound)

	assert.NotEqual(t, inbound, fromContext)
	assert.Equal(t, fromContext, echoed)
	_, err := uuid.Parse(echoed)
	assert.NoError(t, err)
}

func TestGetRequestIDWithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Equal(t, "", GetRequestID(c))
}
