package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handlers respond through these helpers so every error body carries the
// same single-key envelope.

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyMessage: message})
}

// handleHTTPError flattens an *echo.HTTPError produced during binding into
// the standard envelope so bind failures look like every other handler error.
func handleHTTPError(c echo.Context, err error) error {
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		return respondError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}

	message, ok := httpErr.Message.(string)
	if !ok || message == "" {
		message = http.StatusText(httpErr.Code)
	}
	return respondError(c, httpErr.Code, message)
}
