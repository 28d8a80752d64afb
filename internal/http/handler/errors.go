package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "content-gate/pkg/errors"
)

// MapToPublicError maps internal errors to public-facing HTTP status codes and messages
// This prevents information disclosure by providing consistent, generic error messages
func MapToPublicError(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidCredentials
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, "access denied"
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, "resource conflict"
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrBadRequest), errors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, apperrors.ErrRevoked):
		return http.StatusUnauthorized, "credentials revoked"
	case errors.Is(err, apperrors.ErrExpired):
		return http.StatusUnauthorized, "credentials expired"
	default:
		// Never expose internal errors to clients
		return http.StatusInternalServerError, "internal server error"
	}
}

// RespondWithMappedError responds with a mapped error, preventing information disclosure
func RespondWithMappedError(c echo.Context, err error) error {
	status, msg := MapToPublicError(err)
	return respondError(c, status, msg)
}
