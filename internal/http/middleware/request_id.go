package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// RequestIDHeader carries the correlation id on requests and responses.
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey is where the id is stored on the echo context.
	RequestIDContextKey = "request_id"
)

// RequestID tags every request with a correlation id. A caller-supplied id
// is kept only when it is a well-formed UUID, since the value is echoed back
// in response headers and written to logs; anything else is replaced.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.New().String()
			}

			c.Set(RequestIDContextKey, requestID)
			c.Response().Header().Set(RequestIDHeader, requestID)

			return next(c)
		}
	}
}

// GetRequestID returns the correlation id set by RequestID, or an empty
// string when the middleware did not run.
func GetRequestID(c echo.Context) string {
	if requestID, ok := c.Get(RequestIDContextKey).(string); ok {
		return requestID
	}
	return ""
}
