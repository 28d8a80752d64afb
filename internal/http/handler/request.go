package handler

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	contentTypeJSON = echo.MIMEApplicationJSON

	// maxBindBytes matches the server-wide body limit.
	maxBindBytes int64 = 1 << 20
)

// bindStrictJSON decodes a request body into dst and rejects anything the
// target struct does not declare. Gate and admin payloads carry credentials;
// a lenient parser that drops unknown fields would turn a typo like
// "passwrod" into an empty password instead of an error.
func bindStrictJSON(c echo.Context, dst any) error {
	mediaType, _, err := mime.ParseMediaType(c.Request().Header.Get(echo.HeaderContentType))
	if err != nil || mediaType != contentTypeJSON {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, msgContentTypeJSONRequired)
	}

	decoder := json.NewDecoder(io.LimitReader(c.Request().Body, maxBindBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}

	// The body must be exactly one JSON value; any token after it is
	// trailing garbage.
	if _, err := decoder.Token(); err != io.EOF {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}

	return nil
}
