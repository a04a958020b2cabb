package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-enrollment/internal/apperr"
)

// echoStatusKeys maps framework errors to messages.
var echoStatusKeys = map[int]string{
	http.StatusBadRequest:            "request.invalid_body",
	http.StatusUnauthorized:          "auth.required",
	http.StatusForbidden:             "auth.forbidden",
	http.StatusNotFound:              "error.route_not_found",
	http.StatusMethodNotAllowed:      "error.method_not_allowed",
	http.StatusRequestEntityTooLarge: "error.too_large",
	http.StatusTooManyRequests:       "error.rate_limited",
}

// ErrorHandler renders every error as {"error": "<localised message>"}.
// Causes of internal failures are logged with the request id and never
// sent to the client.
func ErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		key := "error.internal"
		var args []any

		var ae *apperr.Error
		var he *echo.HTTPError
		switch {
		case errors.As(err, &ae):
			status, key, args = ae.Status(), ae.Key, ae.Args
		case errors.As(err, &he):
			status = he.Code
			if k, ok := echoStatusKeys[he.Code]; ok {
				key = k
			}
		}
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", status,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"err", err)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, echo.Map{"error": message(c, key, args...)})
		}
		if werr != nil {
			log.Error("write error response", "err", werr)
		}
	}
}
