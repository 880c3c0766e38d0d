package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "moviedb/internal/errors"
	"moviedb/internal/logging"
)

// ErrorHandler renders every error returned by a handler or middleware as an
// ErrorResponse. Internal causes are only exposed when exposeDetails is set.
func ErrorHandler(exposeDetails bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		httpErr := toHTTPError(err, exposeDetails)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			logging.Ctx(c.Request().Context()).Error().Err(err).
				Str("path", c.Path()).
				Msg("request failed")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(httpErr.StatusCode)
		} else {
			writeErr = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		if writeErr != nil {
			logging.Ctx(c.Request().Context()).Warn().Err(writeErr).Msg("write error response")
		}
	}
}

func toHTTPError(err error, exposeDetails bool) *apperrors.HTTPError {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) && apperrors.KindOf(err) == apperrors.KindInternal {
		message := http.StatusText(echoErr.Code)
		switch m := echoErr.Message.(type) {
		case string:
			message = m
		case apperrors.ErrorResponse:
			return apperrors.NewHTTPError(echoErr.Code, m.Error, m.Code)
		case nil:
		default:
			message = fmt.Sprint(m)
		}
		return apperrors.NewHTTPError(echoErr.Code, message, codeForStatus(echoErr.Code))
	}
	return apperrors.MapErrorToHTTP(err, exposeDetails)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return apperrors.KindBadRequest.String()
	case http.StatusUnauthorized:
		return apperrors.KindInvalidToken.String()
	case http.StatusForbidden:
		return apperrors.KindForbidden.String()
	case http.StatusNotFound:
		return apperrors.KindNotFound.String()
	case http.StatusConflict:
		return apperrors.KindConflict.String()
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case http.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	}
	if status >= http.StatusInternalServerError {
		return apperrors.KindInternal.String()
	}
	return http.StatusText(status)
}
