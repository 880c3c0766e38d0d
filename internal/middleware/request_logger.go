package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"moviedb/internal/logging"
	"moviedb/internal/metrics"
)

// RequestID tags each request with an id, echoed in X-Request-ID and carried
// on the request context for logging.
func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
		RequestIDHandler: func(c echo.Context, id string) {
			req := c.Request()
			c.SetRequest(req.WithContext(logging.ContextWithRequestID(req.Context(), id)))
		},
	})
}

// RequestLogger writes one structured line per request and records request
// metrics.
func RequestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogRoutePath: true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			metrics.RecordAPIRequest(v.Method, v.RoutePath, v.Status, v.Latency)

			logger := logging.Ctx(c.Request().Context())
			var event *zerolog.Event
			if v.Error != nil {
				event = logger.Warn().Err(v.Error)
			} else {
				event = logger.Info()
			}
			if userID, ok := UserIDFromContext(c); ok {
				event = event.Uint("user_id", userID)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency.Round(time.Microsecond)).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
