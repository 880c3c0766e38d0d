package middleware

import (
	"errors"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"moviedb/internal/auth"
	apperrors "moviedb/internal/errors"
	"moviedb/internal/metrics"
)

// Bearer prefix first, then the bare header value.
const tokenLookup = "header:Authorization:Bearer ,header:Authorization"

const bearerScheme = "Bearer"

var errEmptyToken = errors.New("empty session token")

// Guard rejection reasons used as metric labels.
const (
	reasonMissing = "missing"
	reasonExpired = "expired"
	reasonRevoked = "revoked"
	reasonInvalid = "invalid"
)

// TokenVerifier verifies session tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// SessionGuard authenticates protected routes. A missing token is
// Unauthenticated; any other failure is InvalidToken and is handed to the
// Deactivator, whose outcome never reaches the response.
type SessionGuard struct {
	tokens      TokenVerifier
	revocation  auth.RevocationStore
	deactivator *auth.Deactivator
}

// NewSessionGuard creates a session guard. deactivator may be nil.
func NewSessionGuard(tokens TokenVerifier, revocation auth.RevocationStore, deactivator *auth.Deactivator) *SessionGuard {
	return &SessionGuard{
		tokens:      tokens,
		revocation:  revocation,
		deactivator: deactivator,
	}
}

// Middleware returns the echo middleware.
func (g *SessionGuard) Middleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup:    tokenLookup,
		ContextKey:     claimsKey,
		ParseTokenFunc: g.parseToken,
		SuccessHandler: g.onSuccess,
		ErrorHandler:   g.onError,
	})
}

func (g *SessionGuard) parseToken(c echo.Context, raw string) (any, error) {
	// A bare scheme with no token counts as a missing token.
	if isEmptyToken(raw) {
		return nil, errEmptyToken
	}
	claims, err := g.tokens.Verify(raw)
	if err == nil && g.revocation != nil && g.revocation.IsRevoked(c.Request().Context(), claims.ID) {
		err = auth.ErrTokenRevoked
	}
	if err != nil {
		// Every lookup source is tried in turn; the first extracted value is
		// the one that describes the request.
		if c.Get(verifyErrKey) == nil {
			c.Set(rawTokenKey, raw)
			c.Set(verifyErrKey, err)
		}
		return nil, err
	}
	return claims, nil
}

func (g *SessionGuard) onSuccess(c echo.Context) {
	if claims, ok := c.Get(claimsKey).(*auth.Claims); ok {
		SetSession(c, claims)
	}
}

func (g *SessionGuard) onError(c echo.Context, _ error) error {
	verifyErr, _ := c.Get(verifyErrKey).(error)
	if verifyErr == nil {
		metrics.GuardRejections.WithLabelValues(reasonMissing).Inc()
		return apperrors.Unauthenticated("authorization denied")
	}

	metrics.GuardRejections.WithLabelValues(rejectionReason(verifyErr)).Inc()
	raw, _ := c.Get(rawTokenKey).(string)
	g.deactivator.HandleRejected(c.Request().Context(), raw, verifyErr)
	return apperrors.InvalidToken("token is not valid")
}

func isEmptyToken(raw string) bool {
	v := strings.TrimSpace(raw)
	if len(v) >= len(bearerScheme) && strings.EqualFold(v[:len(bearerScheme)], bearerScheme) {
		v = strings.TrimSpace(v[len(bearerScheme):])
	}
	return v == ""
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenRevoked):
		return reasonRevoked
	case errors.Is(err, auth.ErrTokenExpired):
		return reasonExpired
	default:
		return reasonInvalid
	}
}
