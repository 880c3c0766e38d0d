package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"moviedb/internal/auth"
	"moviedb/internal/model"
)

// Echo context keys.
const (
	claimsKey    = "session_claims"
	userIDKey    = "user_id"
	accountKey   = "account"
	rawTokenKey  = "session_raw_token"
	verifyErrKey = "session_verify_error"
)

type ctxKey string

const userIDCtxKey ctxKey = "user_id"

// SetSession attaches verified claims and their user id to the echo and
// request contexts.
func SetSession(c echo.Context, claims *auth.Claims) {
	c.Set(claimsKey, claims)
	c.Set(userIDKey, claims.User.ID)
	req := c.Request()
	c.SetRequest(req.WithContext(context.WithValue(req.Context(), userIDCtxKey, claims.User.ID)))
}

// SetAccount attaches a hydrated account.
func SetAccount(c echo.Context, account *model.User) {
	c.Set(accountKey, account)
}

// UserIDFromContext returns the id attached by the session guard.
func UserIDFromContext(c echo.Context) (uint, bool) {
	id, ok := c.Get(userIDKey).(uint)
	return id, ok && id != 0
}

// UserIDFromRequestContext returns the id the session guard put on the
// request context.
func UserIDFromRequestContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDCtxKey).(uint)
	return id, ok && id != 0
}

// ClaimsFromContext returns the verified session claims.
func ClaimsFromContext(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*auth.Claims)
	return claims, ok
}

// AccountFromContext returns the account hydrated by LoadAccount.
func AccountFromContext(c echo.Context) (*model.User, bool) {
	account, ok := c.Get(accountKey).(*model.User)
	return account, ok && account != nil
}
