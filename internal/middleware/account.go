package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	apperrors "moviedb/internal/errors"
	"moviedb/internal/model"
)

// AccountFinder loads a user by id.
type AccountFinder interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

var errRequiresStaff = apperrors.Forbidden("access denied: moderator or admin role required")
var errRequiresAdmin = apperrors.Forbidden("access denied: admin role required")

// LoadAccount hydrates the full account of the session user. Missing and
// inactive accounts are rejected with ErrAccountInactive.
func LoadAccount(users AccountFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := UserIDFromContext(c)
			if !ok {
				return apperrors.ErrAccountInactive
			}
			account, err := users.FindByID(c.Request().Context(), id)
			if err != nil {
				if apperrors.Is(err, apperrors.KindNotFound) {
					return apperrors.ErrAccountInactive
				}
				return err
			}
			if !account.IsActive {
				return apperrors.ErrAccountInactive
			}
			SetAccount(c, account)
			return next(c)
		}
	}
}

// RequireModeratorOrAdmin admits moderators and admins.
func RequireModeratorOrAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return requireRole(errRequiresStaff, model.RoleModerator, model.RoleAdmin)(next)
}

// RequireAdmin admits admins only.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return requireRole(errRequiresAdmin, model.RoleAdmin)(next)
}

func requireRole(denied error, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			account, ok := AccountFromContext(c)
			if !ok || !account.IsActive {
				return apperrors.ErrAccountInactive
			}
			for _, role := range roles {
				if account.Role == role {
					return next(c)
				}
			}
			return denied
		}
	}
}
