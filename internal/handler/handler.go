package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "moviedb/internal/errors"
	"moviedb/internal/middleware"
	"moviedb/internal/service"
)

// MessageResponse is returned by endpoints whose only result is a message.
type MessageResponse struct {
	Message string `json:"message"`
}

// bind decodes the request body and runs the echo validator on it.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return apperrors.BadRequest(err.Error())
	}
	return nil
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.BadRequest("invalid " + name)
	}
	return uint(id), nil
}

// actor returns the hydrated account of the caller.
func actor(c echo.Context) (service.Actor, error) {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		return service.Actor{}, apperrors.ErrAccountInactive
	}
	return service.Actor{ID: account.ID, Role: account.Role}, nil
}

func message(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: msg})
}
