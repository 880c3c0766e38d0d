package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "plain error", err: errors.New("boom"), want: KindInternal},
		{name: "app error", err: Conflict("user is already banned"), want: KindConflict},
		{name: "wrapped app error", err: fmt.Errorf("ban: %w", Forbidden("cannot ban yourself")), want: KindForbidden},
		{name: "nil", err: nil, want: KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expose      bool
		wantStatus  int
		wantCode    string
		wantMessage string
		wantDetails string
	}{
		{
			name:        "unauthenticated renders as 403",
			err:         Unauthenticated("authorization denied"),
			wantStatus:  http.StatusForbidden,
			wantCode:    "UNAUTHENTICATED",
			wantMessage: "authorization denied",
		},
		{
			name:        "invalid token renders as 401",
			err:         InvalidToken("token is not valid"),
			wantStatus:  http.StatusUnauthorized,
			wantCode:    "INVALID_TOKEN",
			wantMessage: "token is not valid",
		},
		{
			name:        "not found",
			err:         NotFound("user not found"),
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "user not found",
		},
		{
			name:        "internal hides details in production",
			err:         errors.New("dial tcp: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "internal server error",
		},
		{
			name:        "internal exposes details in development",
			err:         errors.New("dial tcp: connection refused"),
			expose:      true,
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "internal server error",
			wantDetails: "dial tcp: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err, tt.expose)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			resp := httpErr.ToErrorResponse()
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantMessage, resp.Error)
			assert.Equal(t, tt.wantDetails, resp.Details)
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("duplicate entry")
	err := Wrap(KindConflict, "user is already banned", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "user is already banned: duplicate entry", err.Error())
	assert.True(t, Is(err, KindConflict))
	assert.False(t, Is(nil, KindConflict))
}
