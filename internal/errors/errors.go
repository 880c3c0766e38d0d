package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error. Every failure that reaches the HTTP
// layer is reduced to one of these.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindInvalidToken
	KindInvalidCredentials
	KindForbidden
	KindBadRequest
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "UNAUTHENTICATED"
	case KindInvalidToken:
		return "INVALID_TOKEN"
	case KindInvalidCredentials:
		return "INVALID_CREDENTIALS"
	case KindForbidden:
		return "FORBIDDEN"
	case KindBadRequest:
		return "BAD_REQUEST"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}

// HTTPStatus returns the status code a Kind is rendered with.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindUnauthenticated, KindForbidden:
		return http.StatusForbidden
	case KindInvalidToken, KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// AppError carries a Kind, a user-facing message and an optional cause.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError without a cause.
func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Wrap creates an AppError around a cause.
func Wrap(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func Unauthenticated(message string) *AppError { return New(KindUnauthenticated, message) }
func InvalidToken(message string) *AppError    { return New(KindInvalidToken, message) }
func Forbidden(message string) *AppError       { return New(KindForbidden, message) }
func BadRequest(message string) *AppError      { return New(KindBadRequest, message) }
func NotFound(message string) *AppError        { return New(KindNotFound, message) }
func Conflict(message string) *AppError        { return New(KindConflict, message) }

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = New(KindInvalidCredentials, "invalid credentials")
	// ErrAccountInactive is returned when a hydrated account is missing or inactive.
	ErrAccountInactive = New(KindForbidden, "user not found or account inactive")
)

// KindOf returns the Kind of the first AppError in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Details    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:   e.Message,
		Code:    e.Code,
		Details: e.Details,
	}
}

// MapErrorToHTTP maps application errors to HTTP errors. Internal failures
// keep their cause out of the response unless exposeDetails is set.
func MapErrorToHTTP(err error, exposeDetails bool) *HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return NewHTTPError(appErr.Kind.HTTPStatus(), appErr.Message, appErr.Kind.String())
	}
	httpErr := NewHTTPError(http.StatusInternalServerError, "internal server error", KindInternal.String())
	if exposeDetails && err != nil {
		httpErr.Details = err.Error()
	}
	return httpErr
}
