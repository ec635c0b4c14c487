package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalid      = errors.New("invalid argument")
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// NotFound reports a referenced entity that does not resolve. The kind
// names the entity ("User", "Tour", "Booking", ...).
func NotFound(kind string, id any) *Error {
	return &Error{
		Status: http.StatusNotFound,
		Code:   "NOT_FOUND",
		Err:    fmt.Errorf("%s not found with id: %v: %w", kind, id, ErrNotFound),
	}
}

func Conflict(code string, msg string) *Error {
	return &Error{
		Status: http.StatusConflict,
		Code:   code,
		Err:    fmt.Errorf("%s: %w", msg, ErrConflict),
	}
}

func Unauthorized(msg string) *Error {
	return &Error{
		Status: http.StatusUnauthorized,
		Code:   "UNAUTHORIZED",
		Err:    fmt.Errorf("%s: %w", msg, ErrUnauthorized),
	}
}

func Forbidden(msg string) *Error {
	return &Error{
		Status: http.StatusForbidden,
		Code:   "FORBIDDEN",
		Err:    fmt.Errorf("%s: %w", msg, ErrForbidden),
	}
}

func Invalid(msg string) *Error {
	return &Error{
		Status: http.StatusBadRequest,
		Code:   "INVALID_ARGUMENT",
		Err:    fmt.Errorf("%s: %w", msg, ErrInvalid),
	}
}

func Invalidf(format string, args ...any) *Error {
	return Invalid(fmt.Sprintf(format, args...))
}

// StatusOf maps an error to the HTTP status the transport layer should
// emit. Unrecognized errors map to 500.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Code != "" {
		return ae.Code
	}
	return "INTERNAL"
}
