package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrDuplicateUsername = errors.New("username is already in use")
	ErrDuplicateEmail    = errors.New("email is already in use")
	ErrUnknownRole       = errors.New("role does not exist")

	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")

	ErrNoToken      = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrForbidden    = errors.New("forbidden")

	ErrInternal = errors.New("internal error")
)

// UnknownRoleError carries the offending role name so handlers can echo it back.
type UnknownRoleError struct {
	Name string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("role does not exist: %s", e.Name)
}

func (e *UnknownRoleError) Unwrap() error { return ErrUnknownRole }

// HTTPStatus maps the error taxonomy to response codes. Unrecognized errors are
// treated as internal failures.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrDuplicateUsername),
		errors.Is(err, ErrDuplicateEmail),
		errors.Is(err, ErrUnknownRole):
		return http.StatusBadRequest
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidPassword),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNoToken), errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
