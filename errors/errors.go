package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrWorkerPanic       = fmt.Errorf("worker panic")
	ErrOnlyCensoredFiles = fmt.Errorf("censored directory contains directories")
	ErrEmptyWords        = fmt.Errorf("no words have been found")

	ErrNotFound           = fmt.Errorf("not found")
	ErrAlreadyExists      = fmt.Errorf("already exists")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity requirements")
	ErrMalformedEvent     = fmt.Errorf("malformed event")
	ErrInvalidChat        = fmt.Errorf("invalid chat")
	ErrNotMember          = fmt.Errorf("participant is not a member of the chat")
	ErrInvalidStatus      = fmt.Errorf("invalid status post")
	ErrInvalidRequest     = fmt.Errorf("invalid request")
	ErrNilChannel         = fmt.Errorf("connection channel is nil")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
)

// Is and As re-export the standard helpers so callers importing this package
// do not need a second "errors" import.
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }

// HTTPStatus maps a domain error to the status code returned by the HTTP layer.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotMember):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrMalformedEvent),
		errors.Is(err, ErrInvalidChat),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrInvalidPassword):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
