package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicate    = errors.New("duplicate entry")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("not authenticated, please log in again")
)

// RespondError maps domain errors to HTTP responses. Unknown errors are
// masked behind a generic message so internals never leak to clients.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Message(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrDuplicate):
		Message(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrValidation):
		Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnauthorized):
		Message(w, http.StatusUnauthorized, err.Error())
	default:
		Message(w, http.StatusInternalServerError, "request error")
	}
}

// Invalid wraps a business-rule message so it maps to a 400 with the message
// delivered verbatim.
func Invalid(message string) error {
	return validationError{message: message}
}

type validationError struct {
	message string
}

func (e validationError) Error() string { return e.message }

func (e validationError) Is(target error) bool { return target == ErrValidation }
