// Package apperr defines the error kinds shared by every feature.
// Feature packages declare their own sentinel errors on top of a kind, so
// callers can match either the precise failure or its category with errors.Is.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds.
var (
	// ErrValidation covers missing or malformed input.
	ErrValidation = errors.New("validation error")

	// ErrConflict covers writes rejected by a uniqueness rule.
	ErrConflict = errors.New("conflict")

	// ErrAuthentication covers rejected credentials.
	ErrAuthentication = errors.New("authentication failed")

	// ErrAuthorization covers a missing identity or an identity that does not own the resource.
	ErrAuthorization = errors.New("not authorized")

	// ErrNotFound covers unknown identifiers.
	ErrNotFound = errors.New("not found")

	// ErrStorage covers failures of the underlying database or session store.
	ErrStorage = errors.New("storage failure")
)

// kindError is a sentinel error that belongs to one kind.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// New returns a sentinel error of the given kind.
// errors.Is matches the returned value against itself and against kind.
func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// Storage wraps a raw storage error as ErrStorage while keeping the cause in the chain.
// Errors that already carry a kind are returned unchanged.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	if HasKind(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

// HasKind reports whether err belongs to one of the kinds above.
func HasKind(err error) bool {
	for _, kind := range []error{ErrValidation, ErrConflict, ErrAuthentication, ErrAuthorization, ErrNotFound, ErrStorage} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// HTTPStatus maps an error to the response status handlers should send.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAuthorization):
		return authorizationStatus(err)
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// unauthenticated is implemented by authorization errors that mean
// "no identity" rather than "wrong identity".
type unauthenticated interface {
	Unauthenticated() bool
}

// NewUnauthenticated returns an ErrAuthorization sentinel that handlers report as 401.
func NewUnauthenticated(msg string) error {
	return &unauthenticatedError{kindError{kind: ErrAuthorization, msg: msg}}
}

type unauthenticatedError struct {
	kindError
}

func (e *unauthenticatedError) Unauthenticated() bool { return true }

func authorizationStatus(err error) int {
	var u unauthenticated
	if errors.As(err, &u) && u.Unauthenticated() {
		return http.StatusUnauthorized
	}
	return http.StatusForbidden
}

// PublicMessage returns the text that is safe to send to clients.
// Storage and unknown failures are never described.
func PublicMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.msg
	}
	return err.Error()
}
