package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_MatchesSelfAndKind(t *testing.T) {
	t.Parallel()

	errMissing := New(ErrValidation, "missing required field")

	assert.ErrorIs(t, errMissing, errMissing)
	assert.ErrorIs(t, errMissing, ErrValidation)
	assert.NotErrorIs(t, errMissing, ErrNotFound)
	assert.Equal(t, "missing required field", errMissing.Error())
}

func TestStorage(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk I/O error")
	err := Storage(cause)

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, Storage(nil))
	assert.Same(t, err, Storage(err), "already wrapped errors are returned as is")

	notFound := New(ErrNotFound, "article not found")
	assert.Same(t, notFound, Storage(notFound), "kinded errors pass through")
	assert.NotErrorIs(t, Storage(notFound), ErrStorage)
}

func TestHasKind(t *testing.T) {
	t.Parallel()

	assert.True(t, HasKind(New(ErrConflict, "email already registered")))
	assert.True(t, HasKind(fmt.Errorf("create user: %w", NewUnauthenticated("login required"))))
	assert.True(t, HasKind(Storage(errors.New("boom"))))
	assert.False(t, HasKind(errors.New("boom")))
	assert.False(t, HasKind(nil))
}

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	errNotOwner := New(ErrAuthorization, "not the owner")
	errUnauthenticated := NewUnauthenticated("authentication required")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", New(ErrValidation, "bad"), http.StatusBadRequest},
		{"conflict", New(ErrConflict, "taken"), http.StatusConflict},
		{"authentication", New(ErrAuthentication, "bad credentials"), http.StatusUnauthorized},
		{"not owner", errNotOwner, http.StatusForbidden},
		{"wrapped not owner", fmt.Errorf("edit: %w", errNotOwner), http.StatusForbidden},
		{"unauthenticated", errUnauthenticated, http.StatusUnauthorized},
		{"not found", New(ErrNotFound, "missing"), http.StatusNotFound},
		{"storage", Storage(errors.New("boom")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "internal server error", PublicMessage(Storage(errors.New("pq: password authentication failed"))))
	assert.Equal(t, "not the owner", PublicMessage(fmt.Errorf("delete article 3: %w", New(ErrAuthorization, "not the owner"))))
	assert.Equal(t, "authentication required", PublicMessage(NewUnauthenticated("authentication required")))
}
