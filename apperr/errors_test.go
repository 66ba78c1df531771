package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *BasicError
		wantName   string
		wantStatus int
		sentinel   error
	}{
		{"validation", Validation("bad input", nil), NameValidation, http.StatusBadRequest, ErrValidation},
		{"authentication", Authentication("who are you"), NameAuthentication, http.StatusUnauthorized, ErrAuthentication},
		{"authorization", Authorization("not yours"), NameAuthorization, http.StatusForbidden, ErrAuthorization},
		{"not found", NotFound("gone"), NameNotFound, http.StatusNotFound, ErrNotFound},
		{"conflict", Conflict("twice"), NameConflict, http.StatusConflict, ErrConflict},
		{"basic", New("teapot", http.StatusTeapot), NameBasic, http.StatusTeapot, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantName, tt.err.Name)
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.Equal(t, tt.err.Message, tt.err.Error())
			if tt.sentinel != nil {
				assert.ErrorIs(t, tt.err, tt.sentinel)
			}
		})
	}
}

func TestIs_DistinguishesKinds(t *testing.T) {
	err := NotFound("order 7")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, errors.New("order 7"))
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("loading order: %w", Conflict("version mismatch"))

	be, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, be.Status)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)

	// bare sentinels carry no status and are not renderable
	_, ok = As(ErrNotFound)
	assert.False(t, ok)
}

func TestWithCause(t *testing.T) {
	cause := errors.New("db down")
	err := New("unavailable", http.StatusServiceUnavailable).WithCause(cause)

	assert.ErrorIs(t, err, cause)
}

func TestValidation_Details(t *testing.T) {
	details := map[string]any{"email": []map[string]string{{"code": "format", "message": "bad email"}}}
	err := Validation("Validation failed", details)

	assert.Equal(t, details, err.Errors)
}

func TestNewf(t *testing.T) {
	err := Newf(http.StatusRequestEntityTooLarge, "body exceeds %s", "10mb")
	assert.Equal(t, "body exceeds 10mb", err.Message)
	assert.Equal(t, http.StatusRequestEntityTooLarge, err.Status)
}
