package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		status   int
		message  string
	}{
		{"invalid input", NewInvalidInput(""), ErrInvalidInput, http.StatusBadRequest, "Invalid Inputs"},
		{"authentication", NewUnauthorized(""), ErrAuthentication, http.StatusUnauthorized, "Invalid Credentials"},
		{"authorization", NewForbidden(""), ErrAuthorization, http.StatusForbidden, "You're not Authorized to view this page"},
		{"not found", NewNotFound("No user with that ID was found"), ErrNotFound, http.StatusNotFound, "No user with that ID was found"},
		{"conflict", NewConflict("Username is already taken"), ErrConflict, http.StatusConflict, "Username is already taken"},
		{"internal", NewInternalError("", nil), ErrInternal, http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			de := ToDomainError(tt.err)
			assert.Equal(t, tt.status, de.HTTPStatus)
			assert.Equal(t, tt.message, de.Message)
			assert.Equal(t, Body{Message: tt.message, StatusCode: tt.status}, de.Body())
		})
	}
}

func TestSentinelsDoNotCrossMatch(t *testing.T) {
	err := NewNotFound("")
	assert.NotErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

func TestInternalErrorHidesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError("Server error happened when trying to get all users", cause)

	de := ToDomainError(err)
	assert.Equal(t, "Server error happened when trying to get all users", de.Body().Message)
	assert.ErrorIs(t, err, cause)
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	de := ToDomainError(fmt.Errorf("boom"))
	assert.Equal(t, CodeInternal, de.Code)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(de))

	wrapped := fmt.Errorf("ctx: %w", NewConflict("x"))
	assert.Equal(t, http.StatusConflict, StatusCode(wrapped))
	assert.Nil(t, ToDomainError(nil))
}
