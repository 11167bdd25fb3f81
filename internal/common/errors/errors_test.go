package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	t.Run("wrap keeps the cause in the chain", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewDatabaseError("create user", cause)

		assert.True(t, errors.Is(err, cause))
		assert.True(t, err.IsInternal())
	})

	t.Run("unwraps through fmt wrapping", func(t *testing.T) {
		inner := New(ErrCodeUserBanned, "account is banned")
		wrapped := fmt.Errorf("login: %w", inner)

		appErr, ok := AsAppError(wrapped)
		require.True(t, ok)
		assert.Equal(t, ErrCodeUserBanned, appErr.Code)
		assert.True(t, Is(wrapped, ErrCodeUserBanned))
		assert.False(t, Is(wrapped, ErrCodeForbidden))
	})

	t.Run("plain errors are not app errors", func(t *testing.T) {
		_, ok := AsAppError(errors.New("boom"))
		assert.False(t, ok)
		assert.False(t, Is(errors.New("boom"), ErrCodeInternal))
	})
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeEmptyContent, http.StatusBadRequest},
		{ErrCodeInvalidAmount, http.StatusBadRequest},
		{ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeUserBanned, http.StatusForbidden},
		{ErrCodeUserNotFound, http.StatusNotFound},
		{ErrCodeInvitationNotFound, http.StatusNotFound},
		{ErrCodeChannelNotFound, http.StatusNotFound},
		{ErrCodeUsernameTaken, http.StatusConflict},
		{ErrCodeEmailTaken, http.StatusConflict},
		{ErrCodeAlreadyResolved, http.StatusConflict},
		{ErrCodeDatabaseError, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(New(tc.code, "x")))
		})
	}

	t.Run("non-app errors map to 500", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
	})
}
