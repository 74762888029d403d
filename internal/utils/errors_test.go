package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorToHTTPStatus(t *testing.T) {
	cases := map[string]int{
		ErrNotFound:           http.StatusNotFound,
		ErrUserNotFound:       http.StatusNotFound,
		ErrInvalidInput:       http.StatusBadRequest,
		ErrInvalidCredentials: http.StatusBadRequest,
		ErrUnauthorized:       http.StatusUnauthorized,
		ErrInvalidToken:       http.StatusUnauthorized,
		ErrForbidden:          http.StatusForbidden,
		ErrDuplicate:          http.StatusConflict,
		ErrUserAlreadyExists:  http.StatusConflict,
		ErrDatabase:           http.StatusInternalServerError,
		ErrActorTimeout:       http.StatusInternalServerError,
		"SOMETHING_ELSE":      http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, AppErrorToHTTPStatus(code), code)
	}
}

func TestAppErrorMessage(t *testing.T) {
	err := NewAppError(ErrDatabase, "save failed", errors.New("connection reset"))
	assert.Equal(t, "save failed: connection reset", err.Error())

	err = NewNotFoundError("Question")
	assert.Equal(t, "Question not found", err.Error())
	assert.Equal(t, ErrNotFound, err.Code)
}

func TestIsErrorCode(t *testing.T) {
	appErr := NewForbiddenError("delete this question")
	assert.True(t, IsErrorCode(appErr, ErrForbidden))
	assert.False(t, IsErrorCode(appErr, ErrNotFound))
	assert.False(t, IsErrorCode(errors.New("plain"), ErrForbidden))
}
