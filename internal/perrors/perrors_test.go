package perrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrHttpStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{NewErrInvalidRequest("bad", errors.New("x")), http.StatusBadRequest},
		{NewErrUnauthorized("no", errors.New("x")), http.StatusUnauthorized},
		{NewErrForbidden("denied", errors.New("x")), http.StatusForbidden},
		{NewErrNotFound("missing", errors.New("x")), http.StatusNotFound},
		{NewErrInternalServerError("boom", errors.New("x")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		var perr Err
		require.ErrorAs(t, tt.err, &perr)
		assert.Equal(t, tt.status, perr.HttpStatus())
	}
}

func TestNewErrValidationField(t *testing.T) {
	fe := NewFieldError("assignee_id", "User is not a member of this board.")
	err := NewErrValidationField(fe)

	var perr Err
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusBadRequest, perr.HttpStatus())
	require.Len(t, perr.Args, 1)
	assert.Equal(t, "User is not a member of this board.", perr.Args[0]["assignee_id"])
}

func TestFieldErrorError(t *testing.T) {
	fe := NewFieldError("email", "Enter a valid email address.")
	assert.Equal(t, "email: Enter a valid email address.", fe.Error())
}
