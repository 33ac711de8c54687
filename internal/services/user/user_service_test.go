package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardlyhq/boardly/internal/perrors"
)

func validRegistration() *RegisterRequest {
	return &RegisterRequest{
		Fullname:         "Ada Lovelace",
		Email:            "ada@example.com",
		Password:         "supersecret",
		RepeatedPassword: "supersecret",
	}
}

func TestValidateRegistration(t *testing.T) {
	assert.NoError(t, ValidateRegistration(validRegistration()))
}

func TestValidateRegistration_FieldFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *RegisterRequest)
		field   string
		message string
	}{
		{
			name:    "missing fullname",
			mutate:  func(r *RegisterRequest) { r.Fullname = "  " },
			field:   "fullname",
			message: "This field is required.",
		},
		{
			name:    "invalid email",
			mutate:  func(r *RegisterRequest) { r.Email = "not-an-email" },
			field:   "email",
			message: "Enter a valid email address.",
		},
		{
			name:    "empty email",
			mutate:  func(r *RegisterRequest) { r.Email = "" },
			field:   "email",
			message: "Enter a valid email address.",
		},
		{
			name:    "short password",
			mutate:  func(r *RegisterRequest) { r.Password = "short"; r.RepeatedPassword = "short" },
			field:   "password",
			message: "Ensure this field has at least 8 characters.",
		},
		{
			name:    "password mismatch",
			mutate:  func(r *RegisterRequest) { r.RepeatedPassword = "different1" },
			field:   "repeated_password",
			message: "Passwords do not match.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistration()
			tt.mutate(req)

			err := ValidateRegistration(req)
			require.Error(t, err)

			var fieldErr *perrors.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
			assert.Equal(t, tt.message, fieldErr.Message)
		})
	}
}
