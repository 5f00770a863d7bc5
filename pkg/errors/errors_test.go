package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() *AppError
		expected string
	}{
		{
			name: "ErrorWithoutCause",
			setup: func() *AppError {
				return New(Validation, "latitude must be between -90 and 90")
			},
			expected: "validation: latitude must be between -90 and 90",
		},
		{
			name: "ErrorWithCause",
			setup: func() *AppError {
				cause := fmt.Errorf("connection refused")
				return Wrap(Database, "failed to list activity profiles", cause)
			},
			expected: "database: failed to list activity profiles: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.setup().Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("timeout")
	err := NewExternalAPIError("historical provider failed", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.Nil(t, NewNotFoundError("profile not found").Unwrap())
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{Validation, "validation"},
		{NotFound, "not_found"},
		{AlreadyExists, "already_exists"},
		{Database, "database"},
		{ExternalAPI, "external_api"},
		{Configuration, "configuration"},
		{Unknown, "unknown"},
		{Kind(99), "unknown"},
		{Kind(-1), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestTypeCheckers_LookThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("get profile: %w", NewNotFoundError("profile not found"))

	assert.True(t, IsNotFoundError(wrapped))
	assert.False(t, IsValidationError(wrapped))
	assert.Equal(t, NotFound, KindOf(wrapped))
	assert.Equal(t, Unknown, KindOf(fmt.Errorf("plain")))
}

func TestTypeCheckers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		checker func(error) bool
	}{
		{"Validation", NewValidationError("bad"), IsValidationError},
		{"NotFound", NewNotFoundError("missing"), IsNotFoundError},
		{"AlreadyExists", NewAlreadyExistsError("dup"), IsAlreadyExistsError},
		{"Database", NewDatabaseError("db", nil), IsDatabaseError},
		{"ExternalAPI", NewExternalAPIError("api", nil), IsExternalAPIError},
		{"Configuration", NewConfigurationError("cfg", nil), IsConfigurationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.checker(tt.err))
			assert.False(t, tt.checker(fmt.Errorf("plain error")))
			assert.False(t, tt.checker(nil))
		})
	}
}
