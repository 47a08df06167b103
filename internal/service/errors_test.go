package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shaharia-lab/fanout/internal/service"
)

func TestNotFoundError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *service.NotFoundError
		expected string
	}{
		{
			name:     "typical resource",
			err:      &service.NotFoundError{Resource: "message", ID: "42"},
			expected: `message "42" not found`,
		},
		{
			name:     "different resource type",
			err:      &service.NotFoundError{Resource: "user", ID: "7"},
			expected: `user "7" not found`,
		},
		{
			name:     "empty ID",
			err:      &service.NotFoundError{Resource: "message", ID: ""},
			expected: `message "" not found`,
		},
		{
			name:     "empty resource",
			err:      &service.NotFoundError{Resource: "", ID: "some-id"},
			expected: ` "some-id" not found`,
		},
		{
			name:     "both empty",
			err:      &service.NotFoundError{Resource: "", ID: ""},
			expected: ` "" not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestNotFoundError_implements_error(t *testing.T) {
	var err error = &service.NotFoundError{Resource: "message", ID: "x"}
	assert.Error(t, err)
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *service.ValidationError
		expected string
	}{
		{
			name:     "with field and message",
			err:      &service.ValidationError{Field: "content", Message: "content is required"},
			expected: `validation error for "content": content is required`,
		},
		{
			name:     "without field - returns message only",
			err:      &service.ValidationError{Field: "", Message: "invalid request body"},
			expected: "invalid request body",
		},
		{
			name:     "empty message with field",
			err:      &service.ValidationError{Field: "category", Message: ""},
			expected: `validation error for "category": `,
		},
		{
			name:     "both empty",
			err:      &service.ValidationError{Field: "", Message: ""},
			expected: "",
		},
		{
			name:     "field with special characters",
			err:      &service.ValidationError{Field: "users[3]", Message: "unknown channel \"FAX\""},
			expected: `validation error for "users[3]": unknown channel "FAX"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestValidationError_implements_error(t *testing.T) {
	var err error = &service.ValidationError{Field: "x", Message: "bad"}
	assert.Error(t, err)
}
