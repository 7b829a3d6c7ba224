package api

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commandapi/core"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name           string
		model          any
		expectedErrors map[string][]string
	}{
		{
			name:  "valid create model",
			model: &CreateCommandModel{HowTo: "List files", CommandLine: "ls -la", Platform: "Linux"},
		},
		{
			name:  "valid update model",
			model: &UpdateCommandModel{HowTo: "List files", CommandLine: "ls -la", Platform: "Linux"},
		},
		{
			name:  "empty create model",
			model: &CreateCommandModel{},
			expectedErrors: map[string][]string{
				"howTo":       {"howTo is required"},
				"commandLine": {"commandLine is required"},
				"platform":    {"platform is required"},
			},
		},
		{
			name:  "whitespace counts as missing",
			model: &UpdateCommandModel{HowTo: "List files", CommandLine: "   ", Platform: "Linux"},
			expectedErrors: map[string][]string{
				"commandLine": {"commandLine is required"},
			},
		},
		{
			name:  "howTo too long",
			model: &UpdateCommandModel{HowTo: strings.Repeat("a", 251), CommandLine: "ls", Platform: "Linux"},
			expectedErrors: map[string][]string{
				"howTo": {"howTo must be at most 250 characters"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.model)

			if tt.expectedErrors == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, core.IsValidationError(err))

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.expectedErrors, validationErr.Errors)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: map[string][]string{
		"platform": {"platform is required"},
		"howTo":    {"howTo is required"},
	}}

	assert.Equal(t, "validation failed: howTo is required; platform is required", err.Error())
}
