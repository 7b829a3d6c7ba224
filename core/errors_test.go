package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "sentinel", err: ErrNotFound, want: true},
		{name: "wrapped sentinel", err: fmt.Errorf("failed to update command: %w", ErrNotFound), want: true},
		{name: "message match", err: errors.New("command 7 Not Found"), want: true},
		{name: "unrelated", err: errors.New("connection refused"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFoundError(tt.err))
		})
	}
}

func TestIsValidationError(t *testing.T) {
	assert.False(t, IsValidationError(nil))
	assert.True(t, IsValidationError(fmt.Errorf("invalid patch: %w", ErrValidation)))
	assert.False(t, IsValidationError(ErrNotFound))
}
