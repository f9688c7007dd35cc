package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrStorageUnavailable", ErrStorageUnavailable},
		{"ErrCorruptRecord", ErrCorruptRecord},
		{"ErrInvalidGraph", ErrInvalidGraph},
		{"ErrUnknownCommand", ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrNotFound tests ErrNotFound error
func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.True(t, errors.Is(ErrNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, ErrInvalidInput))
}

// TestErrors_Wrapping tests that wrapped domain errors stay detectable
func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("reading layout: %w", ErrCorruptRecord)

	assert.ErrorIs(t, wrapped, ErrCorruptRecord)
	assert.NotErrorIs(t, wrapped, ErrStorageUnavailable)
}
