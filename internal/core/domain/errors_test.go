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
		{"ErrManifestNotFound", ErrManifestNotFound},
		{"ErrInvalidManifest", ErrInvalidManifest},
		{"ErrQueriesDirNotFound", ErrQueriesDirNotFound},
		{"ErrQueryFileNotFound", ErrQueryFileNotFound},
		{"ErrMissingAPIKey", ErrMissingAPIKey},
		{"ErrQueryServiceUnavailable", ErrQueryServiceUnavailable},
		{"ErrSyncFailed", ErrSyncFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Wrapped(t *testing.T) {
	err := fmt.Errorf("load manifest %s: %w", "queries.yml", ErrManifestNotFound)

	assert.True(t, errors.Is(err, ErrManifestNotFound))
	assert.False(t, errors.Is(err, ErrInvalidManifest))
}

func TestErrMissingAPIKey_MentionsVariable(t *testing.T) {
	assert.Contains(t, ErrMissingAPIKey.Error(), "DUNE_API_KEY")
}
