package token_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registrahq/registra/pkg/token"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("fixed length and alphabet", func(t *testing.T) {
		t.Parallel()
		tok, err := token.Generate()
		require.NoError(t, err)
		assert.Len(t, tok, token.Length)
		assert.True(t, token.Valid(tok))
		for _, c := range tok {
			assert.Contains(t, "0123456789abcdef", string(c))
		}
	})

	t.Run("no repeats across generations", func(t *testing.T) {
		t.Parallel()
		seen := make(map[string]struct{}, 100)
		for range 100 {
			tok, err := token.Generate()
			require.NoError(t, err)
			_, dup := seen[tok]
			require.False(t, dup, "generated a duplicate token")
			seen[tok] = struct{}{}
		}
	})
}

func TestValid(t *testing.T) {
	t.Parallel()

	valid, err := token.Generate()
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"generated token", valid, true},
		{"empty string", "", false},
		{"too short", valid[:token.Length-1], false},
		{"too long", valid + "a", false},
		{"uppercase hex rejected", strings.ToUpper(valid), false},
		{"non-hex characters", strings.Repeat("g", token.Length), false},
		{"garbage", "garbage-not-a-valid-token", false},
		{"hex with embedded space", valid[:47] + " " + valid[48:], false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, token.Valid(tt.input))
		})
	}
}
