// internal/utils/crypto_test.go
package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	number, err := GenerateOrderNumber()
	require.NoError(t, err)

	require.Len(t, number, 12)
	assert.True(t, strings.HasPrefix(number, "LMM-"))

	for _, r := range number[4:] {
		valid := (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		assert.True(t, valid, "unexpected character %q in %s", r, number)
	}
}

func TestGenerateOrderNumberUniqueness(t *testing.T) {
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		number, err := GenerateOrderNumber()
		require.NoError(t, err)
		require.False(t, seen[number], "duplicate order number %s after %d draws", number, i)
		seen[number] = true
	}
}

func TestGenerateRandomString(t *testing.T) {
	s, err := GenerateRandomString("ab", 16)
	require.NoError(t, err)
	require.Len(t, s, 16)
	for _, r := range s {
		assert.Contains(t, []rune{'a', 'b'}, r)
	}
}
