package ids

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorCodesAreUniqueAndPrefixed(t *testing.T) {
	gen, err := NewGenerator(7)
	require.NoError(t, err)

	seen := map[string]struct{}{}
	for i := 0; i < 500; i++ {
		code := gen.Code("GC")
		require.True(t, strings.HasPrefix(code, "GC-"), code)
		assert.Equal(t, strings.ToUpper(code), code)
		_, dup := seen[code]
		require.False(t, dup, "duplicate code %s", code)
		seen[code] = struct{}{}
	}
}

func TestGeneratorNextIsIncreasing(t *testing.T) {
	gen, err := NewGenerator(1)
	require.NoError(t, err)

	first := gen.Next()
	second := gen.Next()
	assert.Greater(t, second, first)
	assert.NotContains(t, gen.Code(""), "-")
}
