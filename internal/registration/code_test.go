package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessCode_Format(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateAccessCode()

		require.NoError(t, err)
		assert.Regexp(t, "^[0-9A-F]{6}$", code)
	}
}

func TestGenerateAccessCode_Varies(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateAccessCode()
		require.NoError(t, err)
		seen[code] = true
	}

	// 50 draws over a 16M space should never all collide
	assert.Greater(t, len(seen), 1)
}
