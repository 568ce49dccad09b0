package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateShareLink(t *testing.T) {
	t.Run("respects requested length", func(t *testing.T) {
		for _, n := range []int{10, 16, 32} {
			token, err := GenerateShareLink(n)
			assert.NoError(t, err)
			assert.Len(t, token, n)
		}
	})

	t.Run("short lengths are bumped to the default", func(t *testing.T) {
		for _, n := range []int{-5, 0, 3} {
			token, err := GenerateShareLink(n)
			assert.NoError(t, err)
			assert.Len(t, token, ShareLinkLength)
		}
	})

	t.Run("uses only URL-safe characters", func(t *testing.T) {
		token, err := GenerateShareLink(200)
		assert.NoError(t, err)
		for _, c := range token {
			assert.True(t, strings.ContainsRune(urlSafeChars, c), "unexpected character %q", c)
		}
	})

	t.Run("tokens do not repeat", func(t *testing.T) {
		seen := make(map[string]struct{}, 10000)
		for i := 0; i < 10000; i++ {
			token, err := GenerateShareLink(ShareLinkLength)
			assert.NoError(t, err)
			_, dup := seen[token]
			assert.False(t, dup, "duplicate token %s", token)
			seen[token] = struct{}{}
		}
	})
}
