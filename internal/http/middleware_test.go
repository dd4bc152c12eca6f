package httpapi

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTrimString(t *testing.T) {
	assert.Equal(t, "abc", trimString("  abc  ", 10))
	assert.Equal(t, "abcde", trimString("abcdefgh", 5))
	assert.Equal(t, "", trimString("   ", 10))
}

func TestTrimStringKeepsRuneBoundary(t *testing.T) {
	// Arabic is two bytes per letter; a limit landing mid-rune must back off
	// instead of emitting invalid UTF-8.
	agent := strings.Repeat("م", 10)
	for limit := 1; limit < len(agent); limit++ {
		got := trimString(agent, limit)
		assert.True(t, utf8.ValidString(got), "limit %d", limit)
		assert.LessOrEqual(t, len(got), limit)
	}
}
