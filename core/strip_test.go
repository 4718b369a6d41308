package core

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripHash_Disabled(t *testing.T) {
	normalize, err := StripHash("")
	require.NoError(t, err)
	assert.Nil(t, normalize)
}

func TestStripHash_InvalidPattern(t *testing.T) {
	normalize, err := StripHash(`(\w{5}`)
	assert.Error(t, err)
	assert.Nil(t, normalize)
	assert.Contains(t, err.Error(), "invalid strip-hash pattern")
}

func TestStripHash(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		input    string
		expected string
	}{
		{"deletes whole match without groups", `\b\w{5}\.`, "foo.abcde.js", "foo.js"},
		{"masks captured hash", `\.(\w{5})\.chunk\.js$`, "foo.abcde.chunk.js", "foo.*****.chunk.js"},
		{"no match keeps name", `\.(\w{5})\.chunk\.js$`, "foo.js", "foo.js"},
		{"masks every group", `^(\w+)-(\w{4})\.js$`, "main-ab12.js", "****-****.js"},
		{"non participating group falls back to deletion", `\.(\w{8})?\w{5}\.`, "foo.abcde.js", "foojs"},
		{"optional group that participates is masked", `\.(\w{8})?\.js$`, "app.12345678.js", "app.********.js"},
		{"nested groups mask the outer span once", `\.((\w{2})\w{3})\.js$`, "foo.abcde.js", "foo.*****.js"},
		{"applied once", `\w{3}\.`, "abc.def.js", "def.js"},
		{"case sensitive", `\.([A-F]{4})\.js$`, "foo.abcd.js", "foo.abcd.js"},
		{"masks runes not bytes", `-(.{2})\.js$`, "app-éé.js", "app-**.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalize, err := StripHash(tt.pattern)
			require.NoError(t, err)
			require.NotNil(t, normalize)
			assert.Equal(t, tt.expected, normalize(tt.input))
		})
	}
}

func TestNewNormalizer(t *testing.T) {
	assert.Nil(t, NewNormalizer(nil))

	normalize := NewNormalizer(regexp.MustCompile(`\.(\w{8})\.js$`))
	require.NotNil(t, normalize)
	assert.Equal(t, "main.********.js", normalize("main.1a2b3c4d.js"))
}
