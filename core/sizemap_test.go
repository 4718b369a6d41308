package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/sizewatch/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSizes(t *testing.T) {
	normalize, err := StripHash(`\.(\w{4})\.js$`)
	require.NoError(t, err)

	sizes := schema.SizeMap{
		"dist/a.1234.js": 10,
		"dist/a.abcd.js": 5,
		"dist/b.ffff.js": 7,
		"dist/shared.js": 1,
	}
	assert.Equal(t, schema.SizeMap{
		"dist/a.****.js": 15,
		"dist/b.****.js": 7,
		"dist/shared.js": 1,
	}, NormalizeSizes(sizes, normalize))

	assert.Equal(t, sizes, NormalizeSizes(sizes, nil))
}

func TestLoadSizeMap(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	sizes, err := LoadSizeMap(write("ok.json", `{"dist/a.js": 100, "dist/b.js": 0}`))
	require.NoError(t, err)
	assert.Equal(t, schema.SizeMap{"dist/a.js": 100, "dist/b.js": 0}, sizes)

	sizes, err = LoadSizeMap(write("null.json", `null`))
	require.NoError(t, err)
	assert.Empty(t, sizes)
	assert.NotNil(t, sizes)

	_, err = LoadSizeMap(write("bad.json", `[1, 2]`))
	assert.ErrorContains(t, err, "failed to parse size map")

	_, err = LoadSizeMap(write("negative.json", `{"dist/a.js": -1}`))
	assert.ErrorContains(t, err, "negative size")

	_, err = LoadSizeMap(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "failed to read size map")
}

func TestAppendStepSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.md")
	require.NoError(t, appendStepSummary(path, "first"))
	require.NoError(t, appendStepSummary(path, "second"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\n\nsecond\n\n", string(data))
}

func TestSuppressHeader(t *testing.T) {
	assert.False(t, shouldSuppressHeader(context.Background()))
	assert.True(t, shouldSuppressHeader(WithSuppressHeader(context.Background())))
	assert.False(t, shouldSuppressHeader(context.WithValue(context.Background(), suppressHeaderKey, "yes")))
}
