package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptionsDefaults(t *testing.T) {
	opts, err := LoadOptions(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)
	assert.True(t, opts.Format)
	assert.Equal(t, []string{"black"}, opts.Formatter)
	assert.Equal(t, 4, opts.Concurrency)
}

func TestLoadOptionsFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `model = "gpt-4o-mini"
overwrite = true
format = false
formatter = ["ruff", "format"]
concurrency = 8
exclude_dirs = ["migrations", "proto"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".aidocgen.toml"), []byte(content), 0o644))

	opts, err := LoadOptions(dir)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", opts.Model)
	assert.True(t, opts.Overwrite)
	assert.False(t, opts.Format)
	assert.Equal(t, []string{"ruff", "format"}, opts.Formatter)
	assert.Equal(t, 8, opts.Concurrency)
	assert.Equal(t, []string{"migrations", "proto"}, opts.ExcludeDirs)
}

func TestLoadOptionsClampsBadValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".aidocgen.toml"), []byte("concurrency = -1\nformatter = []\n"), 0o644))

	opts, err := LoadOptions(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, opts.Concurrency)
	assert.Equal(t, []string{"black"}, opts.Formatter)
}

func TestLoadOptionsInvalidToml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".aidocgen.toml"), []byte("model = [unclosed"), 0o644))

	_, err := LoadOptions(dir)
	require.Error(t, err)
}
