package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "soulc.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadParsesErrorCollectorAndStringifierOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "soulc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
error_collector:
  max_depth: 5
stringifier:
  print_types: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.ErrorCollector.MaxDepth)
	assert.Equal(t, 5, *cfg.ErrorCollector.MaxDepth)
	assert.True(t, cfg.Stringifier.PrintTypes)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "soulc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
