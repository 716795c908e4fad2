package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlowe/lintel/pkg/config"
)

const sampleConfig = `rules:
  unnecessary-lambda:
    enabled: true
    severity: warning
  self-assignment:
    enabled: false
exclude:
  - "**/*_gen.go"
  - "vendor/**"
concurrency: 2
enable_all: false
tests: false
output:
  format: json
  color: false
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFindsConfigInDirectory(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".lintel.yml", sampleConfig)

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, config.RuleConfig{Enabled: true, Severity: "warning"}, cfg.Rules["unnecessary-lambda"])
	assert.Equal(t, config.RuleConfig{Enabled: false}, cfg.Rules["self-assignment"])
	assert.Equal(t, []string{"**/*_gen.go", "vendor/**"}, cfg.Exclude)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.False(t, cfg.EnableAll)
	assert.False(t, cfg.Tests)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.Output.Color)
}

func TestLoadWalksParentDirectories(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, ".lintel.yml", sampleConfig)

	deep := filepath.Join(root, "pkg", "inner")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	cfg, err := config.Load(deep)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Contains(t, cfg.Rules, "unnecessary-lambda")
}

func TestLoadDefaultsWhenNoConfigExists(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.True(t, cfg.EnableAll)
	assert.True(t, cfg.Tests)
	assert.Empty(t, cfg.Rules)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.Output.Color)
	assert.Greater(t, cfg.Concurrency, 0)
}

func TestLoadPrefersHiddenName(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".lintel.yml", "concurrency: 3\n")
	writeConfig(t, dir, "lintel.yml", "concurrency: 7\n")

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Concurrency)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoadFileRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "broken.yml", "rules: [unclosed\n")

	_, err := config.LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoadFileNormalizesConcurrency(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "lintel.yml", "concurrency: -1\n")

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Greater(t, cfg.Concurrency, 0)
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".lintel.yml")

	rules := map[string]config.RuleConfig{
		"unnecessary-lambda": {Enabled: true, Severity: "info"},
		"unchecked-error":    {Enabled: true, Severity: "warning"},
	}
	require.NoError(t, config.WriteDefault(path, rules))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.False(t, cfg.EnableAll)
	assert.Equal(t, rules, cfg.Rules)
	assert.Equal(t, "text", cfg.Output.Format)
}
