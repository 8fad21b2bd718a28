package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bassosimone/rv32core/internal/config"
)

func TestLoadWithEmptyPathReturnsZeroValue(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Config{}, cfg)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Config{}, cfg)
}

func TestLoadParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rv32vm.toml")
	contents := `
image = "firmware.hex"
budget = 5000
entry = 4096
trace = true
console = false
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "firmware.hex", cfg.Image)
	assert.Equal(t, uint64(5000), cfg.Budget)
	assert.Equal(t, uint32(4096), cfg.Entry)
	assert.True(t, cfg.Trace)
	assert.False(t, cfg.Console)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
