package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.True(t, cfg.Render)
	assert.Equal(t, "ASET_Analysis.xlsx", cfg.ReportName)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`workers: 3
timeout: 45s
extensions: [JPG, ".Tiff", " png "]
render: false
addr: ":8080"
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, []string{".jpg", ".tiff", ".png"}, cfg.Extensions)
	assert.False(t, cfg.Render)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "ASET_Analysis.xlsx", cfg.ReportName)
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("workers: -2\n"), 0o644))
	_, err := Load(bad)
	assert.Error(t, err)

	garbled := filepath.Join(dir, "garbled.yaml")
	require.NoError(t, os.WriteFile(garbled, []byte("workers: [\n"), 0o644))
	_, err = Load(garbled)
	assert.Error(t, err)
}

func TestNormalizeZeroWorkers(t *testing.T) {
	cfg, err := Config{}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, []string{".jpg", ".jpeg", ".png"}, cfg.Extensions)
	assert.Equal(t, DefaultAddr, cfg.Addr)
}
