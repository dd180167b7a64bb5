package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "rulebook.db", cfg.DatabasePath)
	assert.Equal(t, int64(16<<20), cfg.Upload.MaxSizeBytes)
	assert.Equal(t, 1, cfg.Upload.MaxFiles)
	assert.Equal(t, 3000, cfg.ReferenceClearMs)
	assert.Equal(t, 3*time.Second, cfg.ReferenceClearDelay())
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
listenAddr: ":9000"
pdfServiceUrl: "http://localhost:5100"
upload:
  maxSizeBytes: 1048576
referenceClearMs: 1500
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "http://localhost:5100", cfg.PDFServiceURL)
	assert.Equal(t, int64(1<<20), cfg.Upload.MaxSizeBytes)
	assert.Equal(t, 1500*time.Millisecond, cfg.ReferenceClearDelay())

	// Unset keys keep their defaults
	assert.Equal(t, "rulebook.db", cfg.DatabasePath)
	assert.Equal(t, 1, cfg.Upload.MaxFiles)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty listen address", `listenAddr: ""`},
		{"empty database path", `databasePath: ""`},
		{"non-positive upload size", "upload:\n  maxSizeBytes: 0"},
		{"non-positive clear delay", `referenceClearMs: -1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfigFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfigFile(t, "listenAddr: [unclosed"))
	assert.Error(t, err)
}
