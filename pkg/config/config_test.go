package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fkerrors "github.com/odvcencio/focuskit/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "layout.yaml", cfg.LayoutFile)
	assert.False(t, cfg.Tracing)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "log_level: debug\ntracing: true\nlayout_file: demo.yaml\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Tracing)
	assert.Equal(t, "demo.yaml", cfg.LayoutFile)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "log_level: warn\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "layout.yaml", cfg.LayoutFile)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "log_level: [unclosed\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, fkerrors.IsCode(err, fkerrors.ErrCodeConfigParse))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "verbose"
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, fkerrors.IsCode(err, fkerrors.ErrCodeConfigInvalid))

	cfg = Default()
	cfg.LayoutFile = ""
	assert.Error(t, cfg.Validate())
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level}
		assert.Equal(t, tt.want, cfg.SlogLevel(), tt.level)
	}
}
