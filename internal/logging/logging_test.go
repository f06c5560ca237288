package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lojacapivara/catalog/internal/config"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		verbose bool
		debug   bool
	}{
		{"development", "development", false, true},
		{"production", "production", false, false},
		{"production verbose", "production", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(config.LoggerConfig{Mode: tt.mode}, tt.verbose)
			require.NoError(t, err)
			assert.Equal(t, tt.debug, logger.Core().Enabled(zapcore.DebugLevel))
			assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		})
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.log")
	logger, err := New(config.LoggerConfig{Mode: "production", FileEnable: true, Filename: path}, false)
	require.NoError(t, err)

	logger.Info("product inserted", zap.Int64("id", 1))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"product inserted"`)
	assert.Contains(t, string(data), `"id":1`)
}

func TestInstall_ReplacesAndRestoresGlobal(t *testing.T) {
	before := zap.L()

	logger, restore, err := Install(config.LoggerConfig{Mode: "development"}, false)
	require.NoError(t, err)
	assert.Same(t, logger, zap.L())

	restore()
	assert.Same(t, before, zap.L())
}

func TestNewFileOnly(t *testing.T) {
	logger := NewFileOnly(config.LoggerConfig{Mode: "development"}, true)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel), "disabled file output logs nothing")

	path := filepath.Join(t.TempDir(), "tui.log")
	logger = NewFileOnly(config.LoggerConfig{Mode: "development", FileEnable: true, Filename: path}, false)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger.Warn("failed to list products")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"level":"warn"`)
}
