package logging

import (
	"os"
	"path/filepath"
	"testing"

	"meshvr/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshvr.log")
	log, err := New(config.LogConfig{Level: "debug", File: path, MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)

	log.Info("mesh loaded", zap.String("path", "bunny.stl"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"mesh loaded"`)
	assert.Contains(t, string(data), `"path":"bunny.stl"`)
}

func TestNewRejectsLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "chatty"})
	assert.Error(t, err)
}

func TestLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshvr.log")
	log, err := New(config.LogConfig{Level: "warn", File: path})
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("shown")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}
