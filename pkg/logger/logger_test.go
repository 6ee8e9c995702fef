package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("loud", "json", "")
	assert.Error(t, err)
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New("info", "xml", "")
	assert.Error(t, err)
}

func TestNewHonoursLevel(t *testing.T) {
	log, err := New("warn", "console", "")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scraper.log")

	log, err := New("info", "json", path)
	require.NoError(t, err)
	log.Info("fetched page", zap.String("genre", "techno"), zap.Int("page", 2))
	log.Debug("not written")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"fetched page"`)
	assert.Contains(t, string(data), `"genre":"techno"`)
	assert.NotContains(t, string(data), "not written")
}
