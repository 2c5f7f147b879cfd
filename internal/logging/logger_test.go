package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "optimizer.log")

	logger, err := Init(false, logFile)
	require.NoError(t, err)

	logger.Info("hello from test")
	_ = logger.Sync() // stderr sync can fail on some platforms, file sync is what matters

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
}

func TestInitWithoutFile(t *testing.T) {
	logger, err := Init(true, "")
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestInitFileOnly(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "optimizer.log")

	logger, err := InitFileOnly(false, logFile)
	require.NoError(t, err)

	logger.Warn("file only entry")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file only entry")
}

func TestInitFileOnlyNop(t *testing.T) {
	logger, err := InitFileOnly(false, "")
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
