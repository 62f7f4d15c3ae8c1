package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/user/jobboard/internal/config"
)

func TestNew_WritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "jobboard.log")

	logger, err := New(config.LogConfig{Level: "debug", File: logFile}, false)
	require.NoError(t, err)

	logger.Debug("fetching postings")
	_ = logger.Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "fetching postings")
}

func TestNew_RespectsLevel(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "jobboard.log")

	logger, err := New(config.LogConfig{Level: "warn", File: logFile}, false)
	require.NoError(t, err)

	logger.Info("quiet")
	logger.Warn("loud")
	_ = logger.Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.NotContains(t, string(data), "quiet")
	require.Contains(t, string(data), "loud")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "chatty"}, false)
	require.Error(t, err)
}

func TestNew_NoOutputs(t *testing.T) {
	logger, err := New(config.LogConfig{}, false)
	require.NoError(t, err)
	require.NotNil(t, logger)
}
