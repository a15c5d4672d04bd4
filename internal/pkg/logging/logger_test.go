package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"procurement/internal/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, err := logging.New(logging.Config{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)

	logging.Component(logger, "commands").Info("negotiation completed", zap.String("negotiationId", "n-1"))
	require.NoError(t, logger.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(raw, &entry))
	assert.Equal(t, "negotiation completed", entry["msg"])
	assert.Equal(t, "commands", entry["component"])
	assert.Equal(t, "n-1", entry["negotiationId"])
	assert.Contains(t, entry, "timestamp")
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	logger, err := logging.New(logging.Config{Level: "verbose", Output: "stderr"})
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}
