package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWrap_ForwardsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := Wrap(zap.New(core)).With(zap.String("company_id", "c1"))

	l.Warn("row skipped", zap.Int("row", 3))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "row skipped", entry.Message)
	assert.Equal(t, "c1", entry.ContextMap()["company_id"])
	assert.EqualValues(t, 3, entry.ContextMap()["row"])
}

func TestNewZapLogger_WritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "protrack.log")
	l := NewZapLogger(&ZapLoggerConfig{
		Encoding:          "json",
		Level:             "info",
		DisableStacktrace: true,
		FilePath:          path,
		MaxSizeMB:         1,
		MaxBackups:        1,
	})

	l.Info("import finished", zap.Int("imported", 2))
	l.Debug("filtered out by level")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"import finished"`)
	assert.NotContains(t, string(data), "filtered out by level")
}
