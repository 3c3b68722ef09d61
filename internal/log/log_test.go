package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"", LevelInfo},
		{" error ", LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestKeyValueHelpers(t *testing.T) {
	// Given: an observed global logger at info level
	core, logs := observer.New(zapcore.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	// When: logging at each level
	Debug("hidden", "k", 1)
	Info("loaded entries", "count", 3)
	Error("import failed", assert.AnError, "path", "cal.ics")

	// Then: debug is filtered and fields are attached
	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "loaded entries", entries[0].Message)
	assert.Equal(t, int64(3), entries[0].ContextMap()["count"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "cal.ics", entries[1].ContextMap()["path"])
	assert.Contains(t, entries[1].ContextMap(), "err")
}

func TestSetLevel(t *testing.T) {
	defer SetLevel(LevelInfo)

	SetLevel(LevelDebug)
	assert.True(t, level.Enabled(zapcore.DebugLevel))

	SetLevel(LevelError)
	assert.False(t, level.Enabled(zapcore.InfoLevel))
}

func TestInit(t *testing.T) {
	restore := zap.ReplaceGlobals(zap.NewNop())
	defer restore()
	defer SetLevel(LevelInfo)

	require.NoError(t, Init(LevelDebug, true))

	assert.True(t, zap.L().Core().Enabled(zapcore.DebugLevel))
}
