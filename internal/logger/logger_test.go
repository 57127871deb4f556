package logger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestCreatePrettyLogger(t *testing.T) {
	log, err := CreatePrettyLogger(true)
	require.NoError(t, err)
	require.NotNil(t, log)

	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = CreatePrettyLogger(false)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestPrettyEncoderColorsLevels(t *testing.T) {
	enc := zapcore.NewConsoleEncoder(prettyEncoderConfig())

	entry := zapcore.Entry{
		Level:   zapcore.WarnLevel,
		Time:    time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC),
		Message: "source degraded",
	}
	buf, err := enc.EncodeEntry(entry, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, ColorYellow+"[WARN]"+ColorReset)
	assert.Contains(t, out, "15:04:05")
	assert.Contains(t, out, "source degraded")
}
