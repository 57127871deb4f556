package logger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLogBufferCapturesZapOutput(t *testing.T) {
	buffer := NewLogBuffer(16)
	log, err := CreateTUILogger(true, "", buffer)
	require.NoError(t, err)

	log.Info("fetching pairs", zap.String("query", "pepe"))
	log.Warn("source failed")

	recent := buffer.Recent(0)
	require.Len(t, recent, 2)
	assert.Equal(t, "fetching pairs", recent[0].Message)
	assert.Equal(t, "info", recent[0].Level)
	assert.Equal(t, "warn", recent[1].Level)
	assert.Contains(t, recent[0].Raw, `"query":"pepe"`)
}

func TestLogBufferRingWraps(t *testing.T) {
	buffer := NewLogBuffer(4)

	for i := 0; i < 10; i++ {
		_, err := buffer.Write([]byte(fmt.Sprintf(`{"msg":"entry %d","level":"info"}`, i)))
		require.NoError(t, err)
	}

	recent := buffer.Recent(0)
	require.Len(t, recent, 4)
	assert.Equal(t, "entry 6", recent[0].Message)
	assert.Equal(t, "entry 9", recent[3].Message)
	assert.Equal(t, uint64(10), buffer.Total())
}

func TestLogBufferSingleSlotRing(t *testing.T) {
	buffer := NewLogBuffer(1)

	_, err := buffer.Write([]byte(`{"msg":"first","level":"info"}`))
	require.NoError(t, err)

	recent := buffer.Recent(0)
	require.Len(t, recent, 1)
	assert.Equal(t, "first", recent[0].Message)

	_, err = buffer.Write([]byte(`{"msg":"second","level":"info"}`))
	require.NoError(t, err)

	recent = buffer.Recent(0)
	require.Len(t, recent, 1)
	assert.Equal(t, "second", recent[0].Message)
}

func TestLogBufferRecentLimit(t *testing.T) {
	buffer := NewLogBuffer(8)
	for i := 0; i < 5; i++ {
		_, _ = buffer.Write([]byte(fmt.Sprintf(`{"msg":"m%d"}`, i)))
	}

	recent := buffer.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "m3", recent[0].Message)
	assert.Equal(t, "m4", recent[1].Message)
}

func TestLogBufferKeepsUndecodableLines(t *testing.T) {
	buffer := NewLogBuffer(4)
	_, err := buffer.Write([]byte("not json at all"))
	require.NoError(t, err)

	recent := buffer.Recent(0)
	require.Len(t, recent, 1)
	assert.Equal(t, "not json at all", recent[0].Raw)
}

func TestCreateTUILoggerRequiresSink(t *testing.T) {
	_, err := CreateTUILogger(false, "", nil)
	assert.Error(t, err)
}
