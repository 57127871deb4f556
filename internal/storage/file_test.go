package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileStoreRoundTrip(t *testing.T) {
	fs, err := NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	_, ok, err := fs.Load("watchlist")
	require.NoError(t, err)
	assert.False(t, ok, "missing key must report absent, not error")

	require.NoError(t, fs.Save("watchlist", []byte(`{"entries":[]}`)))

	data, ok, err := fs.Load("watchlist")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"entries":[]}`, string(data))
}

func TestFileStoreOverwrite(t *testing.T) {
	fs, err := NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, fs.Save("k", []byte("one")))
	require.NoError(t, fs.Save("k", []byte("two")))

	data, ok, err := fs.Load("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "two", string(data))
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, fs.Save("k", []byte("v")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k.json", filepath.Base(entries[0].Name()))
}

func TestFileStoreCreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	_, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)

	_, statErr := os.Stat(dir)
	assert.NoError(t, statErr)
}
