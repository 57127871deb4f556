package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileStore persists each key as one JSON blob file under a data directory.
// Writes go through a temp file + rename so a crash mid-write leaves the
// previous blob intact. Only this process writes the directory, so
// last-writer-wins is acceptable.
type FileStore struct {
	dir    string
	logger *zap.Logger
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{
		dir:    dir,
		logger: logger.Named("storage"),
	}, nil
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, key+".json")
}

// Load implements Store.
func (fs *FileStore) Load(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(fs.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

// Save implements Store.
func (fs *FileStore) Save(key string, data []byte) error {
	target := fs.path(key)
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("commit %s: %w", key, err)
	}

	fs.logger.Debug("blob saved",
		zap.String("key", key),
		zap.Int("bytes", len(data)))
	return nil
}
