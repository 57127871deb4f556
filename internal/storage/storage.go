// internal/storage/storage.go
package storage

// Store is the local key-value persistence contract. The application treats a
// missing key or a failed load as empty initial state, never as fatal.
type Store interface {
	// Load returns the blob stored under key. The second return is false when
	// the key has never been saved.
	Load(key string) ([]byte, bool, error)
	// Save writes the blob under key, replacing any previous value.
	Save(key string, data []byte) error
}
