package scene

import (
	"errors"
)

// ErrNotFound is returned by a Storage when a key has no data
var ErrNotFound = errors.New("not found")

// Storage is somewhere durable to keep blobs of data by key.
// Nothing in the project model or the renderer uses a Storage directly;
// callers hand one to a ProjectStore.
type Storage interface {
	// Get the data stored under key, or ErrNotFound
	Get(key string) ([]byte, error)

	// Put data under key, replacing anything already there
	Put(key string, data []byte) error

	// List all keys starting with prefix, sorted
	List(prefix string) ([]string, error)

	// Close releases any held resources
	Close() error
}
