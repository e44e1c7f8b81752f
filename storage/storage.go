// Package storage implements the slots where a collection of sets is kept.
//
// A slot holds a single value, the whole serialized collection, under a key.
// All implementations satisfy bricks.Storage: Load returns an error wrapping
// fs.ErrNotExist while nothing has been saved.
package storage

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/bricks"
)

// DefaultKey is the key of the collection in its slot.
const DefaultKey = "lego-set-dashboard-data"

// Slot is a bricks.Storage that may hold resources to release.
type Slot interface {
	bricks.Storage
	io.Closer
}

// Open returns the slot addressed by url, under the given key.
//
// Supported forms are:
//
//	file:<path>   a JSON file (a bare path is a file too)
//	sqlite:<path> a SQLite database
//	redis://...   a Redis server, see redis.ParseURL
//	mem:          a slot in memory, lost at exit
//
// File slots ignore the key: the file is the slot.
func Open(url, key string) (Slot, error) {
	if key == "" {
		key = DefaultKey
	}
	scheme, rest, found := strings.Cut(url, ":")
	if !found || len(scheme) == 1 {
		// a bare path, or a windows drive letter.
		scheme, rest = "file", url
	}
	switch scheme {
	case "file":
		if rest == "" {
			return nil, fmt.Errorf("storage %q: missing file path", url)
		}
		return NewFile(rest), nil
	case "sqlite":
		if rest == "" {
			return nil, fmt.Errorf("storage %q: missing database path", url)
		}
		return OpenSQLite(rest, key)
	case "redis", "rediss":
		return OpenRedis(url, key)
	case "mem":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("storage %q: unknown scheme %q", url, scheme)
	}
}

// nopCloser adds a Close method that does nothing.
type nopCloser struct{}

func (nopCloser) Close() error { return nil }
