package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Store defines the interface for compiled-output caching.
// Implementations must be thread-safe and support concurrent access.
type Store interface {
	// Put stores a cache entry keyed by its source hash.
	// An existing entry for the same hash is replaced.
	Put(ctx context.Context, entry *Entry) error

	// Get retrieves the entry for a source hash and marks it used.
	// Returns nil if no entry exists. Returns error on system failure.
	Get(ctx context.Context, sourceHash string) (*Entry, error)

	// Delete removes the entry for a source hash.
	// No-op if the entry doesn't exist.
	Delete(ctx context.Context, sourceHash string) error

	// Len returns the number of cached entries.
	Len(ctx context.Context) (int, error)

	// Cleanup removes entries not used since the given time.
	// Returns the number of entries deleted and any error.
	Cleanup(ctx context.Context, olderThan time.Time) (int, error)

	// Close releases any resources held by the store.
	// The store should not be used after calling Close.
	Close() error
}

// Entry is a single cached compile output.
type Entry struct {
	// SourceHash is the hex SHA-256 of the source bytes.
	SourceHash string

	// SourcePath is the path of the source file that produced this entry.
	SourcePath string

	// Document is the document name.
	Document string

	// Output is the compiled binary.
	Output []byte

	// Elements is the number of elements in the compiled output.
	Elements int

	// Variables is the number of variables in the compiled output.
	Variables int

	// CreatedAt is when this entry was first stored.
	CreatedAt time.Time

	// LastUsed is when this entry was last retrieved or stored.
	LastUsed time.Time
}

// Hash returns the hex SHA-256 digest of source bytes, the key used
// throughout the cache.
func Hash(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}
