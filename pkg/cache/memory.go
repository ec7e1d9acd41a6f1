package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore implements Store using in-memory storage.
// All data is lost when the process exits. Useful for one-shot compiles
// and tests, where persistence across runs adds nothing.
//
// MemoryStore is thread-safe and supports concurrent access.
type MemoryStore struct {
	// entries maps source hash to cache entry.
	entries map[string]*Entry

	// mu protects access to the entries map.
	mu sync.RWMutex

	// maxEntries is the maximum number of entries before eviction.
	maxEntries int
}

// MemoryStoreConfig configures the memory store.
type MemoryStoreConfig struct {
	// MaxEntries is the maximum number of entries to store.
	// The least recently used entry is evicted when the limit is
	// reached. Zero means unlimited.
	// Default: 256
	MaxEntries int
}

// NewMemoryStore creates a new in-memory cache store with default settings.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithConfig(MemoryStoreConfig{MaxEntries: 256})
}

// NewMemoryStoreWithConfig creates a new in-memory store with custom configuration.
func NewMemoryStoreWithConfig(cfg MemoryStoreConfig) *MemoryStore {
	return &MemoryStore{
		entries:    make(map[string]*Entry),
		maxEntries: cfg.MaxEntries,
	}
}

// Put stores a cache entry keyed by its source hash.
func (m *MemoryStore) Put(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("entry cannot be nil")
	}
	if entry.SourceHash == "" {
		return fmt.Errorf("source hash cannot be empty")
	}
	if len(entry.Output) == 0 {
		return fmt.Errorf("output cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[entry.SourceHash]; !exists {
		if m.maxEntries > 0 && len(m.entries) >= m.maxEntries {
			m.evictOldestLocked()
		}
	}

	now := time.Now()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	if entry.LastUsed.IsZero() {
		entry.LastUsed = now
	}

	m.entries[entry.SourceHash] = entry

	return nil
}

// Get retrieves the entry for a source hash and marks it used.
func (m *MemoryStore) Get(ctx context.Context, sourceHash string) (*Entry, error) {
	if sourceHash == "" {
		return nil, fmt.Errorf("source hash cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.entries[sourceHash]
	if !exists {
		return nil, nil
	}

	entry.LastUsed = time.Now()
	return entry, nil
}

// Delete removes the entry for a source hash.
func (m *MemoryStore) Delete(ctx context.Context, sourceHash string) error {
	if sourceHash == "" {
		return fmt.Errorf("source hash cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, sourceHash)
	return nil
}

// Len returns the number of cached entries.
func (m *MemoryStore) Len(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

// Cleanup removes entries not used since the given time.
func (m *MemoryStore) Cleanup(ctx context.Context, olderThan time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deleted := 0
	for hash, entry := range m.entries {
		if entry.LastUsed.Before(olderThan) {
			delete(m.entries, hash)
			deleted++
		}
	}

	return deleted, nil
}

// Close releases any resources held by the store.
func (m *MemoryStore) Close() error {
	return nil
}

// evictOldestLocked evicts the least recently used entry to make room.
// Caller must hold the write lock.
func (m *MemoryStore) evictOldestLocked() {
	var (
		oldestHash  string
		oldestTime  time.Time
		foundOldest bool
	)

	for hash, entry := range m.entries {
		if !foundOldest || entry.LastUsed.Before(oldestTime) {
			oldestHash = hash
			oldestTime = entry.LastUsed
			foundOldest = true
		}
	}

	if foundOldest {
		delete(m.entries, oldestHash)
	}
}
