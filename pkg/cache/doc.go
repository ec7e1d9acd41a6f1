// Package cache provides content-addressed storage for compiled output.
//
// # Overview
//
// The cache is keyed by the SHA-256 hash of the source bytes: an
// unchanged source file maps to the same hash and skips the compile
// pipeline entirely. Two implementations are provided:
//
//   - Memory: fast in-process storage, no persistence
//   - SQLite: file-based persistence, hits survive restarts
//
// # Usage
//
//	store, err := cache.NewSQLiteStore("data/kryonc-cache.db")
//	defer store.Close()
//
//	hash := cache.Hash(source)
//	if entry, _ := store.Get(ctx, hash); entry != nil {
//	    return entry.Output // cache hit
//	}
//
//	// ... compile ...
//
//	store.Put(ctx, &cache.Entry{
//	    SourceHash: hash,
//	    SourcePath: "app.kry.yaml",
//	    Document:   "app",
//	    Output:     compiled,
//	})
//
// # Thread Safety
//
// All stores are thread-safe and support concurrent access from multiple
// goroutines. Locking is handled internally by each store.
package cache
