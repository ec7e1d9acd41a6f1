package cache

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore implements Store using SQLite for persistence.
// Cached outputs survive process restarts, so an unchanged source
// compiles to a cache hit even on the first run of a new process.
//
// SQLiteStore uses a write-ahead log (WAL) for better concurrent
// performance and automatic checkpointing to balance write performance
// with durability.
type SQLiteStore struct {
	db                 *sql.DB
	dbPath             string
	checkpointInterval time.Duration
	done               chan struct{}
	mu                 sync.RWMutex
	closeOnce          sync.Once

	// preparedStatements contains pre-compiled SQL statements for performance
	putStmt     *sql.Stmt
	getStmt     *sql.Stmt
	touchStmt   *sql.Stmt
	deleteStmt  *sql.Stmt
	countStmt   *sql.Stmt
	cleanupStmt *sql.Stmt
}

// SQLiteStoreConfig configures the SQLite store.
type SQLiteStoreConfig struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// CheckpointInterval is how often to checkpoint the WAL.
	// Default: 5 minutes
	CheckpointInterval time.Duration

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// NewSQLiteStore creates a new SQLite cache store with default settings.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	return NewSQLiteStoreWithConfig(SQLiteStoreConfig{
		DBPath:             dbPath,
		CheckpointInterval: 5 * time.Minute,
		BusyTimeout:        5 * time.Second,
	})
}

// NewSQLiteStoreWithConfig creates a new SQLite store with custom configuration.
func NewSQLiteStoreWithConfig(cfg SQLiteStoreConfig) (*SQLiteStore, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.CheckpointInterval == 0 {
		cfg.CheckpointInterval = 5 * time.Minute
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	// Open database with WAL mode and busy timeout
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &SQLiteStore{
		db:                 db,
		dbPath:             cfg.DBPath,
		checkpointInterval: cfg.CheckpointInterval,
		done:               make(chan struct{}),
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := store.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	// Start background checkpoint goroutine
	go store.checkpointLoop()

	return store, nil
}

// initSchema creates the database schema if it doesn't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS compile_cache (
		source_hash TEXT PRIMARY KEY,
		source_path TEXT NOT NULL,
		document TEXT NOT NULL,
		output BLOB NOT NULL,
		elements INTEGER NOT NULL,
		variables INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		last_used INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_cache_last_used ON compile_cache(last_used);
	`

	_, err := s.db.Exec(schema)
	return err
}

// prepareStatements prepares SQL statements for reuse.
func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.putStmt, err = s.db.Prepare(`
		INSERT INTO compile_cache (source_hash, source_path, document, output, elements, variables, created_at, last_used)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (source_hash) DO UPDATE SET
			source_path = excluded.source_path,
			document = excluded.document,
			output = excluded.output,
			elements = excluded.elements,
			variables = excluded.variables,
			last_used = excluded.last_used
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare put statement: %w", err)
	}

	s.getStmt, err = s.db.Prepare(`
		SELECT source_hash, source_path, document, output, elements, variables, created_at, last_used
		FROM compile_cache
		WHERE source_hash = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare get statement: %w", err)
	}

	s.touchStmt, err = s.db.Prepare(`
		UPDATE compile_cache SET last_used = ? WHERE source_hash = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare touch statement: %w", err)
	}

	s.deleteStmt, err = s.db.Prepare(`
		DELETE FROM compile_cache WHERE source_hash = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}

	s.countStmt, err = s.db.Prepare(`
		SELECT COUNT(*) FROM compile_cache
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare count statement: %w", err)
	}

	s.cleanupStmt, err = s.db.Prepare(`
		DELETE FROM compile_cache WHERE last_used < ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare cleanup statement: %w", err)
	}

	return nil
}

// Put stores a cache entry keyed by its source hash.
func (s *SQLiteStore) Put(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("entry cannot be nil")
	}
	if entry.SourceHash == "" {
		return fmt.Errorf("source hash cannot be empty")
	}
	if len(entry.Output) == 0 {
		return fmt.Errorf("output cannot be empty")
	}

	now := time.Now()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	if entry.LastUsed.IsZero() {
		entry.LastUsed = now
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.putStmt.ExecContext(ctx,
		entry.SourceHash,
		entry.SourcePath,
		entry.Document,
		entry.Output,
		entry.Elements,
		entry.Variables,
		entry.CreatedAt.Unix(),
		entry.LastUsed.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to store entry: %w", err)
	}

	return nil
}

// Get retrieves the entry for a source hash and marks it used.
func (s *SQLiteStore) Get(ctx context.Context, sourceHash string) (*Entry, error) {
	if sourceHash == "" {
		return nil, fmt.Errorf("source hash cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		entry     Entry
		createdAt int64
		lastUsed  int64
	)

	err := s.getStmt.QueryRowContext(ctx, sourceHash).Scan(
		&entry.SourceHash,
		&entry.SourcePath,
		&entry.Document,
		&entry.Output,
		&entry.Elements,
		&entry.Variables,
		&createdAt,
		&lastUsed,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load entry: %w", err)
	}

	entry.CreatedAt = time.Unix(createdAt, 0)
	entry.LastUsed = time.Now()

	if _, err := s.touchStmt.ExecContext(ctx, entry.LastUsed.Unix(), sourceHash); err != nil {
		return nil, fmt.Errorf("failed to touch entry: %w", err)
	}

	return &entry, nil
}

// Delete removes the entry for a source hash.
func (s *SQLiteStore) Delete(ctx context.Context, sourceHash string) error {
	if sourceHash == "" {
		return fmt.Errorf("source hash cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.deleteStmt.ExecContext(ctx, sourceHash); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	return nil
}

// Len returns the number of cached entries.
func (s *SQLiteStore) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.countStmt.QueryRowContext(ctx).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}

	return count, nil
}

// Cleanup removes entries not used since the given time.
func (s *SQLiteStore) Cleanup(ctx context.Context, olderThan time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.cleanupStmt.ExecContext(ctx, olderThan.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(deleted), nil
}

// Close releases any resources held by the store.
// Close is idempotent and safe to call multiple times.
func (s *SQLiteStore) Close() error {
	var closeErr error

	s.closeOnce.Do(func() {
		// Signal checkpoint goroutine to stop
		close(s.done)

		for _, stmt := range []*sql.Stmt{
			s.putStmt, s.getStmt, s.touchStmt, s.deleteStmt, s.countStmt, s.cleanupStmt,
		} {
			if stmt != nil {
				stmt.Close()
			}
		}

		if s.db != nil {
			// Run final checkpoint
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			closeErr = s.db.Close()
		}
	})

	return closeErr
}

// checkpointLoop runs periodic WAL checkpoints.
func (s *SQLiteStore) checkpointLoop() {
	ticker := time.NewTicker(s.checkpointInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(PASSIVE)")
		case <-s.done:
			return
		}
	}
}
