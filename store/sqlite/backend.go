package sqlite

import (
	"context"
	"database/sql"
	"sync"

	"github.com/mwantia/snapshot/log"
	"github.com/tidwall/btree"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteBackend persists snapshot records in two tables:
//
// snapshot_records holds one row per record with its summary.
// snapshot_entries holds the flattened tree of every record in visit order.
//
// Record IDs are additionally kept in an in-memory B-tree, loaded on Open,
// so that existence checks do not need a query.
type SQLiteBackend struct {
	mu     sync.RWMutex
	db     *sql.DB
	log    *log.Logger
	closed bool

	// In-memory B-tree mapping record ID to root path
	ids *btree.Map[string, string]
}

type Options struct {
	Logger      *log.Logger
	JournalMode string
}

type Option func(*Options) error

// WithLogger sets the logger used for schema and query diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(o *Options) error {
		if logger != nil {
			o.Logger = logger
		}
		return nil
	}
}

// WithJournalMode overrides the default WAL journal mode.
func WithJournalMode(mode string) Option {
	return func(o *Options) error {
		o.JournalMode = mode
		return nil
	}
}

// NewSQLiteBackend creates a new SQLite-backed snapshot store.
// The dbPath can be ":memory:" for an in-memory database or a file path.
func NewSQLiteBackend(dbPath string, opts ...Option) (*SQLiteBackend, error) {
	options := &Options{
		Logger:      log.NewNop(),
		JournalMode: "WAL",
	}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// A single connection keeps ":memory:" databases alive and shared.
	db.SetMaxOpenConns(1)

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode = " + options.JournalMode); err != nil {
		db.Close()
		return nil, err
	}

	backend := &SQLiteBackend{
		db:  db,
		log: options.Logger.Named("sqlite"),
		ids: btree.NewMap[string, string](0),
	}

	if err := backend.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return backend, nil
}

// initSchema creates the database schema.
func (sb *SQLiteBackend) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshot_records (
		id TEXT PRIMARY KEY,
		root_path TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		directories INTEGER NOT NULL DEFAULT 0,
		files INTEGER NOT NULL DEFAULT 0,
		missing INTEGER NOT NULL DEFAULT 0,
		unavailable INTEGER NOT NULL DEFAULT 0,
		bytes INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS snapshot_entries (
		record_id TEXT NOT NULL REFERENCES snapshot_records(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		path TEXT NOT NULL,
		parent TEXT NOT NULL,
		type INTEGER NOT NULL,
		size INTEGER NOT NULL DEFAULT 0,
		mode INTEGER NOT NULL DEFAULT 0,
		modify_time INTEGER NOT NULL DEFAULT 0,
		access INTEGER NOT NULL DEFAULT 0,
		fingerprint TEXT NOT NULL DEFAULT '',
		reason TEXT NOT NULL DEFAULT '',
		is_root INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (record_id, position)
	);
	CREATE INDEX IF NOT EXISTS idx_snapshot_entries_path ON snapshot_entries(record_id, path);
	`

	_, err := sb.db.Exec(schema)
	return err
}

// Returns the identifier name defined for this backend
func (*SQLiteBackend) Name() string {
	return "sqlite"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (sb *SQLiteBackend) Open(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	// Verify database connection
	if err := sb.db.PingContext(ctx); err != nil {
		return err
	}

	// Load all record IDs into memory B-tree
	rows, err := sb.db.QueryContext(ctx, "SELECT id, root_path FROM snapshot_records")
	if err != nil {
		return err
	}
	defer rows.Close()

	sb.ids.Clear()
	for rows.Next() {
		var id, rootPath string
		if err := rows.Scan(&id, &rootPath); err != nil {
			return err
		}
		sb.ids.Set(id, rootPath)
	}

	sb.log.Debug("Loaded %d records", sb.ids.Len())
	return rows.Err()
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (sb *SQLiteBackend) Close(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.closed {
		return nil
	}

	sb.closed = true
	sb.ids.Clear()
	return sb.db.Close()
}
