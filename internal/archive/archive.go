// Package archive keeps a local history of benchmark results in an
// embedded SQLite database, so successive runs of the same benchmark can be
// tracked over time.
//
// The database runs in embedded mode (ncruces/go-sqlite3) with WAL for
// concurrent readers. Each archived entry stores the headline statistics
// plus the benchmark's complete JSON record, so any entry can be inspected
// with full fidelity later.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB wraps the archive database connection.
type DB struct {
	conn *sql.DB
	path string
}

// Entry is one archived benchmark result.
type Entry struct {
	ID         int64
	Name       string
	Unit       string
	Median     *float64 // nil for calibration-only benchmarks
	StdDev     *float64 // nil when fewer than two samples
	RunCount   int
	SampleSum  int
	RecordedAt time.Time
	Document   string // benchmark JSON record
}

// Open creates or opens the archive database at path. The parent directory
// is created when missing. The caller must Close() the returned DB.
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping archive: %w", err)
	}

	conn.SetMaxOpenConns(4)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(5 * time.Minute)

	db := &DB{conn: conn, path: path}

	if _, err := db.conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := db.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the connection, checkpointing the WAL first.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	if _, err := db.conn.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to checkpoint WAL: %v\n", err)
	}
	if err := db.conn.Close(); err != nil {
		return fmt.Errorf("failed to close archive: %w", err)
	}
	db.conn = nil
	return nil
}

// initSchema creates the results table and indexes. Idempotent.
func (db *DB) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS results (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL,
		unit        TEXT NOT NULL,
		median      REAL,
		stddev      REAL,
		nrun        INTEGER NOT NULL,
		nsample     INTEGER NOT NULL,
		recorded_at TEXT NOT NULL,
		document    TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_results_name ON results(name);
	CREATE INDEX IF NOT EXISTS idx_results_recorded ON results(name, recorded_at);
	`
	if _, err := db.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize archive schema: %w", err)
	}
	return nil
}

// Record inserts one archived entry. RecordedAt defaults to now.
func (db *DB) Record(ctx context.Context, e Entry) (int64, error) {
	if e.Name == "" {
		return 0, fmt.Errorf("entry name is required")
	}
	if e.Document == "" {
		return 0, fmt.Errorf("entry document is required")
	}
	recordedAt := e.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	query := `
	INSERT INTO results (name, unit, median, stddev, nrun, nsample, recorded_at, document)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := db.conn.ExecContext(ctx, query,
		e.Name,
		e.Unit,
		e.Median,
		e.StdDev,
		e.RunCount,
		e.SampleSum,
		recordedAt.UTC().Format(time.RFC3339),
		e.Document,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}

// History returns the archived entries for one benchmark name, oldest
// first.
func (db *DB) History(ctx context.Context, name string) ([]Entry, error) {
	query := `
	SELECT id, name, unit, median, stddev, nrun, nsample, recorded_at, document
	FROM results WHERE name = ? ORDER BY recorded_at, id
	`
	rows, err := db.conn.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// All returns every archived entry, ordered by name then time.
func (db *DB) All(ctx context.Context) ([]Entry, error) {
	query := `
	SELECT id, name, unit, median, stddev, nrun, nsample, recorded_at, document
	FROM results ORDER BY name, recorded_at, id
	`
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Names returns the distinct benchmark names present in the archive.
func (db *DB) Names(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT DISTINCT name FROM results ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var recordedAt string
		if err := rows.Scan(&e.ID, &e.Name, &e.Unit, &e.Median, &e.StdDev,
			&e.RunCount, &e.SampleSum, &recordedAt, &e.Document); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		t, err := time.Parse(time.RFC3339, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid recorded_at %q: %w", recordedAt, err)
		}
		e.RecordedAt = t
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
