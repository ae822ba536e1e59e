// Package history records executed statements in a local SQLite database so
// past runs can be inspected with `esrun history`.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/esrun/esrun/internal/common"
	_ "modernc.org/sqlite"
)

const requestRunsTable = "request_runs"

// Run is a single recorded statement execution.
type Run struct {
	ID         int
	Method     string
	URL        string
	StatusCode int
	Body       *string
	DurationMS int64
	RanAt      string
}

// Store is the run history database. A nil *Store is a valid no-op recorder.
type Store struct {
	db               *sql.DB
	saveResponseBody bool
}

// Open opens (and initializes) the history database at path. An empty path
// uses an in-memory database.
func Open(path string, saveResponseBody bool) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	} else {
		dsn = fmt.Sprintf("file:%s?_busy_timeout=5000", dsn)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}
	// SQLite allows only one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(10 * time.Minute)

	s := &Store{db: db, saveResponseBody: saveResponseBody}
	if err := s.ensure(); err != nil {
		_ = db.Close()
		return nil, err
	}
	common.GetLogger().WithComponent("history").Debug("history database ready", "path", path)
	return s, nil
}

func (s *Store) ensure() error {
	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		method TEXT NOT NULL,
		url TEXT NOT NULL,
		status_code INTEGER NOT NULL,
		body TEXT,
		duration_ms INTEGER NOT NULL,
		ran_at TEXT NOT NULL
	)`, requestRunsTable)
	if _, err := s.db.Exec(q); err != nil {
		return fmt.Errorf("ensure history schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts one executed statement. Recording on a nil store is a no-op
// so callers need no store-enabled branch.
func (s *Store) Record(method, url string, statusCode int, body string, duration time.Duration) error {
	if s == nil || s.db == nil {
		return nil
	}
	var bodyPtr *string
	if s.saveResponseBody {
		bodyPtr = &body
	}
	q := fmt.Sprintf(
		"INSERT INTO %s (method, url, status_code, body, duration_ms, ran_at) VALUES (?, ?, ?, ?, ?, ?)",
		requestRunsTable,
	)
	_, err := s.db.Exec(q, method, url, statusCode, bodyPtr, duration.Milliseconds(), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first, up to limit (0 = 50).
func (s *Store) List(limit int) ([]Run, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	q := fmt.Sprintf(
		"SELECT id, method, url, status_code, body, duration_ms, ran_at FROM %s ORDER BY id DESC LIMIT ?",
		requestRunsTable,
	)
	rows, err := s.db.Query(q, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Method, &r.URL, &r.StatusCode, &r.Body, &r.DurationMS, &r.RanAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
