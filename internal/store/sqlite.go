package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const sqliteFileName = "vlist.sqlite"

// SQLiteKV keeps every key in a single kv table.
type SQLiteKV struct {
	path string
	db   *sql.DB
}

func OpenSQLite(ctx context.Context, dir string) (*SQLiteKV, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("sqlite backend requires a directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, sqliteFileName)
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the TUI keep the db open while CLI commands run in another terminal.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteKV{path: path, db: db}, nil
}

func (s *SQLiteKV) Path() string { return s.path }

func (s *SQLiteKV) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT v FROM kv WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *SQLiteKV) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO kv(k, v) VALUES(?, ?)`, key, value)
	return err
}

func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE k = ?`, key)
	return err
}

func (s *SQLiteKV) Close() error { return s.db.Close() }
