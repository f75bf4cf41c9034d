package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// sqliteStore: Store di atas SQLite lokal; cache shell bertahan di
// disk perangkat, tetap bisa dibaca tanpa jaringan.
type sqliteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dsn string) (Store, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = "file:shell-cache.db?_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	s := &sqliteStore{db: db}
	if err := s.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *sqliteStore) init(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cache_entries (
			namespace TEXT NOT NULL,
			url TEXT NOT NULL,
			status INTEGER NOT NULL,
			header_json TEXT NOT NULL,
			body BLOB,
			opaque INTEGER NOT NULL DEFAULT 0,
			stored_at TEXT NOT NULL,
			PRIMARY KEY (namespace, url)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cache_entries_ns ON cache_entries(namespace)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *sqliteStore) Namespaces(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT namespace FROM cache_entries`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func (s *sqliteStore) DeleteNamespace(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE namespace = ?`, name)
	return err
}

func (s *sqliteStore) Put(ctx context.Context, namespace, url string, res *Response) error {
	header, err := json.Marshal(res.Header)
	if err != nil {
		return err
	}
	opaque := 0
	if res.Opaque {
		opaque = 1
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO cache_entries (namespace, url, status, header_json, body, opaque, stored_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(namespace, url) DO UPDATE SET
			status = excluded.status,
			header_json = excluded.header_json,
			body = excluded.body,
			opaque = excluded.opaque,
			stored_at = excluded.stored_at`,
		namespace, url, res.Status, string(header), res.Body, opaque,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *sqliteStore) Match(ctx context.Context, namespace, url string) (*Response, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT status, header_json, body, opaque FROM cache_entries
		WHERE namespace = ? AND url = ?`, namespace, url)

	var (
		status     int
		headerJSON string
		body       []byte
		opaque     int
	)
	if err := row.Scan(&status, &headerJSON, &body, &opaque); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var header map[string]string
	if err := json.Unmarshal([]byte(headerJSON), &header); err != nil {
		return nil, err
	}
	return &Response{URL: url, Status: status, Header: header, Body: body, Opaque: opaque == 1}, nil
}

func (s *sqliteStore) Close() error { return s.db.Close() }
