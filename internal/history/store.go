// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists processed queries in a local SQLite database so
// earlier searches can be reviewed and repeated.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/genoscope/pkg/types"
)

const defaultMaxEntries = 200

// Entry is one recorded query with the intent that was extracted from it
// and a short digest of what came back.
type Entry struct {
	ID           int64
	QueryText    string
	Organism     string
	DataType     string
	Condition    string
	RecordCount  int
	TopAccession string
	CreatedAt    time.Time
}

// Store manages the query history SQLite database.
type Store struct {
	db         *sql.DB
	maxEntries int
}

// NewStore opens or creates the history database at cfg.Path, creating the
// schema and parent directory if needed.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("history database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}

	s := &Store{db: db, maxEntries: maxEntries}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS queries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query_text TEXT NOT NULL,
			organism TEXT,
			data_type TEXT,
			condition_term TEXT,
			record_count INTEGER NOT NULL,
			top_accession TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_queries_created_at ON queries(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores the outcome of a processed query and prunes the table down
// to the configured maximum number of entries.
func (s *Store) Record(ctx context.Context, resp *types.Response) error {
	topAccession := ""
	if len(resp.Records) > 0 {
		topAccession = resp.Records[0].Accession
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO queries (query_text, organism, data_type, condition_term, record_count, top_accession, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		resp.OriginalQuery, resp.Intent.Organism, string(resp.Intent.DataType),
		resp.Intent.Condition, len(resp.Records), topAccession,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM queries WHERE id NOT IN (
			SELECT id FROM queries ORDER BY id DESC LIMIT ?
		)`, s.maxEntries,
	)
	if err != nil {
		return fmt.Errorf("pruning history: %w", err)
	}

	return tx.Commit()
}

// Recent returns up to limit entries, newest first. A non-positive limit
// uses the store's configured maximum.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxEntries
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query_text, organism, data_type, condition_term, record_count, top_accession, created_at
		 FROM queries ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.QueryText, &e.Organism, &e.DataType,
			&e.Condition, &e.RecordCount, &e.TopAccession, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history rows: %w", err)
	}

	return entries, nil
}
