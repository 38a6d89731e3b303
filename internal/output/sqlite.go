package output

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harrison/davfind/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Run describes a search run recorded alongside its matches.
type Run struct {
	ID              string
	Search          string
	StartedAt       time.Time
	FinishedAt      time.Time
	Identifiers     int
	ListingFailures int
}

// Store is a SQLite sink for matches, one row set per run.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the database at dbPath.
// ":memory:" opens an in-memory database.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores the run and all of its matches in one transaction.
func (s *Store) RecordRun(ctx context.Context, run Run, matches []models.Match) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, search, started_at, finished_at, identifiers, listing_failures) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Search, run.StartedAt.UTC(), run.FinishedAt.UTC(), run.Identifiers, run.ListingFailures,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO matches (run_id, identifier, created, name, size, modified, etag, is_dir, content_type, path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare match insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range matches {
		rec := m.Record()
		_, err := stmt.ExecContext(ctx,
			run.ID, m.Identifier, rec[0], m.Name, m.Size, rec[3], m.ETag, m.IsDir, m.ContentType, m.Path)
		if err != nil {
			return fmt.Errorf("insert match %s: %w", m.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Matches returns the matches recorded for runID in insertion order.
// Times are parsed back from their stored text form.
func (s *Store) Matches(ctx context.Context, runID string) ([]models.Match, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT identifier, created, name, size, modified, etag, is_dir, content_type, path
		 FROM matches WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var matches []models.Match
	for rows.Next() {
		var (
			m                 models.Match
			created, modified sql.NullString
			etag, contentType sql.NullString
		)
		if err := rows.Scan(&m.Identifier, &created, &m.Name, &m.Size, &modified, &etag, &m.IsDir, &contentType, &m.Path); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.ETag = etag.String
		m.ContentType = contentType.String
		if created.String != "" {
			m.Created, _ = time.Parse(time.RFC3339, created.String)
		}
		if modified.String != "" {
			m.Modified, _ = time.Parse(time.RFC1123, modified.String)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return matches, nil
}

// CountByIdentifier returns the number of matches per identifier for runID.
func (s *Store) CountByIdentifier(ctx context.Context, runID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT identifier, COUNT(*) FROM matches WHERE run_id = ? GROUP BY identifier`, runID)
	if err != nil {
		return nil, fmt.Errorf("query counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// Runs returns every recorded run, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, search, started_at, finished_at, identifiers, listing_failures
		 FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Search, &r.StartedAt, &r.FinishedAt, &r.Identifiers, &r.ListingFailures); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
