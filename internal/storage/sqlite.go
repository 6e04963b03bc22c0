package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/doccrop/farm-assist/internal/common"
	"github.com/doccrop/farm-assist/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements Store on an embedded single-file database. It is
// the default backend when no MongoDB URI is configured. Notes are not
// available here.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens the database at dbPath, creating the file and its
// directory if needed, and bootstraps the schema. Bootstrap is idempotent.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("%w: database path", common.ErrMissingConfig)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{db: db, dbPath: dbPath}
	if err := s.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			type TEXT CHECK(type IN ('expense','income')) NOT NULL,
			category TEXT NOT NULL,
			amount REAL NOT NULL,
			note TEXT
		)`)
	if err != nil {
		return fmt.Errorf("failed to create entries table: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// AddEntry inserts a ledger entry and returns the new rowid as a string.
func (s *SQLiteStore) AddEntry(ctx context.Context, e model.Entry) (string, error) {
	e, err := normalizeEntry(e)
	if err != nil {
		return "", err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (date, type, category, amount, note) VALUES (?, ?, ?, ?, ?)`,
		e.Date, e.Type, e.Category, e.Amount, e.Note)
	if err != nil {
		return "", fmt.Errorf("failed to insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("failed to read inserted id: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

// ListEntries returns every entry, newest date first, same-day ties broken
// by the higher rowid.
func (s *SQLiteStore) ListEntries(ctx context.Context) ([]model.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, type, category, amount, COALESCE(note, '')
		FROM entries
		ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]model.Entry, 0)
	for rows.Next() {
		var e model.Entry
		var id int64
		if err := rows.Scan(&id, &e.Date, &e.Type, &e.Category, &e.Amount, &e.Note); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		e.ID = strconv.FormatInt(id, 10)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}

// DeleteEntry removes the entry with the given rowid. An id that parses but
// matches no row still succeeds; only a non-numeric id is an error.
func (s *SQLiteStore) DeleteEntry(ctx context.Context, id string) error {
	numeric, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q is not a numeric id", common.ErrInvalidID, id)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, numeric); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

// AddNote is unavailable on the SQLite backend.
func (s *SQLiteStore) AddNote(_ context.Context, _ model.Note) (string, error) {
	return "", fmt.Errorf("%w: notes require the document backend", common.ErrUnsupported)
}

// ListNotes is unavailable on the SQLite backend.
func (s *SQLiteStore) ListNotes(_ context.Context) ([]model.Note, error) {
	return nil, fmt.Errorf("%w: notes require the document backend", common.ErrUnsupported)
}
