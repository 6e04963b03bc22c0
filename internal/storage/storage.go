// Package storage provides the data persistence layer for the farm assistant.
//
// Exactly one backend is active for the lifetime of the process: the
// embedded SQLite store when no MongoDB URI is configured, the document
// store otherwise. Both backends satisfy the same ordering and validation
// contracts; entry identifiers are opaque strings whose shape each backend
// owns internally.
package storage

import (
	"context"
	"strings"

	"github.com/doccrop/farm-assist/internal/model"
)

// EntryStore is the ledger contract every backend satisfies.
type EntryStore interface {
	// AddEntry persists a ledger entry and returns its backend-native id.
	AddEntry(ctx context.Context, e model.Entry) (string, error)

	// ListEntries returns every entry, sorted by date descending, ties
	// broken by id descending. The result is fully materialized.
	ListEntries(ctx context.Context) ([]model.Entry, error)

	// DeleteEntry removes the entry with the given id. A well-formed id
	// that matches nothing still succeeds; a malformed id fails with
	// common.ErrInvalidID.
	DeleteEntry(ctx context.Context, id string) error
}

// NoteStore is the notes contract. Only the document backend implements it
// for real; the SQLite backend answers with common.ErrUnsupported.
type NoteStore interface {
	AddNote(ctx context.Context, n model.Note) (string, error)

	// ListNotes returns every note, sorted by created_at descending.
	ListNotes(ctx context.Context) ([]model.Note, error)
}

// Store is the single handle the web layer holds for the process lifetime.
type Store interface {
	EntryStore
	NoteStore
	Close() error
}

// Config selects and parameterizes a backend.
type Config struct {
	// SQLitePath is the database file used when MongoURI is blank.
	SQLitePath string

	MongoURI        string
	MongoDB         string
	MongoCollection string
	MongoNotes      string
}

// Open chooses the backend from cfg: a non-blank MongoURI selects the
// document store, anything else the embedded SQLite store. Selection
// happens once, before first use; backends are never switched at runtime.
func Open(ctx context.Context, cfg Config) (Store, error) {
	if strings.TrimSpace(cfg.MongoURI) != "" {
		return NewMongoStore(ctx, cfg)
	}
	return NewSQLiteStore(cfg.SQLitePath)
}

// Totals is the aggregate computed over a full entry listing.
type Totals struct {
	Income  float64 `json:"total_income"`
	Expense float64 `json:"total_expense"`
	Profit  float64 `json:"profit"`
}

// ComputeTotals sums a listed sequence. It works uniformly on output from
// either backend; an empty sequence yields zero profit.
func ComputeTotals(entries []model.Entry) Totals {
	var t Totals
	for _, e := range entries {
		switch e.Type {
		case model.TypeIncome:
			t.Income += e.Amount
		case model.TypeExpense:
			t.Expense += e.Amount
		}
	}
	t.Profit = t.Income - t.Expense
	return t
}
