package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doccrop/farm-assist/internal/common"
	"github.com/doccrop/farm-assist/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestSQLiteStore_AddEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   model.Entry
		wantErr error
		check   func(*testing.T, model.Entry)
	}{
		{
			name:  "expense with all fields",
			entry: model.Entry{Date: "2024-03-01", Type: "expense", Category: "seeds", Amount: 1200.50, Note: "wheat seeds"},
			check: func(t *testing.T, got model.Entry) {
				assert.Equal(t, "2024-03-01", got.Date)
				assert.Equal(t, "expense", got.Type)
				assert.Equal(t, "seeds", got.Category)
				assert.InDelta(t, 1200.50, got.Amount, 1e-9)
				assert.Equal(t, "wheat seeds", got.Note)
			},
		},
		{
			name:  "income entry",
			entry: model.Entry{Date: "2024-03-02", Type: "income", Category: "harvest", Amount: 5000},
			check: func(t *testing.T, got model.Entry) {
				assert.Equal(t, "income", got.Type)
				assert.InDelta(t, 5000.0, got.Amount, 1e-9)
			},
		},
		{
			name:  "defaults applied when fields omitted",
			entry: model.Entry{Amount: 10},
			check: func(t *testing.T, got model.Entry) {
				assert.Equal(t, time.Now().UTC().Format("2006-01-02"), got.Date)
				assert.Equal(t, "expense", got.Type)
				assert.Equal(t, "general", got.Category)
			},
		},
		{
			name:    "unknown type rejected",
			entry:   model.Entry{Type: "transfer", Amount: 10},
			wantErr: common.ErrValidation,
		},
		{
			name:    "negative amount rejected",
			entry:   model.Entry{Type: "expense", Amount: -5},
			wantErr: common.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			ctx := context.Background()

			id, err := store.AddEntry(ctx, tt.entry)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, id)

			entries, err := store.ListEntries(ctx)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, id, entries[0].ID)
			if tt.check != nil {
				tt.check(t, entries[0])
			}
		})
	}
}

func TestSQLiteStore_ListEntriesOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Inserted oldest-date first so listing cannot accidentally rely on
	// insertion order.
	dates := []string{"2024-01-01", "2024-01-02", "2024-01-02", "2023-12-31"}
	ids := make([]string, 0, len(dates))
	for _, d := range dates {
		id, err := store.AddEntry(ctx, model.Entry{Date: d, Type: "expense", Amount: 1})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	entries, err := store.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// Date descending; the later insert wins the same-day tie.
	assert.Equal(t, "2024-01-02", entries[0].Date)
	assert.Equal(t, ids[2], entries[0].ID)
	assert.Equal(t, "2024-01-02", entries[1].Date)
	assert.Equal(t, ids[1], entries[1].ID)
	assert.Equal(t, "2024-01-01", entries[2].Date)
	assert.Equal(t, "2023-12-31", entries[3].Date)
}

func TestSQLiteStore_DeleteEntry(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{name: "existing id", id: ""}, // filled in below with the real id
		{name: "well-formed but nonexistent id succeeds", id: "99999"},
		{name: "non-numeric id rejected", id: "abc", wantErr: common.ErrInvalidID},
		{name: "hex object id rejected", id: "6528f1a2b3c4d5e6f7a8b9c0", wantErr: common.ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			ctx := context.Background()

			id, err := store.AddEntry(ctx, model.Entry{Date: "2024-01-01", Type: "expense", Amount: 1})
			require.NoError(t, err)

			target := tt.id
			if target == "" {
				target = id
			}

			err = store.DeleteEntry(ctx, target)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			entries, err := store.ListEntries(ctx)
			require.NoError(t, err)
			if target == id {
				assert.Empty(t, entries)
			} else {
				assert.Len(t, entries, 1)
			}
		})
	}
}

func TestSQLiteStore_NotesUnsupported(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddNote(ctx, model.Note{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, common.ErrUnsupported)

	_, err = store.ListNotes(ctx)
	assert.ErrorIs(t, err, common.ErrUnsupported)
}

func TestSQLiteStore_SchemaBootstrapIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	_, err = store.AddEntry(context.Background(), model.Entry{Date: "2024-01-01", Type: "income", Amount: 7})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening the same file must not lose data or fail on the existing
	// schema.
	store, err = NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	entries, err := store.ListEntries(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestOpenSelectsSQLiteWhenNoMongoURI(t *testing.T) {
	cfg := Config{SQLitePath: filepath.Join(t.TempDir(), "farm.db")}

	store, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, ok := store.(*SQLiteStore)
	assert.True(t, ok, "expected SQLite backend, got %T", store)
}

func TestSQLiteStore_EmptyPathRejected(t *testing.T) {
	_, err := NewSQLiteStore("  ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrMissingConfig))
}
