// Package model defines the domain types shared between the storage layer
// and the web layer.
package model

// Ledger entry types.
const (
	TypeExpense = "expense"
	TypeIncome  = "income"
)

// Entry is one ledger record: a single income or expense line.
//
// ID is assigned by the active backend and is opaque to callers: SQLite
// produces decimal rowids, the document backend produces 24-hex object ids.
// Never assume a numeric shape.
type Entry struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"` // calendar date, YYYY-MM-DD
	Type     string  `json:"type"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note"`
}

// ValidType reports whether t is one of the two ledger entry types.
func ValidType(t string) bool {
	return t == TypeExpense || t == TypeIncome
}
