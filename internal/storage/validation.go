package storage

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/doccrop/farm-assist/internal/common"
	"github.com/doccrop/farm-assist/internal/model"
)

// normalizeEntry applies the creation defaults and validates the result.
// Shared by both backends so their contracts cannot drift.
func normalizeEntry(e model.Entry) (model.Entry, error) {
	if strings.TrimSpace(e.Date) == "" {
		e.Date = time.Now().UTC().Format("2006-01-02")
	}
	if e.Type == "" {
		e.Type = model.TypeExpense
	}
	if !model.ValidType(e.Type) {
		return e, fmt.Errorf("%w: type must be %q or %q, got %q",
			common.ErrValidation, model.TypeExpense, model.TypeIncome, e.Type)
	}
	if math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) {
		return e, fmt.Errorf("%w: amount must be a finite number", common.ErrValidation)
	}
	if e.Amount < 0 {
		return e, fmt.Errorf("%w: amount must not be negative", common.ErrValidation)
	}
	if e.Category == "" {
		e.Category = "general"
	}
	return e, nil
}

// normalizeNote applies the note creation defaults.
func normalizeNote(n model.Note) model.Note {
	n.Title = strings.TrimSpace(n.Title)
	if n.Title == "" {
		n.Title = "Untitled"
	}
	n.Content = strings.TrimSpace(n.Content)
	if n.CreatedAt == "" {
		n.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return n
}
