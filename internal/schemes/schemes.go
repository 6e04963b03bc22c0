// Package schemes loads and filters the government-scheme catalog.
//
// The catalog is a side-loaded JSON document read on every request; there is
// no caching so edits to the file show up immediately.
package schemes

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Scheme is a free-form record. Only state and district participate in
// filtering; every other field is passed through untouched.
type Scheme map[string]any

type catalog struct {
	Schemes []Scheme `json:"schemes"`
}

// Filter loads the catalog at path and returns every scheme matching the
// optional state and district, preserving file order. Comparison is
// trimmed and case-insensitive; a blank filter passes everything. A missing
// catalog file yields an empty result, not an error.
func Filter(path, state, district string) ([]Scheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Scheme{}, nil
		}
		return nil, fmt.Errorf("failed to read schemes file: %w", err)
	}

	var c catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse schemes file: %w", err)
	}

	state = normalize(state)
	district = normalize(district)

	results := make([]Scheme, 0, len(c.Schemes))
	for _, s := range c.Schemes {
		if matches(s, "state", state) && matches(s, "district", district) {
			results = append(results, s)
		}
	}
	return results, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func matches(s Scheme, field, want string) bool {
	if want == "" {
		return true
	}
	got, _ := s[field].(string)
	return normalize(got) == want
}
