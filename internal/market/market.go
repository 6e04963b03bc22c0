// Package market provides the static mandi price table.
package market

import "strings"

// Rates is the price band for a crop, in INR per quintal.
type Rates struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Expected float64 `json:"expected"`
}

// Fixed demo table. Real price feeds are out of scope.
var mockRates = map[string]Rates{
	"Wheat":   {Min: 1800, Max: 2200, Expected: 2050},
	"Rice":    {Min: 2000, Max: 2500, Expected: 2300},
	"Corn":    {Min: 1500, Max: 1900, Expected: 1750},
	"Soybean": {Min: 2500, Max: 3200, Expected: 2900},
}

// GetRates returns the price band for crop. Matching is exact and
// case-sensitive; unknown or blank crops fall back to Wheat.
func GetRates(crop string) Rates {
	crop = strings.TrimSpace(crop)
	if crop == "" {
		crop = "Wheat"
	}
	if r, ok := mockRates[crop]; ok {
		return r
	}
	return mockRates["Wheat"]
}
