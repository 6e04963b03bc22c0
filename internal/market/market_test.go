package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRates(t *testing.T) {
	tests := []struct {
		name string
		crop string
		want Rates
	}{
		{name: "known crop", crop: "Rice", want: Rates{Min: 2000, Max: 2500, Expected: 2300}},
		{name: "unknown crop falls back to wheat", crop: "Unknown", want: Rates{Min: 1800, Max: 2200, Expected: 2050}},
		{name: "blank crop falls back to wheat", crop: "  ", want: Rates{Min: 1800, Max: 2200, Expected: 2050}},
		{name: "matching is case-sensitive", crop: "rice", want: Rates{Min: 1800, Max: 2200, Expected: 2050}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetRates(tt.crop))
		})
	}
}

func TestGetRatesUnknownEqualsWheat(t *testing.T) {
	assert.Equal(t, GetRates("Wheat"), GetRates("Unknown"))
}
