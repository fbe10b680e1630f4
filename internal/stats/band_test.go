package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBand(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     string
	}{
		{0, "0-10"},
		{9.99, "0-10"},
		{10, "10-20"},
		{19.99, "10-20"},
		{50, "50-60"},
		{89.99, "80-90"},
		{90, "90-100"},
		{95.5, "90-100"},
		{100, "90-100"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Band(tt.accuracy), "accuracy %v", tt.accuracy)
	}
}

func TestBandCoversFullRangeWithoutGaps(t *testing.T) {
	// every value in [0,100] lands in exactly one of the declared bands
	declared := make(map[string]bool, len(Bands))
	for _, b := range Bands {
		declared[b] = true
	}
	for x := 0.0; x <= 100.0; x += 0.25 {
		assert.True(t, declared[Band(x)], "accuracy %v fell outside declared bands", x)
	}
}

func TestPassesFilter(t *testing.T) {
	grp := &QueryGroup{Query: "Wireless Headphones", Accuracy: 85.0}

	tests := []struct {
		name string
		term string
		band string
		want bool
	}{
		{"no filters", "", "all", true},
		{"empty band treated as all", "", "", true},
		{"matching substring", "headph", "all", true},
		{"case-insensitive substring", "WIRELESS", "all", true},
		{"non-matching substring", "keyboard", "all", false},
		{"matching band", "", "80-90", true},
		{"non-matching band", "", "90-100", false},
		{"both must pass", "wireless", "90-100", false},
		{"both pass", "wireless", "80-90", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PassesFilter(grp, tt.term, tt.band))
		})
	}
}
