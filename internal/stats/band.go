package stats

import (
	"fmt"
	"strings"
)

// Bands lists the accuracy bands shown in the dashboard filter, highest
// first.
var Bands = []string{
	"90-100", "80-90", "70-80", "60-70", "50-60",
	"40-50", "30-40", "20-30", "10-20", "0-10",
}

// Band maps an accuracy percentage to its display band. Intervals are
// half-open [low, high) except the top band, which is closed [90, 100].
func Band(accuracy float64) string {
	if accuracy >= 90 {
		return "90-100"
	}
	for lo := 80; lo >= 10; lo -= 10 {
		if accuracy >= float64(lo) {
			return fmt.Sprintf("%d-%d", lo, lo+10)
		}
	}
	return "0-10"
}

// PassesFilter reports whether a group survives the dashboard's free-text
// and band filters. The search term matches case-insensitively as a
// substring of the query text; band "all" or empty disables band filtering.
func PassesFilter(g *QueryGroup, term, band string) bool {
	if term != "" && !strings.Contains(strings.ToLower(g.Query), strings.ToLower(term)) {
		return false
	}
	if band != "" && band != "all" && Band(g.Accuracy) != band {
		return false
	}
	return true
}
