package reconcile

import (
	"sort"

	"github.com/mpavlovic/rankwatch/internal/expect"
)

// Reconcile maps every expected entry, in input order, to its rank in the
// actual result list. SKU comparison is exact and case-sensitive; when the
// actual list carries duplicate SKUs the first occurrence wins.
func Reconcile(expected []expect.Entry, actual []Actual) []Mapping {
	type hit struct {
		entry *Actual
		rank  int
	}

	index := make(map[string]hit, len(actual))
	for i := range actual {
		a := &actual[i]
		if _, ok := index[a.SKU]; ok {
			continue
		}
		index[a.SKU] = hit{entry: a, rank: rank(*a, i)}
	}

	mappings := make([]Mapping, 0, len(expected))
	for _, e := range expected {
		m := Mapping{
			ExpectedName:     e.Name,
			ExpectedSKU:      e.SKU,
			ExpectedPosition: e.Position,
		}
		if h, ok := index[e.SKU]; ok {
			m.ActualPosition = h.rank
			m.Page = h.entry.Page
			m.Matched = h.entry
			if h.rank == e.Position {
				m.Outcome = OutcomeExact
			} else {
				m.Outcome = OutcomeFoundElsewhere
			}
		}
		mappings = append(mappings, m)
	}
	return mappings
}

// SlotDetails answers "what happened at rank N". Each returned slot is
// classified against the expectation claiming that exact position, by SKU
// equality; slots nobody expected stay unclassified. Expected ranks beyond
// the end of the result list are appended as Missing Product rows in
// ascending position order.
func SlotDetails(actual []Actual, expectedByPos map[int]expect.Entry) []Detail {
	details := make([]Detail, 0, len(actual))
	for i := range actual {
		a := actual[i]
		d := Detail{
			Position:   rank(a, i),
			ActualName: a.Name,
			ActualSKU:  a.SKU,
		}
		if e, ok := expectedByPos[d.Position]; ok {
			d.ExpectedName = e.Name
			d.ExpectedSKU = e.SKU
			d.ExpectedPosition = e.Position
			if a.SKU == e.SKU {
				d.Status = DetailExact
			} else {
				d.Status = DetailMismatch
			}
		}
		details = append(details, d)
	}

	var missing []int
	for pos := range expectedByPos {
		if pos > len(actual) {
			missing = append(missing, pos)
		}
	}
	sort.Ints(missing)
	for _, pos := range missing {
		e := expectedByPos[pos]
		details = append(details, Detail{
			Position:         pos,
			ExpectedName:     e.Name,
			ExpectedSKU:      e.SKU,
			ExpectedPosition: pos,
			Status:           DetailMissing,
		})
	}
	return details
}

// NoResponseDetails emits one placeholder row per expected entry for a
// query whose search call ultimately failed.
func NoResponseDetails(expected []expect.Entry) []Detail {
	details := make([]Detail, 0, len(expected))
	for _, e := range expected {
		details = append(details, Detail{
			Position:         e.Position,
			ExpectedName:     e.Name,
			ExpectedSKU:      e.SKU,
			ExpectedPosition: e.Position,
			Status:           DetailNoResponse,
		})
	}
	return details
}
