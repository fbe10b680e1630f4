package reconcile

import "fmt"

// Actual is one product returned by a search backend, at some rank.
// AbsolutePosition is set by multi-page crawlers to
// (page-1)*pageSize + indexOnPage + 1; when zero, the entry's 1-based
// slice index is its rank.
type Actual struct {
	Name             string
	SKU              string
	Page             int
	AbsolutePosition int
}

// rank returns the absolute 1-based rank of the entry at slice index idx.
func rank(a Actual, idx int) int {
	if a.AbsolutePosition > 0 {
		return a.AbsolutePosition
	}
	return idx + 1
}

// Outcome classifies one expected entry after reconciliation.
type Outcome int

const (
	OutcomeNotFound Outcome = iota
	OutcomeExact
	OutcomeFoundElsewhere
)

// Mapping records where one expected product ended up in the actual
// result list.
type Mapping struct {
	ExpectedName     string
	ExpectedSKU      string
	ExpectedPosition int
	ActualPosition   int // 0 when not found
	Page             int // 0 when not found or in single-page mode
	Outcome          Outcome
	Matched          *Actual
}

// StatusLabel renders the report literal for the mapping outcome.
func (m Mapping) StatusLabel() string {
	switch m.Outcome {
	case OutcomeExact:
		return "Exact Match"
	case OutcomeFoundElsewhere:
		return fmt.Sprintf("Found at Position %d", m.ActualPosition)
	default:
		return "Not Found"
	}
}

// DetailStatus classifies what happened at one result slot.
type DetailStatus int

const (
	DetailNone DetailStatus = iota
	DetailExact
	DetailMismatch
	DetailMissing
	DetailNoResponse
)

// Label renders the report literal written to the detail CSV.
func (s DetailStatus) Label() string {
	switch s {
	case DetailExact:
		return "Exact Match"
	case DetailMismatch:
		return "Position Mismatch"
	case DetailMissing:
		return "Missing Product"
	case DetailNoResponse:
		return "No Response"
	default:
		return ""
	}
}

// Bucket renders the aggregation status carried on flat report rows.
func (s DetailStatus) Bucket() string {
	switch s {
	case DetailExact:
		return "Match"
	case DetailMismatch:
		return "Mismatch"
	case DetailMissing:
		return "Not Match"
	case DetailNoResponse:
		return "No Response"
	default:
		return ""
	}
}

// Detail is one slot-centric classification row. Every returned slot gets
// one, even when no expectation claims it, and every expected rank beyond
// the end of the result list gets a Missing Product row.
type Detail struct {
	Position         int
	ActualName       string
	ActualSKU        string
	ExpectedName     string
	ExpectedSKU      string
	ExpectedPosition int // 0 when no expectation claims the slot
	Status           DetailStatus
}

// Occupied reports whether the row describes a slot actually returned by
// the backend, as opposed to a missing or no-response placeholder.
func (d Detail) Occupied() bool {
	return d.Status != DetailMissing && d.Status != DetailNoResponse
}
