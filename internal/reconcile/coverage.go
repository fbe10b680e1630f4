package reconcile

import (
	"strings"

	"github.com/mpavlovic/rankwatch/internal/expect"
	"github.com/mpavlovic/rankwatch/pkg/utils"
)

// DefaultPageSize is the result-page size assumed when a plan does not set
// one.
const DefaultPageSize = 24

// CoveredProduct is one expected product found within the first page.
type CoveredProduct struct {
	ExpectedName   string `json:"expectedName"`
	ExpectedSKU    string `json:"expectedSku"`
	ActualPosition int    `json:"actualPosition"`
}

// Coverage reports how many expected products appear within the first page
// of results, regardless of exact rank.
type Coverage struct {
	FoundOnFirstPage int              `json:"foundOnFirstPage"`
	TotalExpected    int              `json:"totalExpected"`
	Found            []CoveredProduct `json:"foundProducts"`
}

// Percentage is the coverage ratio as a two-decimal percentage.
func (c *Coverage) Percentage() float64 {
	if c.TotalExpected == 0 {
		return 0
	}
	return utils.RoundDecimal(float64(c.FoundOnFirstPage)/float64(c.TotalExpected)*100, 2)
}

// FirstPageCoverage tests, for each expected entry, SKU membership in the
// first pageSize entries of the actual list. Membership is case-insensitive
// and trimmed, unlike Reconcile. The restriction is by list order, so in
// multi-page mode callers must pass a list that starts with page one.
// Returns nil when expected is empty.
func FirstPageCoverage(expected []expect.Entry, actual []Actual, pageSize int) *Coverage {
	if len(expected) == 0 {
		return nil
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	firstPage := actual
	if len(firstPage) > pageSize {
		firstPage = firstPage[:pageSize]
	}

	cov := &Coverage{TotalExpected: len(expected)}
	for _, e := range expected {
		key := foldSKU(e.SKU)
		for i, a := range firstPage {
			if foldSKU(a.SKU) == key {
				cov.FoundOnFirstPage++
				cov.Found = append(cov.Found, CoveredProduct{
					ExpectedName:   e.Name,
					ExpectedSKU:    e.SKU,
					ActualPosition: i + 1,
				})
				break
			}
		}
	}
	return cov
}

func foldSKU(sku string) string {
	return strings.ToLower(strings.TrimSpace(sku))
}
