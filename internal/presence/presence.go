// Package presence answers whether a list of target products was observed
// anywhere across a run's actual result lists, independent of ranking.
package presence

import (
	"strings"

	"github.com/mpavlovic/rankwatch/internal/apperr"
	"github.com/mpavlovic/rankwatch/pkg/utils"
)

// Target identifies one product to look for, by SKU. Name is display-only.
type Target struct {
	Name string
	SKU  string
}

// Product is one observed product from any query's result list.
type Product struct {
	Name string
	SKU  string
}

// Result summarizes a presence check.
type Result struct {
	TotalInput      int     `json:"totalInput"`
	TotalFound      int     `json:"totalFound"`
	TotalMissing    int     `json:"totalMissing"`
	FoundPercentage float64 `json:"foundPercentage"`
}

// Check reports how many target SKUs appear in the pool. The pool is
// deduplicated by lower-cased trimmed SKU, first occurrence wins; a target
// with an empty SKU always counts as missing. An empty target list is a
// precondition violation.
func Check(targets []Target, pool []Product) (*Result, error) {
	if len(targets) == 0 {
		return nil, apperr.NewValidation("presence check requires at least one target product")
	}

	seen := make(map[string]struct{}, len(pool))
	for _, p := range pool {
		key := strings.ToLower(strings.TrimSpace(p.SKU))
		if key == "" {
			continue
		}
		seen[key] = struct{}{}
	}

	res := &Result{TotalInput: len(targets)}
	for _, t := range targets {
		key := strings.ToLower(strings.TrimSpace(t.SKU))
		if key == "" {
			res.TotalMissing++
			continue
		}
		if _, ok := seen[key]; ok {
			res.TotalFound++
		} else {
			res.TotalMissing++
		}
	}

	res.FoundPercentage = utils.RoundDecimal(float64(res.TotalFound)/float64(res.TotalInput)*100, 2)
	return res, nil
}
