package stats

import (
	"strings"

	"github.com/mpavlovic/rankwatch/pkg/utils"
)

// GroupRows folds flat report rows into per-query aggregates. A row enters
// the denominator only when its expected name is non-empty after trimming;
// rows that exist purely to report an unexpected product at a slot stay
// out of the math. Status bucketing trims and lowercases, and anything
// outside the three recognized buckets is left uncounted, which is how
// "No Response" placeholder rows stay neutral.
func GroupRows(rows []FlatRow) *Groups {
	g := &Groups{ByQuery: make(map[string]*QueryGroup)}

	for _, row := range rows {
		grp, ok := g.ByQuery[row.Query]
		if !ok {
			grp = &QueryGroup{Query: row.Query}
			g.ByQuery[row.Query] = grp
			g.Order = append(g.Order, row.Query)
		}
		grp.Details = append(grp.Details, row)

		// first non-empty value wins, never overwritten
		if grp.FirstPageCount == "" && strings.TrimSpace(row.FirstPageCount) != "" {
			grp.FirstPageCount = row.FirstPageCount
		}
		if grp.FirstPageCoverage == "" && strings.TrimSpace(row.FirstPageCoverage) != "" {
			grp.FirstPageCoverage = row.FirstPageCoverage
		}

		if strings.TrimSpace(row.ExpectedName) == "" {
			continue
		}
		grp.TotalExpected++

		switch strings.ToLower(strings.TrimSpace(row.Status)) {
		case "match":
			grp.Matches++
		case "mismatch":
			grp.Mismatches++
		case "not match":
			grp.NotMatch++
		}
	}

	for _, q := range g.Order {
		grp := g.ByQuery[q]
		grp.Accuracy = Accuracy(grp.Matches, grp.TotalExpected)
	}
	return g
}

// Accuracy is the exact-rank match percentage rounded to two decimals.
// Zero expected products yields 0.
func Accuracy(matches, totalExpected int) float64 {
	if totalExpected <= 0 {
		return 0
	}
	return utils.RoundDecimal(float64(matches)/float64(totalExpected)*100, 2)
}

// ComputeOverall folds per-query groups into run totals. The first-page
// totals are re-summed from match counts instead of being parsed out of
// the per-query first-page figures, so the overall coverage tracks the
// overall accuracy exactly; the upstream report format depends on that.
func ComputeOverall(g *Groups) Overall {
	o := Overall{TotalQueries: len(g.Order)}
	for _, q := range g.Order {
		grp := g.ByQuery[q]
		o.TotalProducts += grp.TotalExpected
		o.TotalMatches += grp.Matches
		o.TotalMismatches += grp.Mismatches
	}
	o.AverageAccuracy = Accuracy(o.TotalMatches, o.TotalProducts)
	o.FirstPage = FirstPageTracking{
		TotalFound:      o.TotalMatches,
		TotalExpected:   o.TotalProducts,
		AverageCoverage: Accuracy(o.TotalMatches, o.TotalProducts),
	}
	return o
}
