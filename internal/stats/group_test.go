package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRowsBuckets(t *testing.T) {
	rows := []FlatRow{
		{Query: "q1", ExpectedName: "A", Status: "Match"},
		{Query: "q1", ExpectedName: "B", Status: "Mismatch"},
		{Query: "q1", ExpectedName: "C", Status: "Not Match"},
		{Query: "q1", ExpectedName: "D", Status: "No Response"},
		{Query: "q1", ActualName: "unexpected", Status: ""},
	}

	g := GroupRows(rows)
	require.Contains(t, g.ByQuery, "q1")
	grp := g.ByQuery["q1"]

	assert.Equal(t, 4, grp.TotalExpected)
	assert.Equal(t, 1, grp.Matches)
	assert.Equal(t, 1, grp.Mismatches)
	assert.Equal(t, 1, grp.NotMatch)
	assert.Len(t, grp.Details, 5)
	assert.InDelta(t, 25.0, grp.Accuracy, 1e-9)
}

func TestGroupRowsStatusCaseInsensitiveTrimmed(t *testing.T) {
	rows := []FlatRow{
		{Query: "q", ExpectedName: "A", Status: "  MATCH "},
		{Query: "q", ExpectedName: "B", Status: "nOt MaTcH"},
	}

	grp := GroupRows(rows).ByQuery["q"]
	assert.Equal(t, 1, grp.Matches)
	assert.Equal(t, 1, grp.NotMatch)
}

func TestGroupRowsUnrecognizedStatusUncounted(t *testing.T) {
	rows := []FlatRow{
		{Query: "q", ExpectedName: "A", Status: "No Response"},
		{Query: "q", ExpectedName: "B", Status: "weird"},
	}

	grp := GroupRows(rows).ByQuery["q"]
	assert.Equal(t, 2, grp.TotalExpected)
	assert.Zero(t, grp.Matches)
	assert.Zero(t, grp.Mismatches)
	assert.Zero(t, grp.NotMatch)
	assert.Zero(t, grp.Accuracy)
}

func TestGroupRowsBlankExpectedNameExcluded(t *testing.T) {
	rows := []FlatRow{
		{Query: "q", ExpectedName: "   ", Status: "Match"},
		{Query: "q", ExpectedName: "A", Status: "Match"},
	}

	grp := GroupRows(rows).ByQuery["q"]
	assert.Equal(t, 1, grp.TotalExpected)
	assert.Equal(t, 1, grp.Matches)
	assert.InDelta(t, 100.0, grp.Accuracy, 1e-9)
}

func TestGroupRowsFirstPageFieldsFirstValueWins(t *testing.T) {
	rows := []FlatRow{
		{Query: "q", ExpectedName: "A", Status: "Match"},
		{Query: "q", ExpectedName: "B", Status: "Match", FirstPageCount: "2/3", FirstPageCoverage: "66.67"},
		{Query: "q", ExpectedName: "C", Status: "Match", FirstPageCount: "9/9", FirstPageCoverage: "100.00"},
	}

	grp := GroupRows(rows).ByQuery["q"]
	assert.Equal(t, "2/3", grp.FirstPageCount)
	assert.Equal(t, "66.67", grp.FirstPageCoverage)
}

func TestGroupRowsPreservesQueryOrder(t *testing.T) {
	rows := []FlatRow{
		{Query: "beta", ExpectedName: "A", Status: "Match"},
		{Query: "alpha", ExpectedName: "B", Status: "Match"},
		{Query: "beta", ExpectedName: "C", Status: "Match"},
	}

	g := GroupRows(rows)
	assert.Equal(t, []string{"beta", "alpha"}, g.Order)
}

func TestGroupRowsIdempotent(t *testing.T) {
	rows := []FlatRow{
		{Query: "q", ExpectedName: "A", Status: "Match"},
		{Query: "q", ExpectedName: "B", Status: "Mismatch"},
	}

	first := GroupRows(rows)
	second := GroupRows(rows)
	assert.Equal(t, first, second)
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name          string
		matches       int
		totalExpected int
		want          float64
	}{
		{"zero denominator", 5, 0, 0},
		{"full accuracy", 1, 1, 100.0},
		{"two decimal rounding", 1, 3, 33.33},
		{"zero matches", 0, 4, 0},
		{"two thirds", 2, 3, 66.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Accuracy(tt.matches, tt.totalExpected), 1e-9)
		})
	}
}

func TestAccuracyMonotonicInMatches(t *testing.T) {
	prev := -1.0
	for m := 0; m <= 10; m++ {
		acc := Accuracy(m, 10)
		assert.GreaterOrEqual(t, acc, prev)
		prev = acc
	}
}

func TestComputeOverall(t *testing.T) {
	g := GroupRows([]FlatRow{
		{Query: "q1", ExpectedName: "A", Status: "Match"},
		{Query: "q1", ExpectedName: "B", Status: "Not Match"},
		{Query: "q2", ExpectedName: "C", Status: "Match"},
		{Query: "q2", ExpectedName: "D", Status: "Mismatch"},
	})

	o := ComputeOverall(g)
	assert.Equal(t, 2, o.TotalQueries)
	assert.Equal(t, 4, o.TotalProducts)
	assert.Equal(t, 2, o.TotalMatches)
	assert.Equal(t, 1, o.TotalMismatches)
	assert.InDelta(t, 50.0, o.AverageAccuracy, 1e-9)

	// first-page rollup is re-summed from match counts, so it mirrors
	// the accuracy figures
	assert.Equal(t, o.TotalMatches, o.FirstPage.TotalFound)
	assert.Equal(t, o.TotalProducts, o.FirstPage.TotalExpected)
	assert.InDelta(t, o.AverageAccuracy, o.FirstPage.AverageCoverage, 1e-9)
}

func TestComputeOverallEmpty(t *testing.T) {
	o := ComputeOverall(GroupRows(nil))
	assert.Zero(t, o.TotalQueries)
	assert.Zero(t, o.AverageAccuracy)
}
