package stats

// FlatRow mirrors one parsed report row. Positions travel as strings
// because they come from and go back to CSV cells, where a missing
// position is an empty cell rather than a zero.
type FlatRow struct {
	Query             string `json:"query"`
	ExpectedName      string `json:"expectedName"`
	ActualName        string `json:"actualName"`
	ExpectedSKU       string `json:"expectedSku"`
	ActualSKU         string `json:"actualSku"`
	ExpectedPos       string `json:"expectedPos"`
	ActualPos         string `json:"actualPos"`
	Status            string `json:"status"`
	FirstPageCount    string `json:"firstPageCount,omitempty"`
	FirstPageCoverage string `json:"firstPageCoverage,omitempty"`
}

// QueryGroup aggregates one query's report rows.
type QueryGroup struct {
	Query             string    `json:"query"`
	TotalExpected     int       `json:"totalExpected"`
	Matches           int       `json:"matches"`
	Mismatches        int       `json:"mismatches"`
	NotMatch          int       `json:"notMatch"`
	Accuracy          float64   `json:"accuracy"`
	FirstPageCount    string    `json:"firstPageCount,omitempty"`
	FirstPageCoverage string    `json:"firstPageCoverage,omitempty"`
	Details           []FlatRow `json:"details"`
}

// Groups holds per-query aggregates with queries in first-appearance order.
type Groups struct {
	ByQuery map[string]*QueryGroup `json:"byQuery"`
	Order   []string               `json:"order"`
}

// FirstPageTracking is the run-wide first-page rollup.
type FirstPageTracking struct {
	TotalFound      int     `json:"totalFound"`
	TotalExpected   int     `json:"totalExpected"`
	AverageCoverage float64 `json:"averageCoverage"`
}

// Overall is the single aggregate across all query groups.
type Overall struct {
	TotalQueries    int               `json:"totalQueries"`
	TotalProducts   int               `json:"totalProducts"`
	TotalMatches    int               `json:"totalMatches"`
	TotalMismatches int               `json:"totalMismatches"`
	AverageAccuracy float64           `json:"averageAccuracy"`
	FirstPage       FirstPageTracking `json:"firstPageTracking"`
}
