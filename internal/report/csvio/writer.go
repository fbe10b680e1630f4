// Package csvio reads and writes the harness's CSV surfaces: the
// ground-truth input, the per-slot detail report, and the position-mapping
// report.
package csvio

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mpavlovic/rankwatch/internal/reconcile"
)

var detailHeader = []string{
	"Input Query",
	"Input Expected Name",
	"Actual Product Name",
	"Input Expected SKU",
	"Actual SKU",
	"Input Expected Position",
	"Actual Position",
	"Position Match",
	"First Page Count",
	"First Page Coverage %",
}

var mappingHeader = []string{
	"Input Query",
	"Input Expected Name",
	"Input Expected SKU",
	"Input Expected Position",
	"Actual Position",
	"Page",
	"Status",
}

// QueryDetails is one query's slot rows plus its first-page figures, in
// the shape the report writers consume.
type QueryDetails struct {
	Query    string
	Details  []reconcile.Detail
	Coverage *reconcile.Coverage
}

// WriteDetails writes the per-slot report. Every value is double-quote
// wrapped with internal quotes doubled; the first row of each query
// carries the first-page figures. With groupGap set, query groups are
// separated by two blank lines.
func WriteDetails(w io.Writer, queries []QueryDetails, groupGap bool) error {
	if err := writeRecord(w, detailHeader); err != nil {
		return err
	}
	for qi, q := range queries {
		if groupGap && qi > 0 {
			if _, err := io.WriteString(w, "\n\n"); err != nil {
				return err
			}
		}
		for i, d := range q.Details {
			var firstPageCount, firstPageCoverage string
			if i == 0 && q.Coverage != nil {
				firstPageCount = fmt.Sprintf("%d/%d", q.Coverage.FoundOnFirstPage, q.Coverage.TotalExpected)
				firstPageCoverage = fmt.Sprintf("%.2f", q.Coverage.Percentage())
			}
			var actualPos string
			if d.Occupied() {
				actualPos = strconv.Itoa(d.Position)
			}
			var expectedPos string
			if d.ExpectedPosition > 0 {
				expectedPos = strconv.Itoa(d.ExpectedPosition)
			}
			record := []string{
				q.Query,
				d.ExpectedName,
				d.ActualName,
				d.ExpectedSKU,
				d.ActualSKU,
				expectedPos,
				actualPos,
				d.Status.Label(),
				firstPageCount,
				firstPageCoverage,
			}
			if err := writeRecord(w, record); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteMappings writes the expectation-centric report: one row per
// expected product, with query groups separated by two blank lines.
func WriteMappings(w io.Writer, query string, mappings []reconcile.Mapping, writeHeader, gap bool) error {
	if writeHeader {
		if err := writeRecord(w, mappingHeader); err != nil {
			return err
		}
	}
	if gap {
		if _, err := io.WriteString(w, "\n\n"); err != nil {
			return err
		}
	}
	for _, m := range mappings {
		var actualPos, page string
		if m.ActualPosition > 0 {
			actualPos = strconv.Itoa(m.ActualPosition)
		}
		if m.Page > 0 {
			page = strconv.Itoa(m.Page)
		}
		record := []string{
			query,
			m.ExpectedName,
			m.ExpectedSKU,
			strconv.Itoa(m.ExpectedPosition),
			actualPos,
			page,
			m.StatusLabel(),
		}
		if err := writeRecord(w, record); err != nil {
			return err
		}
	}
	return nil
}

func writeRecord(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	_, err := io.WriteString(w, strings.Join(quoted, ",")+"\n")
	return err
}
