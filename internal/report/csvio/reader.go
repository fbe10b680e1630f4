package csvio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mpavlovic/rankwatch/internal/expect"
	"github.com/mpavlovic/rankwatch/internal/presence"
	"github.com/mpavlovic/rankwatch/internal/stats"
)

// ReadFlatRows parses a detail report back into flat rows for
// aggregation. A leading UTF-8 BOM is tolerated; rows shorter
// than the header are skipped; a blank query cell inherits the most
// recent non-blank query, which supports grouped/sparse query columns.
// Status labels are normalized to aggregation buckets on the way in.
func ReadFlatRows(r io.Reader) ([]stats.FlatRow, error) {
	header, records, err := readAll(r)
	if err != nil {
		return nil, err
	}
	col := headerIndex(header)

	var rows []stats.FlatRow
	var lastQuery string
	for _, rec := range records {
		if len(rec) < len(header) {
			continue
		}
		query := field(rec, col, "Input Query")
		if strings.TrimSpace(query) == "" {
			query = lastQuery
		} else {
			lastQuery = query
		}
		rows = append(rows, stats.FlatRow{
			Query:             query,
			ExpectedName:      field(rec, col, "Input Expected Name"),
			ActualName:        field(rec, col, "Actual Product Name"),
			ExpectedSKU:       field(rec, col, "Input Expected SKU"),
			ActualSKU:         field(rec, col, "Actual SKU"),
			ExpectedPos:       field(rec, col, "Input Expected Position"),
			ActualPos:         field(rec, col, "Actual Position"),
			Status:            normalizeStatus(field(rec, col, "Position Match")),
			FirstPageCount:    field(rec, col, "First Page Count"),
			FirstPageCoverage: field(rec, col, "First Page Coverage %"),
		})
	}
	return rows, nil
}

// ReadExpectations parses the ground-truth input file. Expected columns:
// Query, Product Name, SKU, Position. Same tolerances as ReadFlatRows.
func ReadExpectations(r io.Reader) ([]expect.Entry, error) {
	header, records, err := readAll(r)
	if err != nil {
		return nil, err
	}
	col := headerIndex(header)

	var entries []expect.Entry
	var lastQuery string
	for _, rec := range records {
		if len(rec) < len(header) {
			continue
		}
		query := field(rec, col, "Query")
		if strings.TrimSpace(query) == "" {
			query = lastQuery
		} else {
			lastQuery = query
		}
		pos, err := strconv.Atoi(strings.TrimSpace(field(rec, col, "Position")))
		if err != nil || pos <= 0 {
			continue
		}
		entries = append(entries, expect.Entry{
			Query:    query,
			Name:     field(rec, col, "Product Name"),
			SKU:      strings.TrimSpace(field(rec, col, "SKU")),
			Position: pos,
		})
	}
	return entries, nil
}

// ReadTargets parses a presence-check target list. Expected columns:
// Product Name (optional), SKU.
func ReadTargets(r io.Reader) ([]presence.Target, error) {
	header, records, err := readAll(r)
	if err != nil {
		return nil, err
	}
	col := headerIndex(header)

	var targets []presence.Target
	for _, rec := range records {
		if len(rec) < len(header) {
			continue
		}
		targets = append(targets, presence.Target{
			Name: field(rec, col, "Product Name"),
			SKU:  strings.TrimSpace(field(rec, col, "SKU")),
		})
	}
	return targets, nil
}

// PoolFromRows extracts every actual product observed in a report, for
// presence checking.
func PoolFromRows(rows []stats.FlatRow) []presence.Product {
	var pool []presence.Product
	for _, row := range rows {
		if strings.TrimSpace(row.ActualSKU) == "" {
			continue
		}
		pool = append(pool, presence.Product{Name: row.ActualName, SKU: row.ActualSKU})
	}
	return pool
}

func readAll(r io.Reader) ([]string, [][]string, error) {
	// A leading BOM must go before csv parsing: BOM + quoted first cell
	// reads as a bare quote inside an unquoted field otherwise.
	br := bufio.NewReader(r)
	if c, _, err := br.ReadRune(); err == nil && c != '\uFEFF' {
		_ = br.UnreadRune()
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	var records [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read record: %w", err)
		}
		records = append(records, rec)
	}
	return header, records, nil
}

func headerIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	return col
}

func field(rec []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// normalizeStatus maps the detail-report labels onto the buckets the
// aggregator recognizes. Anything else passes through verbatim and stays
// uncounted downstream.
func normalizeStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact match":
		return "Match"
	case "position mismatch":
		return "Mismatch"
	case "missing product", "not found":
		return "Not Match"
	case "no response":
		return "No Response"
	default:
		return s
	}
}
