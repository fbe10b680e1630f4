package expect

// Entry is one row of ground truth: a product the search backend is
// expected to return for a query at a specific rank.
type Entry struct {
	Query    string
	Name     string
	SKU      string
	Position int
}

// Grouped holds per-query expected lists, with queries in first-appearance
// order and entries in input order within each query.
type Grouped struct {
	ByQuery map[string][]Entry
	Order   []string
}

// GroupByQuery splits a flat expectation list into per-query lists.
func GroupByQuery(entries []Entry) *Grouped {
	g := &Grouped{ByQuery: make(map[string][]Entry)}
	for _, e := range entries {
		if _, ok := g.ByQuery[e.Query]; !ok {
			g.Order = append(g.Order, e.Query)
		}
		g.ByQuery[e.Query] = append(g.ByQuery[e.Query], e)
	}
	return g
}

// ByPosition indexes entries by their expected rank. On duplicate positions
// the first entry wins; positions are assumed unique within a query.
func ByPosition(entries []Entry) map[int]Entry {
	m := make(map[int]Entry, len(entries))
	for _, e := range entries {
		if _, ok := m[e.Position]; ok {
			continue
		}
		m[e.Position] = e
	}
	return m
}
