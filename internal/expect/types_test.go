package expect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupByQuery(t *testing.T) {
	entries := []Entry{
		{Query: "red shoes", SKU: "A", Position: 1},
		{Query: "blue hats", SKU: "B", Position: 1},
		{Query: "red shoes", SKU: "C", Position: 2},
	}

	g := GroupByQuery(entries)

	assert.Equal(t, []string{"red shoes", "blue hats"}, g.Order)
	assert.Len(t, g.ByQuery["red shoes"], 2)
	assert.Len(t, g.ByQuery["blue hats"], 1)
	assert.Equal(t, "A", g.ByQuery["red shoes"][0].SKU)
	assert.Equal(t, "C", g.ByQuery["red shoes"][1].SKU)
}

func TestGroupByQueryEmpty(t *testing.T) {
	g := GroupByQuery(nil)
	assert.Empty(t, g.Order)
	assert.Empty(t, g.ByQuery)
}

func TestByPosition(t *testing.T) {
	entries := []Entry{
		{SKU: "A", Position: 1},
		{SKU: "B", Position: 3},
		{SKU: "C", Position: 1}, // duplicate position, first wins
	}

	m := ByPosition(entries)

	assert.Len(t, m, 2)
	assert.Equal(t, "A", m[1].SKU)
	assert.Equal(t, "B", m[3].SKU)
}
