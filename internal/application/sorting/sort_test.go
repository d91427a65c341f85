package sorting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	state string
	code  string
	rate  string
	date  string
}

func (r row) value(key string) string {
	switch key {
	case "state_name":
		return r.state
	case "service_code":
		return r.code
	case "rate":
		return r.rate
	case "rate_effective_date":
		return r.date
	default:
		return ""
	}
}

func sortRows(t *testing.T, rows []row, criteria []Criterion) []row {
	t.Helper()
	engine := NewEngine("rate_effective_date")
	order := engine.Sort(len(rows), func(i int, key string) string {
		return rows[i].value(key)
	}, criteria)

	out := make([]row, len(rows))
	for i, idx := range order {
		out[i] = rows[idx]
	}
	return out
}

func TestClick_TripleClickRestoresOriginalOrder(t *testing.T) {
	rows := []row{
		{state: "TEXAS", code: "2"},
		{state: "OHIO", code: "1"},
		{state: "ALASKA", code: "3"},
	}

	var s State
	s.Click("state_name", false)
	assert.Equal(t, []Criterion{{Key: "state_name"}}, s.Criteria)

	s.Click("state_name", false)
	assert.Equal(t, []Criterion{{Key: "state_name", Descending: true}}, s.Criteria)

	s.Click("state_name", false)
	assert.Empty(t, s.Criteria)

	// With no criteria the stable sort returns rows exactly as given.
	sorted := sortRows(t, rows, s.Criteria)
	assert.Equal(t, rows, sorted)
}

func TestClick_AdditiveAppendsSecondaryCriterion(t *testing.T) {
	var s State
	s.Click("state_name", false)
	s.Click("rate", true)

	assert.Equal(t, []Criterion{{Key: "state_name"}, {Key: "rate"}}, s.Criteria)

	// Additive re-click toggles the secondary in place.
	s.Click("rate", true)
	assert.Equal(t, []Criterion{{Key: "state_name"}, {Key: "rate", Descending: true}}, s.Criteria)

	// Plain click on an existing criterion collapses back to that key.
	s.Click("rate", false)
	assert.Equal(t, []Criterion{{Key: "rate", Descending: true}}, s.Criteria)
}

func TestSort_TwoKeyAdjacencyInvariant(t *testing.T) {
	rows := []row{
		{state: "OHIO", rate: "20"},
		{state: "ALASKA", rate: "10"},
		{state: "OHIO", rate: "35"},
		{state: "ALASKA", rate: "50"},
		{state: "OHIO", rate: "5"},
	}
	criteria := []Criterion{
		{Key: "state_name"},
		{Key: "rate", Descending: true},
	}

	sorted := sortRows(t, rows, criteria)

	// For adjacent rows either state is strictly increasing, or states are
	// equal and rate is non-increasing.
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.state == cur.state {
			assert.GreaterOrEqual(t, mustFloat(t, prev.rate), mustFloat(t, cur.rate))
		} else {
			assert.Less(t, prev.state, cur.state)
		}
	}
}

func TestSort_NumericLookingStringsCompareNumerically(t *testing.T) {
	rows := []row{
		{rate: "100.50"},
		{rate: "20"},
		{rate: "9"},
	}

	sorted := sortRows(t, rows, []Criterion{{Key: "rate"}})

	// Lexicographic order would put "100.50" first.
	assert.Equal(t, "9", sorted[0].rate)
	assert.Equal(t, "20", sorted[1].rate)
	assert.Equal(t, "100.50", sorted[2].rate)
}

func TestSort_DateColumnComparesAsDates(t *testing.T) {
	rows := []row{
		{code: "a", date: "12/1/2022"},
		{code: "b", date: "44986"}, // 3/1/2023 as a spreadsheet serial
		{code: "c", date: "1/15/2023"},
		{code: "d", date: ""},
	}

	sorted := sortRows(t, rows, []Criterion{{Key: "rate_effective_date"}})

	// Missing dates sort lowest; the serial takes its calendar position.
	assert.Equal(t, "d", sorted[0].code)
	assert.Equal(t, "a", sorted[1].code)
	assert.Equal(t, "c", sorted[2].code)
	assert.Equal(t, "b", sorted[3].code)
}

func TestSort_StableAcrossTies(t *testing.T) {
	rows := []row{
		{state: "OHIO", code: "first"},
		{state: "OHIO", code: "second"},
		{state: "OHIO", code: "third"},
	}

	sorted := sortRows(t, rows, []Criterion{{Key: "state_name"}})

	assert.Equal(t, "first", sorted[0].code)
	assert.Equal(t, "second", sorted[1].code)
	assert.Equal(t, "third", sorted[2].code)
}

func TestSort_MissingValuesSortLowest(t *testing.T) {
	rows := []row{
		{state: "OHIO"},
		{state: ""},
		{state: "ALASKA"},
	}

	sorted := sortRows(t, rows, []Criterion{{Key: "state_name"}})

	assert.Equal(t, "", sorted[0].state)
	assert.Equal(t, "ALASKA", sorted[1].state)
	assert.Equal(t, "OHIO", sorted[2].state)
}

func mustFloat(t *testing.T, v string) float64 {
	t.Helper()
	f, ok := parseNumeric(v)
	assert.True(t, ok)
	return f
}
