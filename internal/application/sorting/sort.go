package sorting

import (
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/ratewatch/medicaid-rates-backend/pkg/dates"
)

// Criterion is one (key, direction) pair in a multi-key sort.
type Criterion struct {
	Key        string `json:"key"`
	Descending bool   `json:"descending"`
}

// State is the ordered list of active sort criteria. Index 0 is the primary
// sort; the position of a criterion is its priority badge.
type State struct {
	Criteria []Criterion `json:"criteria"`
}

// Click applies a column-header click. A plain click collapses the sort to
// that single key, cycling asc, then desc, then no sort at all. An additive
// (modifier-qualified) click appends the key as a further criterion, or
// cycles it in place, without disturbing the others.
func (s *State) Click(key string, additive bool) {
	idx := lo.IndexOf(lo.Map(s.Criteria, func(c Criterion, _ int) string { return c.Key }), key)

	if !additive {
		if idx == -1 {
			s.Criteria = []Criterion{{Key: key}}
			return
		}
		if len(s.Criteria) > 1 {
			// Collapse a multi-key sort back to this key, keeping its
			// direction.
			s.Criteria = []Criterion{s.Criteria[idx]}
			return
		}
		s.cycle(0)
		return
	}

	if idx == -1 {
		s.Criteria = append(s.Criteria, Criterion{Key: key})
		return
	}
	s.cycle(idx)
}

func (s *State) cycle(idx int) {
	c := s.Criteria[idx]
	if !c.Descending {
		s.Criteria[idx].Descending = true
		return
	}
	s.Criteria = append(s.Criteria[:idx], s.Criteria[idx+1:]...)
}

// ValueFunc returns the sortable string value of row i for a key.
type ValueFunc func(i int, key string) string

// Engine orders rows by the active criteria. Keys listed as date keys
// compare as parsed dates; numeric-looking values compare numerically;
// everything else compares lexicographically, with missing values lowest.
type Engine struct {
	dateKeys map[string]bool
}

// NewEngine creates a sort engine with the given date-typed keys.
func NewEngine(dateKeys ...string) *Engine {
	keys := make(map[string]bool, len(dateKeys))
	for _, k := range dateKeys {
		keys[k] = true
	}
	return &Engine{dateKeys: keys}
}

// Sort returns a permutation of [0, n) ordered by the criteria. The sort is
// stable: ties keep their original relative order, so an empty criteria list
// returns rows exactly as given.
func (e *Engine) Sort(n int, value ValueFunc, criteria []Criterion) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if len(criteria) == 0 {
		return order
	}

	sort.SliceStable(order, func(a, b int) bool {
		for _, criterion := range criteria {
			cmp := e.compare(criterion.Key, value(order[a], criterion.Key), value(order[b], criterion.Key))
			if cmp == 0 {
				continue
			}
			if criterion.Descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	return order
}

func (e *Engine) compare(key, a, b string) int {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)

	if e.dateKeys[key] {
		da, aOK := dates.Parse(a)
		db, bOK := dates.Parse(b)
		switch {
		case !aOK && !bOK:
			return 0
		case !aOK:
			return -1
		case !bOK:
			return 1
		case da.Before(db):
			return -1
		case da.After(db):
			return 1
		default:
			return 0
		}
	}

	na, aNum := parseNumeric(a)
	nb, bNum := parseNumeric(b)
	if aNum && bNum {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(a, b)
}

func parseNumeric(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
