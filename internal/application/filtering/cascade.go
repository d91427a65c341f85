package filtering

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
)

// Step is one position in the ordered filter cascade. Each selection narrows
// the option set for every later step.
type Step int

const (
	StepServiceCategory Step = iota
	StepState
	StepServiceCode
	StepServiceDescription
	StepProgram
	StepLocationRegion
	StepModifier
	StepProviderType

	stepCount
)

// AllStates is the sentinel a user may choose at the state step. It does not
// narrow the state dimension; downstream aggregation switches into per-state
// average mode instead of per-record mode.
const AllStates = "ALL_STATES"

// Steps returns the cascade order.
func Steps() []Step {
	steps := make([]Step, stepCount)
	for i := range steps {
		steps[i] = Step(i)
	}
	return steps
}

// String names the step after the record field it filters.
func (s Step) String() string {
	switch s {
	case StepServiceCategory:
		return "service_category"
	case StepState:
		return "state_name"
	case StepServiceCode:
		return "service_code"
	case StepServiceDescription:
		return "service_description"
	case StepProgram:
		return "program"
	case StepLocationRegion:
		return "location_region"
	case StepModifier:
		return "modifier_1"
	case StepProviderType:
		return "provider_type"
	default:
		return "unknown"
	}
}

// Cascade holds the ordered dependent-selection state for one page: the
// current selection per step and the currently valid option list per step.
// It is ephemeral per-session state, never persisted.
type Cascade struct {
	selections [stepCount]string
	options    [stepCount][]string
}

// New builds a cascade over the dataset with only the first step's options
// populated.
func New(records []*entities.RateRecord) *Cascade {
	c := &Cascade{}
	c.options[StepServiceCategory] = c.optionsFor(records, StepServiceCategory)
	return c
}

// Selection returns the current selection for a step ("" when unset).
func (c *Cascade) Selection(step Step) string {
	if step < 0 || step >= stepCount {
		return ""
	}
	return c.selections[step]
}

// Options returns the current option list for a step. An empty list means
// the dropdown is disabled.
func (c *Cascade) Options(step Step) []string {
	if step < 0 || step >= stepCount {
		return nil
	}
	return c.options[step]
}

// Selections returns selections keyed by step name, for the wire format.
func (c *Cascade) Selections() map[string]string {
	out := make(map[string]string, stepCount)
	for _, step := range Steps() {
		out[step.String()] = c.selections[step]
	}
	return out
}

// OptionLists returns all option lists keyed by step name.
func (c *Cascade) OptionLists() map[string][]string {
	out := make(map[string][]string, stepCount)
	for _, step := range Steps() {
		out[step.String()] = c.options[step]
	}
	return out
}

// Apply records a selection event. Every step after the changed one is reset
// (selection cleared, options emptied), then the next step's options are
// recomputed from the records matching all selections up to and including
// this step. Clearing a step (empty value) behaves as if the step were never
// set: downstream stays cleared and disabled.
func (c *Cascade) Apply(records []*entities.RateRecord, step Step, value string) {
	if step < 0 || step >= stepCount {
		return
	}

	c.selections[step] = Normalize(step, value)
	for s := step + 1; s < stepCount; s++ {
		c.selections[s] = ""
		c.options[s] = nil
	}

	if c.selections[step] == "" {
		return
	}

	if next := step + 1; next < stepCount {
		c.options[next] = c.optionsFor(records, next)
	}
}

// Refresh recomputes every option list against a (possibly new) dataset,
// walking the cascade in order. A selection whose value is no longer among
// its recomputed options is cleared, and everything below it resets with it.
func (c *Cascade) Refresh(records []*entities.RateRecord) {
	live := true
	for _, step := range Steps() {
		if !live {
			c.selections[step] = ""
			c.options[step] = nil
			continue
		}

		c.options[step] = c.optionsFor(records, step)

		sel := c.selections[step]
		if sel == "" {
			// Nothing selected here: later dropdowns stay disabled.
			live = false
			continue
		}
		if step == StepState && sel == AllStates {
			continue
		}
		if !lo.Contains(c.options[step], sel) {
			c.selections[step] = ""
			live = false
		}
	}
}

// PerStateAverageMode reports whether the ALL_STATES sentinel is active.
func (c *Cascade) PerStateAverageMode() bool {
	return c.selections[StepState] == AllStates
}

// MatchesSelections reports whether a record is consistent with every
// current selection (all steps, not just a prefix).
func (c *Cascade) MatchesSelections(record *entities.RateRecord) bool {
	return c.matchesThrough(record, stepCount)
}

// FilterRecords returns the records consistent with every current selection.
func (c *Cascade) FilterRecords(records []*entities.RateRecord) []*entities.RateRecord {
	return lo.Filter(records, func(r *entities.RateRecord, _ int) bool {
		return c.MatchesSelections(r)
	})
}

// optionsFor derives the sorted, deduplicated, normalized value set for a
// step among records matching all selections on earlier steps.
func (c *Cascade) optionsFor(records []*entities.RateRecord, step Step) []string {
	values := make([]string, 0, len(records))
	for _, record := range records {
		if !c.matchesThrough(record, step) {
			continue
		}
		if v := Normalize(step, stepValue(record, step)); v != "" {
			values = append(values, v)
		}
	}

	values = lo.Uniq(values)
	sort.Strings(values)
	return values
}

func (c *Cascade) matchesThrough(record *entities.RateRecord, upTo Step) bool {
	for s := Step(0); s < upTo && s < stepCount; s++ {
		sel := c.selections[s]
		if sel == "" {
			continue
		}
		if s == StepState && sel == AllStates {
			continue
		}
		if Normalize(s, stepValue(record, s)) != sel {
			return false
		}
	}
	return true
}

// Normalize trims a raw value and canonicalizes it for comparison. State
// names are upper-cased to tolerate inconsistent source capitalization, and
// both spellings of the all-states sentinel collapse to AllStates.
func Normalize(step Step, value string) string {
	trimmed := strings.TrimSpace(value)
	if step != StepState {
		return trimmed
	}

	upper := strings.ToUpper(trimmed)
	if upper == AllStates || upper == "ALL STATES" {
		return AllStates
	}
	return upper
}

func stepValue(record *entities.RateRecord, step Step) string {
	switch step {
	case StepServiceCategory:
		return record.ServiceCategory
	case StepState:
		return record.StateName
	case StepServiceCode:
		return record.ServiceCode
	case StepServiceDescription:
		return record.ServiceDescription
	case StepProgram:
		return record.Program
	case StepLocationRegion:
		return record.LocationRegion
	case StepModifier:
		return record.Modifier1
	case StepProviderType:
		return record.ProviderType
	default:
		return ""
	}
}
