package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
)

func rateRecord(category, state, code, description string) *entities.RateRecord {
	return &entities.RateRecord{
		ServiceCategory:    category,
		StateName:          state,
		ServiceCode:        code,
		ServiceDescription: description,
		Program:            "FFS",
		ProviderType:       "AGENCY",
		DurationUnit:       "15 MINUTES",
		Rate:               "$10.00",
	}
}

func testDataset() []*entities.RateRecord {
	return []*entities.RateRecord{
		rateRecord("DENTAL", "OHIO", "D0120", "Periodic oral evaluation"),
		rateRecord("DENTAL", "OHIO", "D0150", "Comprehensive oral evaluation"),
		rateRecord("DENTAL", "ohio ", "D0120", "Periodic oral evaluation"),
		rateRecord("DENTAL", "TEXAS", "D0999", "Unspecified diagnostic procedure"),
		rateRecord("ABA", "OHIO", "97151", "Behavior identification assessment"),
	}
}

func TestCascade_InitialOptions(t *testing.T) {
	c := New(testDataset())

	assert.Equal(t, []string{"ABA", "DENTAL"}, c.Options(StepServiceCategory))
	assert.Empty(t, c.Options(StepState))
	assert.Empty(t, c.Options(StepServiceCode))
}

func TestCascade_ApplyNarrowsNextStep(t *testing.T) {
	records := testDataset()
	c := New(records)

	c.Apply(records, StepServiceCategory, "DENTAL")

	// State options derive only from DENTAL records, case-normalized and
	// deduplicated.
	assert.Equal(t, []string{"OHIO", "TEXAS"}, c.Options(StepState))

	c.Apply(records, StepState, "OHIO")
	assert.Equal(t, []string{"D0120", "D0150"}, c.Options(StepServiceCode))

	// Options for step N are a subset of values in records consistent with
	// steps 1..N-1: Texas's code never appears.
	assert.NotContains(t, c.Options(StepServiceCode), "D0999")
}

func TestCascade_ChangingUpstreamResetsDownstream(t *testing.T) {
	records := testDataset()
	c := New(records)

	c.Apply(records, StepServiceCategory, "DENTAL")
	c.Apply(records, StepState, "OHIO")
	c.Apply(records, StepServiceCode, "D0120")

	c.Apply(records, StepServiceCategory, "ABA")

	for _, step := range Steps()[1:] {
		assert.Equal(t, "", c.Selection(step), "selection for %s should reset", step)
	}
	assert.Equal(t, []string{"OHIO"}, c.Options(StepState))
	assert.Empty(t, c.Options(StepServiceCode))
}

func TestCascade_ClearingStepDisablesDownstream(t *testing.T) {
	records := testDataset()
	c := New(records)

	c.Apply(records, StepServiceCategory, "DENTAL")
	c.Apply(records, StepState, "OHIO")
	assert.NotEmpty(t, c.Options(StepServiceCode))

	// Clearing OHIO must leave the service-code dropdown empty and disabled,
	// not populated with Ohio's codes.
	c.Apply(records, StepState, "")

	assert.Equal(t, "", c.Selection(StepState))
	assert.Empty(t, c.Options(StepServiceCode))
	assert.Equal(t, "", c.Selection(StepServiceCode))
}

func TestCascade_AllStatesSentinel(t *testing.T) {
	records := testDataset()
	c := New(records)

	c.Apply(records, StepServiceCategory, "DENTAL")
	c.Apply(records, StepState, "All States")

	assert.True(t, c.PerStateAverageMode())
	// The sentinel does not narrow the state dimension: codes from every
	// state remain visible.
	assert.Equal(t, []string{"D0120", "D0150", "D0999"}, c.Options(StepServiceCode))
}

func TestCascade_NormalizationToleratesSourceCapitalization(t *testing.T) {
	records := testDataset()
	c := New(records)

	c.Apply(records, StepServiceCategory, "DENTAL")
	c.Apply(records, StepState, "  ohio ")

	assert.Equal(t, "OHIO", c.Selection(StepState))
	// The "ohio " source row participates in the narrowed set.
	filtered := c.FilterRecords(records)
	assert.Len(t, filtered, 3)
}

func TestCascade_RefreshClearsInvalidatedSelections(t *testing.T) {
	records := testDataset()
	c := New(records)

	c.Apply(records, StepServiceCategory, "DENTAL")
	c.Apply(records, StepState, "TEXAS")
	c.Apply(records, StepServiceCode, "D0999")

	// New dataset no longer has any Texas rows.
	shrunk := []*entities.RateRecord{
		rateRecord("DENTAL", "OHIO", "D0120", "Periodic oral evaluation"),
	}
	c.Refresh(shrunk)

	assert.Equal(t, "DENTAL", c.Selection(StepServiceCategory))
	assert.Equal(t, "", c.Selection(StepState))
	assert.Equal(t, "", c.Selection(StepServiceCode))
	assert.Empty(t, c.Options(StepServiceCode))
}

func TestCascade_OptionsExcludeEmptyValues(t *testing.T) {
	records := []*entities.RateRecord{
		rateRecord("DENTAL", "OHIO", "D0120", "Periodic oral evaluation"),
		rateRecord("DENTAL", "", "D0150", "Comprehensive oral evaluation"),
	}
	c := New(records)
	c.Apply(records, StepServiceCategory, "DENTAL")

	assert.Equal(t, []string{"OHIO"}, c.Options(StepState))
}

func TestGuard_DiscardsStaleResponses(t *testing.T) {
	g := NewGuard()

	first := g.Issue(StepState)
	second := g.Issue(StepState)

	// The earlier-issued-but-slower request must be discarded.
	assert.False(t, g.Accept(StepState, first))
	assert.True(t, g.Accept(StepState, second))

	// Sequences are tracked per step.
	other := g.Issue(StepServiceCode)
	assert.True(t, g.Accept(StepServiceCode, other))
	assert.True(t, g.Accept(StepState, second))
}
