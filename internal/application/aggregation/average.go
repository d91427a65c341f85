package aggregation

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
	"github.com/ratewatch/medicaid-rates-backend/pkg/dates"
)

// StateAverage is one bar in the cross-state comparison chart: the
// unweighted mean rate across all matching records for a state.
type StateAverage struct {
	StateName     string  `json:"state_name"`
	AverageRate   float64 `json:"average_rate"`
	FormattedRate string  `json:"formatted_rate"`
	RecordCount   int     `json:"record_count"`
}

// HourlyRate converts a record's rate to its hourly-equivalent value.
// Non-convertible duration units yield zero.
func HourlyRate(record *entities.RateRecord) float64 {
	rate, ok := record.RateValue()
	if !ok {
		return 0
	}

	switch strings.ToUpper(strings.TrimSpace(record.DurationUnit)) {
	case "15 MINUTES":
		return rate * 4
	case "30 MINUTES":
		return rate * 2
	case "PER HOUR":
		return rate
	default:
		return 0
	}
}

// StateAverages groups records by state and computes the unweighted
// arithmetic mean rate per state. With hourly mode on, each rate is first
// converted to its hourly equivalent. No outlier handling, no weighting:
// a straight mean, recomputed wholesale on every input change.
func StateAverages(records []*entities.RateRecord, hourly bool) []StateAverage {
	groups := lo.GroupBy(records, func(r *entities.RateRecord) string {
		return strings.ToUpper(strings.TrimSpace(r.StateName))
	})

	averages := make([]StateAverage, 0, len(groups))
	for state, group := range groups {
		if state == "" {
			continue
		}

		var sum float64
		for _, record := range group {
			if hourly {
				sum += HourlyRate(record)
			} else {
				rate, _ := record.RateValue()
				sum += rate
			}
		}

		mean := sum / float64(len(group))
		averages = append(averages, StateAverage{
			StateName:     state,
			AverageRate:   mean,
			FormattedRate: dates.FormatRate(mean),
			RecordCount:   len(group),
		})
	}

	sort.Slice(averages, func(i, j int) bool {
		return averages[i].StateName < averages[j].StateName
	})
	return averages
}
