package aggregation

import (
	"strings"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
)

// comparableKey joins every field of a record except its effective date. Two
// records with the same key describe the same rate line at different points
// in time.
func comparableKey(r *entities.RateRecord) string {
	return strings.Join([]string{
		strings.ToUpper(strings.TrimSpace(r.StateName)),
		strings.TrimSpace(r.ServiceCategory),
		strings.TrimSpace(r.ServiceCode),
		strings.TrimSpace(r.ServiceDescription),
		strings.TrimSpace(r.Program),
		strings.TrimSpace(r.LocationRegion),
		strings.TrimSpace(r.Modifier1),
		strings.TrimSpace(r.Modifier2),
		strings.TrimSpace(r.Modifier3),
		strings.TrimSpace(r.Modifier4),
		strings.TrimSpace(r.DurationUnit),
		strings.TrimSpace(r.Rate),
		strings.TrimSpace(r.ProviderType),
	}, "\x1f")
}

// LatestByKey collapses records that share every field except the effective
// date down to the one with the maximal parsed date. Records whose date does
// not parse stay eligible (fail open) but compare as earliest. On an exact
// date tie the record appearing first in input order wins; callers pass
// id-ordered input so the outcome is deterministic.
func LatestByKey(records []*entities.RateRecord) []*entities.RateRecord {
	latest := make(map[string]*entities.RateRecord, len(records))
	order := make([]string, 0, len(records))

	for _, record := range records {
		key := comparableKey(record)
		current, seen := latest[key]
		if !seen {
			latest[key] = record
			order = append(order, key)
			continue
		}

		currentDate, currentOK := current.EffectiveDate()
		candidateDate, candidateOK := record.EffectiveDate()

		switch {
		case !candidateOK:
			// No parseable date: never newer than what we hold.
		case !currentOK:
			latest[key] = record
		case candidateDate.After(currentDate):
			latest[key] = record
		}
	}

	result := make([]*entities.RateRecord, 0, len(order))
	for _, key := range order {
		result = append(result, latest[key])
	}
	return result
}
