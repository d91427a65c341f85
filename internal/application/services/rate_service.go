package services

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/ratewatch/medicaid-rates-backend/internal/application/aggregation"
	"github.com/ratewatch/medicaid-rates-backend/internal/application/filtering"
	"github.com/ratewatch/medicaid-rates-backend/internal/application/sorting"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/repositories"
	"github.com/ratewatch/medicaid-rates-backend/pkg/dates"
	apperrors "github.com/ratewatch/medicaid-rates-backend/pkg/errors"
)

// RateService handles business logic for the rate comparison tables
type RateService struct {
	rateRepo    repositories.RateRepository
	commentRepo repositories.CommentRepository
}

// NewRateService creates a new rate service
func NewRateService(rateRepo repositories.RateRepository, commentRepo repositories.CommentRepository) *RateService {
	return &RateService{
		rateRepo:    rateRepo,
		commentRepo: commentRepo,
	}
}

// ListRates returns records matching the filter. With latest set, records
// that differ only in effective date collapse to the newest one. A filter
// with the all-states sentinel does not narrow the state dimension.
func (s *RateService) ListRates(ctx context.Context, filter repositories.RateFilter, latest bool) ([]*entities.RateRecord, error) {
	if filter.State == filtering.AllStates {
		filter.State = ""
	}

	records, err := s.rateRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if latest {
		records = aggregation.LatestByKey(records)
	}
	return records, nil
}

var rateSortEngine = sorting.NewEngine("rate_effective_date")

// SortRecords orders records by the given criteria, stable within ties. An
// empty criteria list returns the slice unchanged.
func (s *RateService) SortRecords(records []*entities.RateRecord, criteria []sorting.Criterion) []*entities.RateRecord {
	if len(criteria) == 0 {
		return records
	}
	order := rateSortEngine.Sort(len(records), func(i int, key string) string {
		return records[i].SortValue(key)
	}, criteria)
	sorted := make([]*entities.RateRecord, len(records))
	for i, idx := range order {
		sorted[i] = records[idx]
	}
	return sorted
}

// FilterOptions returns the valid dropdown options per cascade step among
// records matching the filter. Values are normalized the same way the
// cascade normalizes selections, so the lists line up with what Apply will
// accept.
func (s *RateService) FilterOptions(ctx context.Context, filter repositories.RateFilter) (map[string][]string, error) {
	if filter.State == filtering.AllStates {
		filter.State = ""
	}

	options := make(map[string][]string, len(filtering.Steps()))
	for _, step := range filtering.Steps() {
		values, err := s.rateRepo.DistinctValues(ctx, step.String(), filter)
		if err != nil {
			return nil, err
		}

		normalized := lo.Uniq(lo.FilterMap(values, func(v string, _ int) (string, bool) {
			n := filtering.Normalize(step, v)
			return n, n != ""
		}))
		sort.Strings(normalized)
		options[step.String()] = normalized
	}
	return options, nil
}

// StateAverages returns the per-state unweighted mean over the latest
// records matching the filter, with the state dimension left open.
func (s *RateService) StateAverages(ctx context.Context, filter repositories.RateFilter, hourly bool) ([]aggregation.StateAverage, error) {
	filter.State = ""

	records, err := s.rateRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return aggregation.StateAverages(aggregation.LatestByKey(records), hourly), nil
}

// UpdateRecord applies a partial update to a rate row and returns the merged
// row. A rate value is re-formatted to the canonical currency string before
// it is stored, so "55.00" and "$55" both persist as "$55.00".
func (s *RateService) UpdateRecord(ctx context.Context, id string, fields map[string]interface{}) (*entities.RateRecord, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("record id is required")
	}
	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("no fields to update")
	}

	if raw, ok := fields["rate"]; ok {
		text, isString := raw.(string)
		if !isString {
			return nil, apperrors.NewValidationError("rate must be a string")
		}
		value, parsed := dates.ParseRate(text)
		if !parsed {
			return nil, apperrors.NewValidationError("rate is not a valid amount")
		}
		fields["rate"] = dates.FormatRate(value)
	}

	return s.rateRepo.Update(ctx, id, fields)
}

// DeleteRecord removes a rate row by id.
func (s *RateService) DeleteRecord(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.NewValidationError("record id is required")
	}
	return s.rateRepo.Delete(ctx, id)
}

// Comments returns the annotations for a state and service category pair.
// The state is normalized so "ohio" and "OHIO" read the same annotations.
func (s *RateService) Comments(ctx context.Context, state, serviceCategory string) ([]*entities.RateComment, error) {
	if state == "" || serviceCategory == "" {
		return nil, apperrors.NewValidationError("state and serviceCategory are required")
	}
	state = filtering.Normalize(filtering.StepState, state)
	serviceCategory = filtering.Normalize(filtering.StepServiceCategory, serviceCategory)
	return s.commentRepo.ListByStateCategory(ctx, state, serviceCategory)
}
