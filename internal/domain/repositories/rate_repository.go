package repositories

import (
	"context"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
)

// RateFilter narrows a master-data query. Zero-valued fields are ignored.
// State is compared after trimming and upper-casing to tolerate inconsistent
// source capitalization.
type RateFilter struct {
	ServiceCategory    string
	State              string
	ServiceCode        string
	ServiceDescription string
	Program            string
	LocationRegion     string
	Modifier           string
	ProviderType       string
}

// RateRepository defines the interface for reimbursement-rate master data.
type RateRepository interface {
	// List returns records matching the filter, ordered by id so that
	// downstream tie-breaking is deterministic.
	List(ctx context.Context, filter RateFilter) ([]*entities.RateRecord, error)

	// DistinctValues returns the distinct non-empty values of one column
	// among records matching the filter. The column must be one of the
	// filterable rate fields.
	DistinctValues(ctx context.Context, column string, filter RateFilter) ([]string, error)

	// Update applies a partial field update to the record with the given id
	// and returns the merged row.
	Update(ctx context.Context, id string, fields map[string]interface{}) (*entities.RateRecord, error)

	// Delete removes the record with the given id.
	Delete(ctx context.Context, id string) error
}
