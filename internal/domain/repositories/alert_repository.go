package repositories

import (
	"context"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
)

// AlertRepository defines the interface for provider alerts. Alerts are
// keyed by their link; counts are returned so callers can observe duplicate
// natural keys.
type AlertRepository interface {
	List(ctx context.Context) ([]*entities.Alert, error)
	UpdateServiceLines(ctx context.Context, update *entities.ServiceLineUpdate) (int64, error)
	Delete(ctx context.Context, link string) (int64, error)
}

// BillRepository defines the interface for legislative records, keyed by URL.
type BillRepository interface {
	List(ctx context.Context) ([]*entities.Bill, error)
	UpdateServiceLines(ctx context.Context, update *entities.ServiceLineUpdate) (int64, error)
	Delete(ctx context.Context, url string) (int64, error)
}
