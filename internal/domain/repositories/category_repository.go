package repositories

import (
	"context"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
)

// CategoryRepository defines the interface for the service-line taxonomy.
type CategoryRepository interface {
	List(ctx context.Context) ([]*entities.ServiceCategory, error)
	Create(ctx context.Context, category *entities.ServiceCategory) error
	Rename(ctx context.Context, oldCategory, newCategory string) error
	Delete(ctx context.Context, category string) error
}

// CommentRepository defines the interface for state/category annotations.
type CommentRepository interface {
	ListByStateCategory(ctx context.Context, state, serviceCategory string) ([]*entities.RateComment, error)
}

// PreferenceRepository defines the interface for email alert preferences.
type PreferenceRepository interface {
	GetByEmail(ctx context.Context, email string) (*entities.EmailPreference, error)
	Create(ctx context.Context, preference *entities.EmailPreference) error
	Update(ctx context.Context, preference *entities.EmailPreference) error
}
