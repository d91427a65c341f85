package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/repositories"
	apperrors "github.com/ratewatch/medicaid-rates-backend/pkg/errors"
)

// BillService handles business logic for legislative records
type BillService struct {
	repo repositories.BillRepository
}

// NewBillService creates a new bill service
func NewBillService(repo repositories.BillRepository) *BillService {
	return &BillService{repo: repo}
}

// List returns all tracked bills.
func (s *BillService) List(ctx context.Context) ([]*entities.Bill, error) {
	return s.repo.List(ctx)
}

// UpdateServiceLines reclassifies a bill's service line slots by URL.
func (s *BillService) UpdateServiceLines(ctx context.Context, update *entities.ServiceLineUpdate) (int64, error) {
	if update.Key == "" {
		return 0, apperrors.NewValidationError("url is required")
	}

	affected, err := s.repo.UpdateServiceLines(ctx, update)
	if err != nil {
		return 0, err
	}
	if affected > 1 {
		log.Warn().Str("url", update.Key).Int64("affected", affected).
			Msg("Service line update matched multiple bills")
	}
	return affected, nil
}

// Delete removes bills by URL.
func (s *BillService) Delete(ctx context.Context, url string) (int64, error) {
	if url == "" {
		return 0, apperrors.NewValidationError("url is required")
	}
	return s.repo.Delete(ctx, url)
}
