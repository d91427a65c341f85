package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/repositories"
	apperrors "github.com/ratewatch/medicaid-rates-backend/pkg/errors"
)

// AlertService handles business logic for provider alerts
type AlertService struct {
	repo repositories.AlertRepository
}

// NewAlertService creates a new alert service
func NewAlertService(repo repositories.AlertRepository) *AlertService {
	return &AlertService{repo: repo}
}

// List returns all provider alerts.
func (s *AlertService) List(ctx context.Context) ([]*entities.Alert, error) {
	return s.repo.List(ctx)
}

// UpdateServiceLines reclassifies an alert's service line slots by link.
func (s *AlertService) UpdateServiceLines(ctx context.Context, update *entities.ServiceLineUpdate) (int64, error) {
	if update.Key == "" {
		return 0, apperrors.NewValidationError("link is required")
	}

	affected, err := s.repo.UpdateServiceLines(ctx, update)
	if err != nil {
		return 0, err
	}
	if affected > 1 {
		// Links are a natural key from the source feed, not enforced unique.
		log.Warn().Str("link", update.Key).Int64("affected", affected).
			Msg("Service line update matched multiple alerts")
	}
	return affected, nil
}

// Delete removes alerts by link.
func (s *AlertService) Delete(ctx context.Context, link string) (int64, error) {
	if link == "" {
		return 0, apperrors.NewValidationError("link is required")
	}
	return s.repo.Delete(ctx, link)
}
