package services

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/repositories"
	apperrors "github.com/ratewatch/medicaid-rates-backend/pkg/errors"
)

// PreferenceService handles business logic for email alert preferences
type PreferenceService struct {
	repo repositories.PreferenceRepository
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(repo repositories.PreferenceRepository) *PreferenceService {
	return &PreferenceService{repo: repo}
}

// Get returns the stored preferences for an email, creating an empty row on
// first read so the settings page always has something to render.
func (s *PreferenceService) Get(ctx context.Context, email string) (*entities.EmailPreference, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	preference, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return preference, nil
	}

	if !apperrors.HasType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}

	preference = &entities.EmailPreference{
		ID:         uuid.New().String(),
		Email:      email,
		States:     []string{},
		Categories: []string{},
	}
	if err := s.repo.Create(ctx, preference); err != nil {
		return nil, err
	}
	return preference, nil
}

// Save replaces the stored selections for an email wholesale.
func (s *PreferenceService) Save(ctx context.Context, email string, states, categories []string) (*entities.EmailPreference, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	// Lazy-create covers users saving before their first read.
	preference, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}

	preference.States = cleanList(states)
	preference.Categories = cleanList(categories)
	if err := s.repo.Update(ctx, preference); err != nil {
		return nil, err
	}
	return preference, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", apperrors.NewValidationError("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", apperrors.NewValidationError("email is not a valid address")
	}
	return email, nil
}

func cleanList(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return cleaned
}
