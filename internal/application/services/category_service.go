package services

import (
	"context"
	"strings"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/repositories"
	apperrors "github.com/ratewatch/medicaid-rates-backend/pkg/errors"
)

// CategoryService handles business logic for the service-line taxonomy
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// List returns the taxonomy.
func (s *CategoryService) List(ctx context.Context) ([]*entities.ServiceCategory, error) {
	return s.repo.List(ctx)
}

// Create adds a new taxonomy label.
func (s *CategoryService) Create(ctx context.Context, category string) (*entities.ServiceCategory, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperrors.NewValidationError("category is required")
	}

	entry := &entities.ServiceCategory{Category: category}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Rename changes a label in place. Records already classified under the old
// label are not touched.
func (s *CategoryService) Rename(ctx context.Context, oldCategory, newCategory string) error {
	oldCategory = strings.TrimSpace(oldCategory)
	newCategory = strings.TrimSpace(newCategory)
	if oldCategory == "" || newCategory == "" {
		return apperrors.NewValidationError("oldCategory and newCategory are required")
	}
	if oldCategory == newCategory {
		return apperrors.NewValidationError("new category matches the old one")
	}
	return s.repo.Rename(ctx, oldCategory, newCategory)
}

// Delete removes a label from the taxonomy.
func (s *CategoryService) Delete(ctx context.Context, category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return apperrors.NewValidationError("category is required")
	}
	return s.repo.Delete(ctx, category)
}
