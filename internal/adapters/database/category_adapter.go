package database

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/repositories"
	"github.com/ratewatch/medicaid-rates-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/ratewatch/medicaid-rates-backend/pkg/errors"
)

// CategoryAdapter implements CategoryRepository against the
// service_category_list table.
type CategoryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCategoryAdapter creates a new category adapter
func NewCategoryAdapter(client *postgres.Client) repositories.CategoryRepository {
	return &CategoryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// List returns the taxonomy in alphabetical order.
func (a *CategoryAdapter) List(ctx context.Context) ([]*entities.ServiceCategory, error) {
	query, args, err := a.db.Select("id", "category", "created_at").
		From("service_category_list").
		Order(goqu.I("category").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build category list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list categories", err)
	}
	defer rows.Close()

	categories := []*entities.ServiceCategory{}
	for rows.Next() {
		category := &entities.ServiceCategory{}
		if err := rows.Scan(&category.ID, &category.Category, &category.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan category", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate categories", err)
	}

	return categories, nil
}

// Create inserts a new taxonomy label. The label itself is the identity a
// reader cares about; duplicates are rejected by the unique constraint.
func (a *CategoryAdapter) Create(ctx context.Context, category *entities.ServiceCategory) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}

	query, args, err := a.db.Insert("service_category_list").
		Rows(goqu.Record{
			"id":         category.ID,
			"category":   category.Category,
			"created_at": category.CreatedAt,
		}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build category insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create category", err)
	}
	return nil
}

// Rename changes a label in place. Records already classified under the old
// label keep it; the taxonomy has no referential integrity by design of the
// underlying data feed.
func (a *CategoryAdapter) Rename(ctx context.Context, oldCategory, newCategory string) error {
	query, args, err := a.db.Update("service_category_list").
		Set(goqu.Record{"category": newCategory}).
		Where(goqu.Ex{"category": oldCategory}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build category rename query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to rename category", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("category %q not found", oldCategory))
	}
	return nil
}

// Delete removes a label from the taxonomy.
func (a *CategoryAdapter) Delete(ctx context.Context, category string) error {
	query, args, err := a.db.Delete("service_category_list").
		Where(goqu.Ex{"category": category}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build category delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete category", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("category %q not found", category))
	}
	return nil
}
