package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/repositories"
	"github.com/ratewatch/medicaid-rates-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/ratewatch/medicaid-rates-backend/pkg/errors"
)

// CommentAdapter implements CommentRepository against the comments_table.
type CommentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCommentAdapter creates a new comment adapter
func NewCommentAdapter(client *postgres.Client) repositories.CommentRepository {
	return &CommentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByStateCategory returns the annotations for a state and service
// category pair. State matching is case-insensitive to mirror how the
// comparison tables match states.
func (a *CommentAdapter) ListByStateCategory(ctx context.Context, state, serviceCategory string) ([]*entities.RateComment, error) {
	query, args, err := a.db.Select("id", "state", "service_category", "comment").
		From("comments_table").
		Where(
			goqu.L("UPPER(TRIM(state))").Eq(state),
			goqu.L("TRIM(service_category)").Eq(serviceCategory),
		).
		Order(goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build comment list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list comments", err)
	}
	defer rows.Close()

	comments := []*entities.RateComment{}
	for rows.Next() {
		comment := &entities.RateComment{}
		var text sql.NullString
		if err := rows.Scan(&comment.ID, &comment.State, &comment.ServiceCategory, &text); err != nil {
			return nil, apperrors.NewInternalError("failed to scan comment", err)
		}
		comment.Comment = text.String
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate comments", err)
	}

	return comments, nil
}
