package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/repositories"
	"github.com/ratewatch/medicaid-rates-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/ratewatch/medicaid-rates-backend/pkg/errors"
)

// BillAdapter implements BillRepository against the bills table, keyed by
// the bill's URL.
type BillAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBillAdapter creates a new bill adapter
func NewBillAdapter(client *postgres.Client) repositories.BillRepository {
	return &BillAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// List returns all tracked bills, most recent action first.
func (a *BillAdapter) List(ctx context.Context) ([]*entities.Bill, error) {
	query, args, err := a.db.Select(
		"id", "state", "bill_number", "name", "last_action", "action_date",
		"sponsor_list", "bill_progress", "url",
		"service_lines_impacted", "service_lines_impacted_1",
		"service_lines_impacted_2", "service_lines_impacted_3",
		"ai_summary",
	).From("bills").
		Order(goqu.I("action_date").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build bill list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bills", err)
	}
	defer rows.Close()

	bills := []*entities.Bill{}
	for rows.Next() {
		bill := &entities.Bill{}
		var lastAction, actionDate, progress sql.NullString
		var line1, line2, line3, line4, summary sql.NullString
		var sponsors pq.StringArray

		err := rows.Scan(
			&bill.ID,
			&bill.State,
			&bill.BillNumber,
			&bill.Name,
			&lastAction,
			&actionDate,
			&sponsors,
			&progress,
			&bill.URL,
			&line1, &line2, &line3, &line4,
			&summary,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan bill", err)
		}

		bill.LastAction = lastAction.String
		bill.ActionDate = actionDate.String
		bill.SponsorList = entities.SponsorList(sponsors)
		bill.BillProgress = progress.String
		bill.ServiceLinesImpacted = line1.String
		bill.ServiceLinesImpacted2 = line2.String
		bill.ServiceLinesImpacted3 = line3.String
		bill.ServiceLinesImpacted4 = line4.String
		bill.AISummary = summary.String
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate bills", err)
	}

	return bills, nil
}

// UpdateServiceLines reclassifies a bill's service line slots by URL.
func (a *BillAdapter) UpdateServiceLines(ctx context.Context, update *entities.ServiceLineUpdate) (int64, error) {
	record := serviceLineRecord(update)
	if len(record) == 0 {
		return 0, apperrors.NewValidationError("no service line fields to update")
	}

	query, args, err := a.db.Update("bills").
		Set(record).
		Where(goqu.Ex{"url": update.Key}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build bill update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to update bill", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to read affected rows", err)
	}
	if affected == 0 {
		return 0, apperrors.NewNotFoundError(fmt.Sprintf("bill with url %s not found", update.Key))
	}
	return affected, nil
}

// Delete removes bills by URL.
func (a *BillAdapter) Delete(ctx context.Context, url string) (int64, error) {
	query, args, err := a.db.Delete("bills").
		Where(goqu.Ex{"url": url}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build bill delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to delete bill", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to read affected rows", err)
	}
	if affected == 0 {
		return 0, apperrors.NewNotFoundError(fmt.Sprintf("bill with url %s not found", url))
	}
	return affected, nil
}
