package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/repositories"
	"github.com/ratewatch/medicaid-rates-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/ratewatch/medicaid-rates-backend/pkg/errors"
)

// AlertAdapter implements AlertRepository against the provider_alerts table.
// Alerts are keyed by link, the feed's natural key; affected-row counts are
// surfaced so duplicate links remain observable.
type AlertAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAlertAdapter creates a new alert adapter
func NewAlertAdapter(client *postgres.Client) repositories.AlertRepository {
	return &AlertAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// List returns all provider alerts, newest announcement first.
func (a *AlertAdapter) List(ctx context.Context) ([]*entities.Alert, error) {
	query, args, err := a.db.Select(
		"subject", "announcement_date", "state", "link",
		"service_lines_impacted", "service_lines_impacted_1",
		"service_lines_impacted_2", "service_lines_impacted_3",
		"summary",
	).From("provider_alerts").
		Order(goqu.I("announcement_date").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build alert list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list alerts", err)
	}
	defer rows.Close()

	alerts := []*entities.Alert{}
	for rows.Next() {
		alert := &entities.Alert{}
		var announcementDate, state, line1, line2, line3, line4, summary sql.NullString

		err := rows.Scan(
			&alert.Subject,
			&announcementDate,
			&state,
			&alert.Link,
			&line1, &line2, &line3, &line4,
			&summary,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan alert", err)
		}

		alert.AnnouncementDate = announcementDate.String
		alert.State = state.String
		alert.ServiceLinesImpacted = line1.String
		alert.ServiceLinesImpacted2 = line2.String
		alert.ServiceLinesImpacted3 = line3.String
		alert.ServiceLinesImpacted4 = line4.String
		alert.Summary = summary.String
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate alerts", err)
	}

	return alerts, nil
}

// UpdateServiceLines reclassifies an alert's service line slots by link.
// Only the slots present in the update are touched.
func (a *AlertAdapter) UpdateServiceLines(ctx context.Context, update *entities.ServiceLineUpdate) (int64, error) {
	record := serviceLineRecord(update)
	if len(record) == 0 {
		return 0, apperrors.NewValidationError("no service line fields to update")
	}

	query, args, err := a.db.Update("provider_alerts").
		Set(record).
		Where(goqu.Ex{"link": update.Key}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build alert update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to update alert", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to read affected rows", err)
	}
	if affected == 0 {
		return 0, apperrors.NewNotFoundError(fmt.Sprintf("alert with link %s not found", update.Key))
	}
	return affected, nil
}

// Delete removes alerts by link.
func (a *AlertAdapter) Delete(ctx context.Context, link string) (int64, error) {
	query, args, err := a.db.Delete("provider_alerts").
		Where(goqu.Ex{"link": link}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build alert delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to delete alert", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to read affected rows", err)
	}
	if affected == 0 {
		return 0, apperrors.NewNotFoundError(fmt.Sprintf("alert with link %s not found", link))
	}
	return affected, nil
}

// serviceLineRecord maps the non-nil slots of an update onto their columns.
func serviceLineRecord(update *entities.ServiceLineUpdate) goqu.Record {
	record := goqu.Record{}
	if update.Line1 != nil {
		record["service_lines_impacted"] = *update.Line1
	}
	if update.Line2 != nil {
		record["service_lines_impacted_1"] = *update.Line2
	}
	if update.Line3 != nil {
		record["service_lines_impacted_2"] = *update.Line3
	}
	if update.Line4 != nil {
		record["service_lines_impacted_3"] = *update.Line4
	}
	return record
}
