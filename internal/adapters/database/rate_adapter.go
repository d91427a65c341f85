package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/repositories"
	"github.com/ratewatch/medicaid-rates-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/ratewatch/medicaid-rates-backend/pkg/errors"
)

var rateColumns = []interface{}{
	"id", "state_name", "service_category", "service_code", "service_description",
	"program", "location_region", "provider_type",
	"modifier_1", "modifier_1_details", "modifier_2", "modifier_2_details",
	"modifier_3", "modifier_3_details", "modifier_4", "modifier_4_details",
	"duration_unit", "rate", "rate_per_hour", "rate_effective_date",
}

// filterableRateColumns are the columns DistinctValues may target and Update
// may set. Column names never come from request input unchecked.
var filterableRateColumns = map[string]bool{
	"state_name":          true,
	"service_category":    true,
	"service_code":        true,
	"service_description": true,
	"program":             true,
	"location_region":     true,
	"provider_type":       true,
	"modifier_1":          true,
	"modifier_1_details":  true,
	"modifier_2":          true,
	"modifier_2_details":  true,
	"modifier_3":          true,
	"modifier_3_details":  true,
	"modifier_4":          true,
	"modifier_4_details":  true,
	"duration_unit":       true,
	"rate":                true,
	"rate_per_hour":       true,
	"rate_effective_date": true,
}

// RateAdapter implements RateRepository against the master_data table.
type RateAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRateAdapter creates a new rate adapter
func NewRateAdapter(client *postgres.Client) repositories.RateRepository {
	return &RateAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// List returns records matching the filter, ordered by id.
func (a *RateAdapter) List(ctx context.Context, filter repositories.RateFilter) ([]*entities.RateRecord, error) {
	ds := a.db.Select(rateColumns...).
		From("master_data").
		Where(filterExpressions(filter)...).
		Order(goqu.I("id").Asc())

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build rate list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list rates", err)
	}
	defer rows.Close()

	records := []*entities.RateRecord{}
	for rows.Next() {
		record, err := scanRateRecord(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan rate record", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate rate records", err)
	}

	return records, nil
}

// DistinctValues returns the distinct non-empty values of a filterable
// column among records matching the filter.
func (a *RateAdapter) DistinctValues(ctx context.Context, column string, filter repositories.RateFilter) ([]string, error) {
	if !filterableRateColumns[column] {
		return nil, apperrors.NewValidationError(fmt.Sprintf("column %q is not filterable", column))
	}

	where := filterExpressions(filter)
	where = append(where, goqu.L("COALESCE(TRIM(?), '')", goqu.I(column)).Neq(""))

	ds := a.db.Select(goqu.DISTINCT(goqu.I(column))).
		From("master_data").
		Where(where...).
		Order(goqu.I(column).Asc())

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build distinct values query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query distinct values", err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var value sql.NullString
		if err := rows.Scan(&value); err != nil {
			return nil, apperrors.NewInternalError("failed to scan distinct value", err)
		}
		if value.Valid && value.String != "" {
			values = append(values, value.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate distinct values", err)
	}

	return values, nil
}

// Update applies a partial field update by id and returns the merged row.
// Last write wins: there is no version check.
func (a *RateAdapter) Update(ctx context.Context, id string, fields map[string]interface{}) (*entities.RateRecord, error) {
	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("no fields to update")
	}

	record := goqu.Record{}
	for column, value := range fields {
		if !filterableRateColumns[column] {
			return nil, apperrors.NewValidationError(fmt.Sprintf("column %q is not editable", column))
		}
		record[column] = value
	}

	query, args, err := a.db.Update("master_data").
		Set(record).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build rate update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update rate record", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("rate record with id %s not found", id))
	}

	return a.getByID(ctx, id)
}

// Delete removes the record with the given id.
func (a *RateAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("master_data").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build rate delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete rate record", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("rate record with id %s not found", id))
	}

	return nil
}

func (a *RateAdapter) getByID(ctx context.Context, id string) (*entities.RateRecord, error) {
	query, args, err := a.db.Select(rateColumns...).
		From("master_data").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build rate select query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	record, err := scanRateRecord(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("rate record with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get rate record", err)
	}
	return record, nil
}

func filterExpressions(filter repositories.RateFilter) []goqu.Expression {
	expressions := []goqu.Expression{}

	if filter.ServiceCategory != "" {
		expressions = append(expressions, goqu.L("TRIM(service_category)").Eq(filter.ServiceCategory))
	}
	if filter.State != "" {
		expressions = append(expressions, goqu.L("UPPER(TRIM(state_name))").Eq(filter.State))
	}
	if filter.ServiceCode != "" {
		expressions = append(expressions, goqu.L("TRIM(service_code)").Eq(filter.ServiceCode))
	}
	if filter.ServiceDescription != "" {
		expressions = append(expressions, goqu.L("TRIM(service_description)").Eq(filter.ServiceDescription))
	}
	if filter.Program != "" {
		expressions = append(expressions, goqu.L("TRIM(program)").Eq(filter.Program))
	}
	if filter.LocationRegion != "" {
		expressions = append(expressions, goqu.L("TRIM(location_region)").Eq(filter.LocationRegion))
	}
	if filter.Modifier != "" {
		expressions = append(expressions, goqu.L("TRIM(modifier_1)").Eq(filter.Modifier))
	}
	if filter.ProviderType != "" {
		expressions = append(expressions, goqu.L("TRIM(provider_type)").Eq(filter.ProviderType))
	}

	return expressions
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRateRecord(row rowScanner) (*entities.RateRecord, error) {
	record := &entities.RateRecord{}
	var (
		id                            int64
		program, region, providerType sql.NullString
		mod1, mod1d, mod2, mod2d      sql.NullString
		mod3, mod3d, mod4, mod4d      sql.NullString
		durationUnit, rate            sql.NullString
		ratePerHour, rateDate         sql.NullString
	)

	err := row.Scan(
		&id,
		&record.StateName,
		&record.ServiceCategory,
		&record.ServiceCode,
		&record.ServiceDescription,
		&program,
		&region,
		&providerType,
		&mod1, &mod1d, &mod2, &mod2d,
		&mod3, &mod3d, &mod4, &mod4d,
		&durationUnit,
		&rate,
		&ratePerHour,
		&rateDate,
	)
	if err != nil {
		return nil, err
	}

	record.ID = strconv.FormatInt(id, 10)
	record.Program = program.String
	record.LocationRegion = region.String
	record.ProviderType = providerType.String
	record.Modifier1 = mod1.String
	record.Modifier1Details = mod1d.String
	record.Modifier2 = mod2.String
	record.Modifier2Details = mod2d.String
	record.Modifier3 = mod3.String
	record.Modifier3Details = mod3d.String
	record.Modifier4 = mod4.String
	record.Modifier4Details = mod4d.String
	record.DurationUnit = durationUnit.String
	record.Rate = rate.String
	record.RatePerHour = ratePerHour.String
	record.RateEffectiveDate = entities.FlexDate(rateDate.String)

	return record, nil
}
