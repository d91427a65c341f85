package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/repositories"
	"github.com/ratewatch/medicaid-rates-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/ratewatch/medicaid-rates-backend/pkg/errors"
)

// PreferenceAdapter implements PreferenceRepository against the
// email_preferences table. States and categories are stored as text arrays
// and replaced wholesale on every save.
type PreferenceAdapter struct {
	db *sqlx.DB
}

// NewPreferenceAdapter creates a new preference adapter
func NewPreferenceAdapter(client *postgres.Client) repositories.PreferenceRepository {
	return &PreferenceAdapter{
		db: sqlx.NewDb(client.DB(), "postgres"),
	}
}

type preferenceRow struct {
	ID         string         `db:"id"`
	Email      string         `db:"email"`
	States     pq.StringArray `db:"states"`
	Categories pq.StringArray `db:"categories"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

// GetByEmail returns the preference row for an email, or a NotFound error
// when the user has never saved one.
func (a *PreferenceAdapter) GetByEmail(ctx context.Context, email string) (*entities.EmailPreference, error) {
	var row preferenceRow
	err := a.db.GetContext(ctx, &row,
		`SELECT id, email, states, categories, updated_at
		 FROM email_preferences
		 WHERE email = $1`, email)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("no preferences for " + email)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get preferences", err)
	}

	return &entities.EmailPreference{
		ID:         row.ID,
		Email:      row.Email,
		States:     []string(row.States),
		Categories: []string(row.Categories),
		UpdatedAt:  row.UpdatedAt,
	}, nil
}

// Create inserts the initial preference row for an email.
func (a *PreferenceAdapter) Create(ctx context.Context, preference *entities.EmailPreference) error {
	if preference.UpdatedAt.IsZero() {
		preference.UpdatedAt = time.Now().UTC()
	}

	_, err := a.db.ExecContext(ctx,
		`INSERT INTO email_preferences (id, email, states, categories, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		preference.ID,
		preference.Email,
		pq.Array(preference.States),
		pq.Array(preference.Categories),
		preference.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewInternalError("failed to create preferences", err)
	}
	return nil
}

// Update replaces the stored selections for an email.
func (a *PreferenceAdapter) Update(ctx context.Context, preference *entities.EmailPreference) error {
	preference.UpdatedAt = time.Now().UTC()

	result, err := a.db.ExecContext(ctx,
		`UPDATE email_preferences
		 SET states = $1, categories = $2, updated_at = $3
		 WHERE email = $4`,
		pq.Array(preference.States),
		pq.Array(preference.Categories),
		preference.UpdatedAt,
		preference.Email,
	)
	if err != nil {
		return apperrors.NewInternalError("failed to update preferences", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.NewNotFoundError("no preferences for " + preference.Email)
	}
	return nil
}
