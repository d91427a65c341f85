package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/ratewatch/medicaid-rates-backend/internal/infrastructure/clients/postgres"
	"github.com/ratewatch/medicaid-rates-backend/internal/infrastructure/observability"
	"github.com/ratewatch/medicaid-rates-backend/pkg/config"
)

var schema = `
CREATE TABLE IF NOT EXISTS master_data (
	id                  SERIAL PRIMARY KEY,
	state_name          TEXT NOT NULL,
	service_category    TEXT NOT NULL,
	service_code        TEXT NOT NULL,
	service_description TEXT NOT NULL,
	program             TEXT,
	location_region     TEXT,
	provider_type       TEXT,
	modifier_1          TEXT,
	modifier_1_details  TEXT,
	modifier_2          TEXT,
	modifier_2_details  TEXT,
	modifier_3          TEXT,
	modifier_3_details  TEXT,
	modifier_4          TEXT,
	modifier_4_details  TEXT,
	duration_unit       TEXT,
	rate                TEXT,
	rate_per_hour       TEXT,
	rate_effective_date TEXT
);

CREATE TABLE IF NOT EXISTS provider_alerts (
	subject                  TEXT NOT NULL,
	announcement_date        TEXT,
	state                    TEXT,
	link                     TEXT NOT NULL,
	service_lines_impacted   TEXT,
	service_lines_impacted_1 TEXT,
	service_lines_impacted_2 TEXT,
	service_lines_impacted_3 TEXT,
	summary                  TEXT
);

CREATE TABLE IF NOT EXISTS bills (
	id                       SERIAL PRIMARY KEY,
	state                    TEXT NOT NULL,
	bill_number              TEXT NOT NULL,
	name                     TEXT NOT NULL,
	last_action              TEXT,
	action_date              TEXT,
	sponsor_list             TEXT[],
	bill_progress            TEXT,
	url                      TEXT NOT NULL,
	service_lines_impacted   TEXT,
	service_lines_impacted_1 TEXT,
	service_lines_impacted_2 TEXT,
	service_lines_impacted_3 TEXT,
	ai_summary               TEXT
);

CREATE TABLE IF NOT EXISTS service_category_list (
	id         TEXT PRIMARY KEY,
	category   TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS comments_table (
	id               SERIAL PRIMARY KEY,
	state            TEXT NOT NULL,
	service_category TEXT NOT NULL,
	comment          TEXT
);

CREATE TABLE IF NOT EXISTS email_preferences (
	id         TEXT PRIMARY KEY,
	email      TEXT NOT NULL UNIQUE,
	states     TEXT[] NOT NULL DEFAULT '{}',
	categories TEXT[] NOT NULL DEFAULT '{}',
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	observability.InitLogger("medicaid-rates-seed", cfg.Server.Env)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to DB")
	}
	defer pgClient.Close()

	ctx := context.Background()
	db := pgClient.DB()

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, dropping tables before seeding")
		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS
				master_data,
				provider_alerts,
				bills,
				service_category_list,
				comments_table,
				email_preferences
			CASCADE
		`)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to reset tables")
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		log.Fatal().Err(err).Msg("Failed to create schema")
	}

	// 1. Seed the service-line taxonomy
	categories := []string{
		"DENTAL", "BEHAVIORAL HEALTH", "HOME HEALTH",
		"PHYSICAL THERAPY", "OCCUPATIONAL THERAPY",
	}
	for _, category := range categories {
		_, err := db.ExecContext(ctx,
			`INSERT INTO service_category_list (id, category, created_at)
			 VALUES ($1, $2, $3) ON CONFLICT (category) DO NOTHING`,
			uuid.New().String(), category, time.Now().UTC())
		if err != nil {
			log.Error().Err(err).Str("category", category).Msg("Failed to seed category")
		}
	}

	// 2. Seed rate rows, including a superseded effective date for D0120
	rates := [][]interface{}{
		{"OHIO", "DENTAL", "D0120", "Periodic oral evaluation", "Medicaid FFS", "Statewide", "Dentist", "15 MINUTES", "$25.00", "1/1/2022"},
		{"OHIO", "DENTAL", "D0120", "Periodic oral evaluation", "Medicaid FFS", "Statewide", "Dentist", "15 MINUTES", "$25.00", "44986"},
		{"OHIO", "DENTAL", "D0150", "Comprehensive oral evaluation", "Medicaid FFS", "Statewide", "Dentist", "30 MINUTES", "$42.50", "3/1/2023"},
		{"ALASKA", "DENTAL", "D0120", "Periodic oral evaluation", "Medicaid FFS", "Statewide", "Dentist", "15 MINUTES", "$38.00", "7/1/2023"},
		{"ALASKA", "BEHAVIORAL HEALTH", "H0004", "Behavioral health counseling", "Medicaid FFS", "Statewide", "Licensed counselor", "PER HOUR", "$96.00", "1/1/2023"},
		{"TEXAS", "HOME HEALTH", "G0156", "Home health aide services", "STAR+PLUS", "Region 6", "Home health agency", "15 MINUTES", "$4.42", "9/1/2023"},
	}
	for _, row := range rates {
		_, err := db.ExecContext(ctx,
			`INSERT INTO master_data (
				state_name, service_category, service_code, service_description,
				program, location_region, provider_type, duration_unit, rate,
				rate_effective_date
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			row...)
		if err != nil {
			log.Error().Err(err).Msg("Failed to seed rate row")
		}
	}

	// 3. Seed provider alerts
	_, err = db.ExecContext(ctx,
		`INSERT INTO provider_alerts (
			subject, announcement_date, state, link, service_lines_impacted, summary
		) VALUES ($1,$2,$3,$4,$5,$6)`,
		"Ohio Medicaid dental fee schedule update",
		"3/1/2023",
		"OHIO",
		"https://medicaid.ohio.gov/alerts/dental-2023-03",
		"DENTAL",
		"Updated reimbursement rates for dental evaluation codes effective March 2023.")
	if err != nil {
		log.Error().Err(err).Msg("Failed to seed provider alert")
	}

	// 4. Seed a tracked bill
	_, err = db.ExecContext(ctx,
		`INSERT INTO bills (
			state, bill_number, name, last_action, action_date, sponsor_list,
			bill_progress, url, service_lines_impacted, ai_summary
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		"TEXAS",
		"HB 100",
		"Medicaid reimbursement rate review",
		"Referred to committee",
		"5/12/2023",
		pq.Array([]string{"Rep. A. Garcia", "Rep. L. Chen"}),
		"In committee",
		"https://capitol.texas.gov/billlookup/HB100",
		"HOME HEALTH",
		"Directs the state to review home health reimbursement methodology.")
	if err != nil {
		log.Error().Err(err).Msg("Failed to seed bill")
	}

	// 5. Seed a comment annotation
	_, err = db.ExecContext(ctx,
		`INSERT INTO comments_table (state, service_category, comment)
		 VALUES ($1,$2,$3)`,
		"OHIO", "DENTAL",
		"Ohio pays dental evaluations per 15-minute unit; compare hourly-adjusted.")
	if err != nil {
		log.Error().Err(err).Msg("Failed to seed comment")
	}

	log.Info().Msg("Seeding complete")
}
