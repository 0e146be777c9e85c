package repositories

import (
	"accident-alert-service/internal/adapters/seed"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema for headquarters, reports and the reverse geocode cache.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createHeadquartersQuery := `
	CREATE TABLE IF NOT EXISTS headquarters (
		id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		lat DOUBLE PRECISION,
		long DOUBLE PRECISION,
		headquarter_name TEXT NOT NULL DEFAULT '',
		headquarter_location_name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createReportsQuery := `
	CREATE TABLE IF NOT EXISTS reports (
		report_id UUID PRIMARY KEY,
		witness_name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		long DOUBLE PRECISION NOT NULL,
		area_label TEXT NOT NULL,
		evidence_url TEXT NOT NULL DEFAULT '',
		reported_at TIMESTAMPTZ NOT NULL,
		police_id TEXT,
		police_lat DOUBLE PRECISION,
		police_long DOUBLE PRECISION,
		police_name TEXT,
		police_location_name TEXT,
		police_distance_km DOUBLE PRECISION,
		rescue_id TEXT,
		rescue_lat DOUBLE PRECISION,
		rescue_long DOUBLE PRECISION,
		rescue_name TEXT,
		rescue_location_name TEXT,
		rescue_distance_km DOUBLE PRECISION
	);
	`

	createReverseGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS reverse_geocode_cache (
		cell TEXT PRIMARY KEY,
		city TEXT NOT NULL,
		street TEXT NOT NULL,
		cached_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createCategoryIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_headquarters_category
	ON headquarters(category, created_at);
	`

	createReportedAtIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_reports_reported_at
	ON reports(reported_at DESC);
	`

	statements := []string{
		createHeadquartersQuery,
		createReportsQuery,
		createReverseGeocodeCacheQuery,
		createCategoryIndexQuery,
		createReportedAtIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Upsert headquarters documents loaded from a seed file.
func SeedHeadquarters(ctx context.Context, db *sql.DB, hqs []seed.Headquarter) error {
	if db == nil {
		return errors.New("seed headquarters: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed headquarters: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO headquarters (id, category, lat, long, headquarter_name, headquarter_location_name)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE
	SET category = EXCLUDED.category,
		lat = EXCLUDED.lat,
		long = EXCLUDED.long,
		headquarter_name = EXCLUDED.headquarter_name,
		headquarter_location_name = EXCLUDED.headquarter_location_name;
	`)
	if err != nil {
		return fmt.Errorf("seed headquarters: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, h := range hqs {
		if _, err := stmt.ExecContext(ctx, h.ID, h.Category, h.Lat, h.Long, h.Name, h.LocationName); err != nil {
			return fmt.Errorf("seed headquarters: insert id=%q: %w", h.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed headquarters: commit tx: %w", err)
	}

	return nil
}
