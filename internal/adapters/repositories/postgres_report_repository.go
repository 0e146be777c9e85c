package repositories

import (
	"accident-alert-service/internal/domain"
	"accident-alert-service/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the ReportRepository port.
type PostgresReportRepository struct{ DB *sql.DB }

func NewPostgresReportRepository(db *sql.DB) *PostgresReportRepository {
	return &PostgresReportRepository{DB: db}
}

// nearestColumns flattens a NearestResult into nullable column values.
func nearestColumns(r domain.NearestResult) []any {
	if !r.Found() {
		return []any{nil, nil, nil, nil, nil, nil}
	}
	return []any{r.FacilityID, r.Coordinates.Lat, r.Coordinates.Lon, r.Name, r.LocationLabel, r.DistanceKm}
}

type nearestRow struct {
	id, name, locationName sql.NullString
	lat, long, distance    sql.NullFloat64
}

func (n *nearestRow) dest() []any {
	return []any{&n.id, &n.lat, &n.long, &n.name, &n.locationName, &n.distance}
}

func (n *nearestRow) result() domain.NearestResult {
	if !n.id.Valid || !n.lat.Valid || !n.long.Valid {
		return domain.NearestResult{}
	}
	return domain.NearestResult{
		FacilityID:    n.id.String,
		Coordinates:   &domain.Coordinates{Lat: n.lat.Float64, Lon: n.long.Float64},
		Name:          n.name.String,
		LocationLabel: n.locationName.String,
		DistanceKm:    n.distance.Float64,
	}
}

func (s *PostgresReportRepository) SaveReport(ctx context.Context, report *domain.Report) (err error) {
	defer obs.Time(ctx, "postgres.SaveReport")(&err)

	if s.DB == nil {
		return errors.New("postgres report repository: DB is nil")
	}
	if report == nil {
		return errors.New("save report: report is nil")
	}

	query := `
	INSERT INTO reports (
		report_id, witness_name, lat, long, area_label, evidence_url, reported_at,
		police_id, police_lat, police_long, police_name, police_location_name, police_distance_km,
		rescue_id, rescue_lat, rescue_long, rescue_name, rescue_location_name, rescue_distance_km
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`

	args := []any{
		report.ReportID,
		report.WitnessName,
		report.Location.Lat,
		report.Location.Lon,
		report.AreaLabel,
		report.EvidenceURL,
		report.ReportedAt,
	}
	args = append(args, nearestColumns(report.Police)...)
	args = append(args, nearestColumns(report.Rescue)...)

	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save report: insert report_id=%s: %w", report.ReportID, err)
	}

	return nil
}

// Return the most recent reports, newest first.
func (s *PostgresReportRepository) ListReports(ctx context.Context, limit int) (_ []*domain.Report, err error) {
	defer obs.Time(ctx, "postgres.ListReports")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres report repository: DB is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	query := `
	SELECT
		report_id, witness_name, lat, long, area_label, evidence_url, reported_at,
		police_id, police_lat, police_long, police_name, police_location_name, police_distance_km,
		rescue_id, rescue_lat, rescue_long, rescue_name, rescue_location_name, rescue_distance_km
	FROM reports
	ORDER BY reported_at DESC
	LIMIT $1;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: query reports table: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Report, 0, limit)
	for rows.Next() {
		var (
			r              domain.Report
			police, rescue nearestRow
		)
		dest := []any{
			&r.ReportID, &r.WitnessName, &r.Location.Lat, &r.Location.Lon,
			&r.AreaLabel, &r.EvidenceURL, &r.ReportedAt,
		}
		dest = append(dest, police.dest()...)
		dest = append(dest, rescue.dest()...)

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("list reports: scan row: %w", err)
		}
		r.Police = police.result()
		r.Rescue = rescue.result()
		out = append(out, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reports: row iteration: %w", err)
	}

	return out, nil
}
