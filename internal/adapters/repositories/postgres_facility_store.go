package repositories

import (
	"accident-alert-service/internal/domain"
	"accident-alert-service/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the FacilityStore port.
// Rows with a NULL lat or long are returned with nil coordinates.
type PostgresFacilityStore struct{ DB *sql.DB }

// Row order is the tie-break order: at equal distance the resolver keeps the
// first row, so the earliest created headquarters wins, then the lowest id.
// Changing this ORDER BY changes which facility is dispatched on ties.
const listFacilitiesQuery = `
	SELECT
		id,
		lat,
		long,
		headquarter_name,
		headquarter_location_name
	FROM headquarters
	WHERE category = $1
	ORDER BY created_at, id;
	`

func NewPostgresFacilityStore(db *sql.DB) *PostgresFacilityStore {
	return &PostgresFacilityStore{DB: db}
}

func (s *PostgresFacilityStore) ListFacilities(
	ctx context.Context,
	category domain.Category,
) (_ []domain.Facility, err error) {
	defer obs.Time(ctx, "postgres.ListFacilities."+string(category))(&err)

	if s.DB == nil {
		return nil, errors.New("postgres facility store: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, listFacilitiesQuery, string(category))
	if err != nil {
		return nil, fmt.Errorf("list facilities: query headquarters table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Facility, 0, 16)
	for rows.Next() {
		var (
			f         domain.Facility
			lat, long sql.NullFloat64
		)
		if err := rows.Scan(&f.ID, &lat, &long, &f.Name, &f.LocationLabel); err != nil {
			return nil, fmt.Errorf("list facilities: scan row: %w", err)
		}
		out = append(out, withCoordinates(f, lat, long))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list facilities: row iteration: %w", err)
	}

	return out, nil
}

// withCoordinates sets f's coordinates only when both columns are non-NULL.
func withCoordinates(f domain.Facility, lat, long sql.NullFloat64) domain.Facility {
	if lat.Valid && long.Valid {
		f.Coordinates = &domain.Coordinates{Lat: lat.Float64, Lon: long.Float64}
	}
	return f
}
