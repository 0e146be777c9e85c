package cache

import (
	"accident-alert-service/internal/domain"
	"accident-alert-service/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLReverseGeocodeCache is a Postgres-backed cache mapping grid cells to addresses.
type SQLReverseGeocodeCache struct {
	DB *sql.DB
}

func NewSQLReverseGeocodeCache(db *sql.DB) *SQLReverseGeocodeCache {
	return &SQLReverseGeocodeCache{DB: db}
}

// Fetch the cached address for a grid cell.
func (s *SQLReverseGeocodeCache) Get(ctx context.Context, cell string) (_ *domain.Address, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("reverse geocode cache: db is nil")
	}

	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, nil
	}

	q := `
	SELECT city, street
	FROM reverse_geocode_cache
	WHERE cell = $1;
	`

	var addr domain.Address
	err = s.DB.QueryRowContext(ctx, q, cell).Scan(&addr.City, &addr.Street)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reverse geocode cache cell=%q: %w", cell, err)
	}

	return &addr, nil
}

// Store a cell -> address mapping in the cache.
func (s *SQLReverseGeocodeCache) Put(ctx context.Context, cell string, addr domain.Address) error {
	if s.DB == nil {
		return errors.New("reverse geocode cache: db is nil")
	}

	if strings.TrimSpace(cell) == "" {
		return fmt.Errorf("insert reverse geocode cache: empty cell key")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO reverse_geocode_cache (cell, city, street)
	VALUES ($1, $2, $3)
	ON CONFLICT (cell) DO UPDATE
	SET city = EXCLUDED.city,
		street = EXCLUDED.street,
		cached_at = now();
	`, cell, addr.City, addr.Street)
	if err != nil {
		return fmt.Errorf("insert reverse geocode cache cell=%q: %w", cell, err)
	}

	return nil
}
