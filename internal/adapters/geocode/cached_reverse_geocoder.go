package geocode

import (
	"accident-alert-service/internal/domain"
	"accident-alert-service/internal/platform/obs"
	"accident-alert-service/internal/ports"
	"context"

	"github.com/rs/zerolog/log"
)

// CachedReverseGeocoder answers from cache by grid cell and falls back to next.
// Cache failures are logged and never fail the lookup; empty results are not cached.
type CachedReverseGeocoder struct {
	next  ports.ReverseGeocoder
	cache ports.ReverseGeocodeCache
}

func NewCachedReverseGeocoder(next ports.ReverseGeocoder, cache ports.ReverseGeocodeCache) *CachedReverseGeocoder {
	return &CachedReverseGeocoder{next: next, cache: cache}
}

func (g *CachedReverseGeocoder) ReverseGeocode(ctx context.Context, c domain.Coordinates) (*domain.Address, error) {
	if !c.IsFinite() {
		return g.next.ReverseGeocode(ctx, c)
	}

	cell := domain.GridCell(c)

	addr, err := g.cache.Get(ctx, cell)
	if err != nil {
		log.Warn().Str("req_id", obs.RequestID(ctx)).Str("cell", cell).Err(err).Msg("reverse geocode cache read failed")
	}
	if addr != nil {
		return addr, nil
	}

	addr, err = g.next.ReverseGeocode(ctx, c)
	if err != nil || addr == nil {
		return addr, err
	}

	if err := g.cache.Put(ctx, cell, *addr); err != nil {
		log.Warn().Str("req_id", obs.RequestID(ctx)).Str("cell", cell).Err(err).Msg("reverse geocode cache write failed")
	}
	return addr, nil
}
