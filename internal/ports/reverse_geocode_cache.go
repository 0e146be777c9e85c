package ports

import (
	"accident-alert-service/internal/domain"
	"context"
)

// Port: lookup cache for reverse-geocoded addresses.
// Keys are grid cells produced by domain.GridCell; a miss returns (nil, nil).
type ReverseGeocodeCache interface {
	Get(ctx context.Context, cell string) (*domain.Address, error)
	Put(ctx context.Context, cell string, addr domain.Address) error
}
