package ports

import (
	"accident-alert-service/internal/domain"
	"context"
)

// Contract for turning an alert coordinate into a human-readable address.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, c domain.Coordinates) (*domain.Address, error)
}
