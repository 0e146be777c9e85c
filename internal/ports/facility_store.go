package ports

import (
	"accident-alert-service/internal/domain"
	"context"
)

// Port: a boundary for reading headquarters of one category from a facility store.
type FacilityStore interface {
	// Retrieve every facility of the category. Order is whatever the store returns.
	ListFacilities(ctx context.Context, category domain.Category) ([]domain.Facility, error)
}
