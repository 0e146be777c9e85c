package facilities

import (
	"accident-alert-service/internal/domain"
	"accident-alert-service/internal/ports"
	"context"
	"time"
)

// TimeoutFacilityStore bounds every read of the wrapped store.
type TimeoutFacilityStore struct {
	next    ports.FacilityStore
	timeout time.Duration
}

// WithTimeout wraps next; a non-positive timeout returns next unchanged.
func WithTimeout(next ports.FacilityStore, timeout time.Duration) ports.FacilityStore {
	if timeout <= 0 {
		return next
	}
	return &TimeoutFacilityStore{next: next, timeout: timeout}
}

func (s *TimeoutFacilityStore) ListFacilities(ctx context.Context, category domain.Category) ([]domain.Facility, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.ListFacilities(ctx, category)
}
