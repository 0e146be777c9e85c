package facilities

import (
	"accident-alert-service/internal/adapters/seed"
	"accident-alert-service/internal/domain"
	"context"
	"fmt"
	"sync"
)

// MemoryFacilityStore keeps facilities in process memory, in insertion order.
// Used for local runs without a backing store and as a test double.
type MemoryFacilityStore struct {
	mu   sync.RWMutex
	data map[domain.Category][]domain.Facility
	err  error
}

func NewMemoryFacilityStore() *MemoryFacilityStore {
	return &MemoryFacilityStore{data: make(map[domain.Category][]domain.Facility)}
}

// Add appends facilities to a category.
func (s *MemoryFacilityStore) Add(category domain.Category, fs ...domain.Facility) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[category] = append(s.data[category], fs...)
}

// FailWith makes every subsequent ListFacilities call return err.
func (s *MemoryFacilityStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// ListFacilities returns a copy so callers cannot mutate the stored slice.
func (s *MemoryFacilityStore) ListFacilities(ctx context.Context, category domain.Category) ([]domain.Facility, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.err != nil {
		return nil, s.err
	}

	src := s.data[category]
	out := make([]domain.Facility, len(src))
	copy(out, src)
	return out, nil
}

// AddHeadquarters files seed documents under their categories.
func (s *MemoryFacilityStore) AddHeadquarters(hqs []seed.Headquarter) error {
	for _, hq := range hqs {
		c, err := domain.ParseCategory(hq.Category)
		if err != nil {
			return fmt.Errorf("add headquarters: %s: %w", hq.ID, err)
		}
		s.Add(c, hq.Facility())
	}
	return nil
}
