package facilities

import (
	"accident-alert-service/internal/adapters/seed"
	"accident-alert-service/internal/domain"
	"context"
	"errors"
	"testing"
	"time"
)

type blockingStore struct{}

func (blockingStore) ListFacilities(ctx context.Context, _ domain.Category) ([]domain.Facility, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestWithTimeoutCancelsSlowReads(t *testing.T) {
	store := WithTimeout(blockingStore{}, 10*time.Millisecond)

	_, err := store.ListFacilities(context.Background(), domain.CategoryPolice)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestWithTimeoutZeroIsPassThrough(t *testing.T) {
	inner := NewMemoryFacilityStore()
	if got := WithTimeout(inner, 0); got != inner {
		t.Fatalf("expected the inner store back, got %T", got)
	}
}

func TestMemoryFacilityStoreAddHeadquarters(t *testing.T) {
	lat, long := 14.58, 120.97
	store := NewMemoryFacilityStore()

	err := store.AddHeadquarters([]seed.Headquarter{
		{ID: "p1", Category: "police", Lat: &lat, Long: &long, Name: "MPD"},
		{ID: "r1", Category: "rescue", Name: "No coords"},
	})
	if err != nil {
		t.Fatalf("AddHeadquarters error: %v", err)
	}

	rescue, _ := store.ListFacilities(context.Background(), domain.CategoryRescue)
	if len(rescue) != 1 || rescue[0].Coordinates != nil {
		t.Fatalf("rescue = %+v", rescue)
	}

	err = store.AddHeadquarters([]seed.Headquarter{{ID: "x", Category: "fire"}})
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
}
