package facilities

import (
	"accident-alert-service/internal/adapters/seed"
	"accident-alert-service/internal/domain"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T) (*RedisFacilityStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisFacilityStore(client, ""), mr
}

func ptr(v float64) *float64 { return &v }

func TestRedisFacilityStoreRoundTrip(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	err := store.PutHeadquarters(ctx, []seed.Headquarter{
		{ID: "p2", Category: "police", Lat: ptr(10.3157), Long: ptr(123.8854), Name: "Cebu City Police"},
		{ID: "p1", Category: "police", Lat: ptr(14.6760), Long: ptr(121.0437), Name: "QCPD", LocationName: "Camp Karingal"},
		{ID: "r1", Category: "rescue", Name: "Station without coordinates"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	police, err := store.ListFacilities(ctx, domain.CategoryPolice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(police) != 2 {
		t.Fatalf("police = %d facilities, want 2", len(police))
	}
	if police[0].ID != "p1" || police[1].ID != "p2" {
		t.Fatalf("order = %s,%s, want p1,p2", police[0].ID, police[1].ID)
	}
	if police[0].Coordinates == nil || police[0].Coordinates.Lat != 14.6760 {
		t.Fatalf("p1 coordinates = %v", police[0].Coordinates)
	}
	if police[0].Name != "QCPD" || police[0].LocationLabel != "Camp Karingal" {
		t.Fatalf("p1 = %+v", police[0])
	}

	rescue, err := store.ListFacilities(ctx, domain.CategoryRescue)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rescue) != 1 || rescue[0].Coordinates != nil {
		t.Fatalf("rescue = %+v, want one facility without coordinates", rescue)
	}
}

func TestRedisFacilityStoreUndecodableDocument(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.HSet("hq:police", "broken", "{not json")

	got, err := store.ListFacilities(context.Background(), domain.CategoryPolice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "broken" || got[0].Coordinates != nil {
		t.Fatalf("got %+v, want broken facility without coordinates", got)
	}
	if err := got[0].Validate(); err == nil {
		t.Fatal("expected undecodable document to fail validation")
	}
}

func TestRedisFacilityStoreEmptyCategory(t *testing.T) {
	store, _ := newRedisStore(t)

	got, err := store.ListFacilities(context.Background(), domain.CategoryRescue)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d facilities, want 0", len(got))
	}
}

func TestRedisFacilityStoreUnavailable(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Close()

	if _, err := store.ListFacilities(context.Background(), domain.CategoryPolice); err == nil {
		t.Fatal("expected error when redis is down")
	}
}

func TestMemoryFacilityStoreReturnsCopy(t *testing.T) {
	store := NewMemoryFacilityStore()
	store.Add(domain.CategoryPolice, domain.Facility{ID: "a"}, domain.Facility{ID: "b"})

	first, _ := store.ListFacilities(context.Background(), domain.CategoryPolice)
	first[0], first[1] = first[1], first[0]

	second, _ := store.ListFacilities(context.Background(), domain.CategoryPolice)
	if second[0].ID != "a" {
		t.Fatalf("stored order changed: first = %q", second[0].ID)
	}
}
