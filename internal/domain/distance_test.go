package domain

import (
	"math"
	"testing"
)

var (
	manila     = Coordinates{Lat: 14.5995, Lon: 120.9842}
	quezonCity = Coordinates{Lat: 14.6760, Lon: 121.0437}
	cebu       = Coordinates{Lat: 10.3157, Lon: 123.8854}
)

func TestHaversineKmKnownDistances(t *testing.T) {
	tests := []struct {
		name string
		a, b Coordinates
		min  float64
		max  float64
	}{
		{name: "manila to quezon city", a: manila, b: quezonCity, min: 10, max: 12},
		{name: "manila to cebu", a: manila, b: cebu, min: 560, max: 580},
		{name: "quarter meridian", a: Coordinates{0, 0}, b: Coordinates{90, 0}, min: 10007, max: 10008},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.a, tt.b)
			if got < tt.min || got > tt.max {
				t.Fatalf("distance = %.3f km, want within [%v, %v]", got, tt.min, tt.max)
			}
		})
	}
}

func TestHaversineKmSymmetric(t *testing.T) {
	points := []Coordinates{
		manila,
		quezonCity,
		cebu,
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 51.5074, Lon: -0.1278},
		{Lat: 95, Lon: 200}, // out of range is still accepted
	}

	for _, a := range points {
		for _, b := range points {
			ab := HaversineKm(a, b)
			ba := HaversineKm(b, a)
			if math.Abs(ab-ba) > 1e-9 {
				t.Fatalf("distance(%v, %v) = %v, distance(%v, %v) = %v", a, b, ab, b, a, ba)
			}
		}
	}
}

func TestHaversineKmZeroForSamePoint(t *testing.T) {
	for _, p := range []Coordinates{manila, cebu, {0, 0}, {-90, 180}} {
		if d := HaversineKm(p, p); d != 0 {
			t.Fatalf("distance(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestCoordinatesIsFinite(t *testing.T) {
	tests := []struct {
		c    Coordinates
		want bool
	}{
		{Coordinates{14.6, 121.0}, true},
		{Coordinates{200, -400}, true},
		{Coordinates{math.NaN(), 0}, false},
		{Coordinates{0, math.Inf(1)}, false},
		{Coordinates{math.Inf(-1), math.NaN()}, false},
	}

	for _, tt := range tests {
		if got := tt.c.IsFinite(); got != tt.want {
			t.Errorf("IsFinite(%v) = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestGridCell(t *testing.T) {
	a := GridCell(Coordinates{Lat: 14.59951, Lon: 120.98421})
	b := GridCell(Coordinates{Lat: 14.59949, Lon: 120.98419})
	if a != "14.5995,120.9842" || a != b {
		t.Fatalf("cells = %q, %q", a, b)
	}
	if c := GridCell(Coordinates{Lat: 14.6, Lon: 120.9842}); c == a {
		t.Fatalf("distinct points share cell %q", c)
	}
}

func TestHaversineKmFiniteForOutOfRangeLatitudes(t *testing.T) {
	tests := []struct {
		name string
		a, b Coordinates
	}{
		{name: "mirrored past the pole", a: Coordinates{Lat: 38.21737473641391, Lon: 0}, b: Coordinates{Lat: 141.78262526358608, Lon: 180}},
		{name: "both beyond north pole", a: Coordinates{Lat: 100, Lon: 400}, b: Coordinates{Lat: 95, Lon: 200}},
		{name: "opposite overflows", a: Coordinates{Lat: 170, Lon: -10}, b: Coordinates{Lat: -190, Lon: 350}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.a, tt.b)
			if math.IsNaN(got) || math.IsInf(got, 0) || got < 0 {
				t.Fatalf("distance = %v, want a finite non-negative value", got)
			}
		})
	}
}
