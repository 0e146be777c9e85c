package domain

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestFacilityValidate(t *testing.T) {
	valid := Facility{ID: "a", Coordinates: &Coordinates{Lat: 1, Lon: 2}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missing := Facility{ID: "b"}
	err := missing.Validate()
	if !errors.Is(err, ErrInvalidFacilityData) {
		t.Fatalf("missing coordinates: err = %v, want ErrInvalidFacilityData", err)
	}

	var ife *InvalidFacilityError
	if !errors.As(err, &ife) || ife.FacilityID != "b" {
		t.Fatalf("missing coordinates: err = %#v, want InvalidFacilityError for b", err)
	}

	nan := Facility{ID: "c", Coordinates: &Coordinates{Lat: math.NaN(), Lon: 2}}
	err = nan.Validate()
	if !errors.Is(err, ErrInvalidFacilityData) {
		t.Fatalf("NaN coordinates: err = %v, want ErrInvalidFacilityData", err)
	}
	if !strings.Contains(err.Error(), "non-finite") {
		t.Fatalf("NaN coordinates: err = %q, want mention of non-finite", err)
	}
}

func TestParseCategory(t *testing.T) {
	tests := map[string]Category{
		"police":   CategoryPolice,
		" Rescue ": CategoryRescue,
		"POLICE":   CategoryPolice,
	}
	for in, want := range tests {
		got, err := ParseCategory(in)
		if err != nil {
			t.Fatalf("ParseCategory(%q): unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseCategory(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := ParseCategory("fire"); err == nil {
		t.Fatal("ParseCategory(fire): expected error")
	}
}
