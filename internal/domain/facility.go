package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Category of headquarters an alert is dispatched to.
type Category string

const (
	CategoryPolice Category = "police"
	CategoryRescue Category = "rescue"
)

// Categories lists every category an alert is resolved against, in dispatch order.
var Categories = []Category{CategoryPolice, CategoryRescue}

func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryPolice:
		return CategoryPolice, nil
	case CategoryRescue:
		return CategoryRescue, nil
	}
	return "", fmt.Errorf("parse category: unknown category %q", s)
}

// Facility is a read-only headquarters record fetched from a facility store.
// A nil Coordinates means the backing document had no lat/long fields.
type Facility struct {
	ID            string
	Coordinates   *Coordinates
	Name          string
	LocationLabel string
}

var ErrInvalidFacilityData = errors.New("invalid facility data")

// InvalidFacilityError identifies a single candidate that was excluded from
// nearest-facility resolution because its coordinates were unusable.
type InvalidFacilityError struct {
	Category   Category
	FacilityID string
	Reason     string
}

func (e *InvalidFacilityError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("%s facility %q: %s", e.Category, e.FacilityID, e.Reason)
	}
	return fmt.Sprintf("facility %q: %s", e.FacilityID, e.Reason)
}

func (e *InvalidFacilityError) Unwrap() error { return ErrInvalidFacilityData }

// Validate returns an *InvalidFacilityError when the facility cannot take part
// in a distance comparison.
func (f Facility) Validate() error {
	if f.Coordinates == nil {
		return &InvalidFacilityError{FacilityID: f.ID, Reason: "missing coordinates"}
	}
	if !f.Coordinates.IsFinite() {
		return &InvalidFacilityError{
			FacilityID: f.ID,
			Reason:     fmt.Sprintf("non-finite coordinates lat=%v long=%v", f.Coordinates.Lat, f.Coordinates.Lon),
		}
	}
	return nil
}
