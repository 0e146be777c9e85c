package domain

// NearestResult identifies the closest facility of one category.
// Either every field is populated or the value is the zero value
// (the candidate set had no usable facility).
type NearestResult struct {
	FacilityID    string
	Coordinates   *Coordinates
	Name          string
	LocationLabel string
	DistanceKm    float64
}

// NearestFrom copies f into a result. f must have coordinates.
func NearestFrom(f Facility, distanceKm float64) NearestResult {
	c := *f.Coordinates
	return NearestResult{
		FacilityID:    f.ID,
		Coordinates:   &c,
		Name:          f.Name,
		LocationLabel: f.LocationLabel,
		DistanceKm:    distanceKm,
	}
}

func (r NearestResult) Found() bool { return r.Coordinates != nil }

// Dispatch pairs the nearest police and rescue headquarters for one alert.
type Dispatch struct {
	Police NearestResult
	Rescue NearestResult
}

// For returns the result for the given category.
func (d Dispatch) For(c Category) NearestResult {
	if c == CategoryRescue {
		return d.Rescue
	}
	return d.Police
}
