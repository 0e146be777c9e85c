package domain

import "math"

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between a and b in kilometers
// on a sphere of radius 6371 km. Inputs are not validated.
func HaversineKm(a, b Coordinates) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	// Rounding can push h outside [0, 1]: past 1 near antipodes, below 0 when
	// out-of-range latitudes make the cosine product negative.
	h = math.Max(0, math.Min(h, 1))

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
