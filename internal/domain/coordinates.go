package domain

import (
	"errors"
	"math"
	"strconv"
)

var ErrInvalidCoordinates = errors.New("coordinates must be finite numbers")

// Geographic coordinates in degrees (WGS84 assumed).
// Ranges are not validated: out-of-range values are accepted as-is.
type Coordinates struct {
	Lat float64
	Lon float64
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (c Coordinates) IsFinite() bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) &&
		!math.IsNaN(c.Lon) && !math.IsInf(c.Lon, 0)
}

// GridCell rounds c to four decimals (about 11 m) and returns a stable key.
// Nearby alerts share a cell and therefore a cached area label.
func GridCell(c Coordinates) string {
	return strconv.FormatFloat(math.Round(c.Lat*1e4)/1e4, 'f', 4, 64) + "," +
		strconv.FormatFloat(math.Round(c.Lon*1e4)/1e4, 'f', 4, 64)
}
