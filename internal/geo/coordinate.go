// internal/geo/coordinate.go
//
// Coordinate is the immutable lat/lng pair shared by the sampler, the
// encyclopedia client, and the game rounds.

package geo

import (
	"fmt"
	"strconv"
)

// Coordinate is a WGS 84 point. Lat is in [-90,90], Lng in [-180,180].
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Fallback is returned by samplers that have no land data to draw from.
var Fallback = Coordinate{Lat: 34.0522, Lng: -118.2437}

// Valid reports whether c lies within the latitude/longitude ranges.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Pipe formats c as "lat|lng", the form geosearch expects for gscoord.
func (c Coordinate) Pipe() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "|" + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", c.Lat, c.Lng)
}
