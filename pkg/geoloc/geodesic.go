// Package geoloc turns camera metadata and bearings into real-world
// coordinates. It reads a GPS origin out of image EXIF, walks a
// bearing+distance out from that origin on a spherical Earth, and
// classifies the capture device from its EXIF make/model.
package geoloc

import (
	"fmt"
	"math"
)

// EarthRadiusM is the mean Earth radius of the spherical model.
const EarthRadiusM = 6371000.0

// A Position is a lat/lon pair in decimal degrees, plus altitude in
// meters when the source supplied one.
type Position struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Altitude  *float64 `json:"altitude,omitempty"`
}

func (p Position)String() string { return fmt.Sprintf("(%.6f, %.6f)", p.Latitude, p.Longitude) }

// MapsURL returns a google maps link centered on the position.
func (p Position)MapsURL() string {
	return fmt.Sprintf("https://www.google.com/maps?q=%.6f,%.6f", p.Latitude, p.Longitude)
}

// Destination walks distanceM meters from a starting position along a
// compass bearing over a sphere of radius EarthRadiusM. The result
// longitude is not wrapped; a walk across the antimeridian yields
// values outside [-180,180] and callers wanting a wrapped range must
// wrap it themselves.
func Destination(from Position, bearingDeg, distanceM float64) (Position, error) {
	for _, v := range []float64{from.Latitude, from.Longitude, bearingDeg, distanceM} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Position{}, fmt.Errorf("destination from %s bearing %v dist %vm: non-finite input", from, bearingDeg, distanceM)
		}
	}

	lat1 := from.Latitude * math.Pi / 180.0
	lon1 := from.Longitude * math.Pi / 180.0
	theta := bearingDeg * math.Pi / 180.0
	delta := distanceM / EarthRadiusM

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(delta) + math.Cos(lat1)*math.Sin(delta)*math.Cos(theta))
	lon2 := lon1 + math.Atan2(math.Sin(theta)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2))

	return Position{Latitude: lat2 * 180.0 / math.Pi, Longitude: lon2 * 180.0 / math.Pi}, nil
}
