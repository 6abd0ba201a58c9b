package geoloc

import (
	"math"
	"testing"
)

// 111195m is one degree of arc at the Earth radius used here.
const oneDegreeM = 111195.0

func TestDestinationZeroDistance(t *testing.T) {
	from := Position{Latitude: 40.4168, Longitude: -3.7038}
	got, err := Destination(from, 123.4, 0)
	if err != nil {
		t.Fatalf("Destination: %v", err)
	}
	if math.Abs(got.Latitude-from.Latitude) > 1e-9 || math.Abs(got.Longitude-from.Longitude) > 1e-9 {
		t.Errorf("zero-distance walk moved %s to %s", from, got)
	}
}

func TestDestinationDueNorth(t *testing.T) {
	got, err := Destination(Position{}, 0, oneDegreeM)
	if err != nil {
		t.Fatalf("Destination: %v", err)
	}
	if got.Latitude <= 0 || math.Abs(got.Latitude-1.0) > 0.01 {
		t.Errorf("latitude %f, want about 1.0", got.Latitude)
	}
	if math.Abs(got.Longitude) > 1e-6 {
		t.Errorf("longitude %f, want about 0", got.Longitude)
	}
}

func TestDestinationDueEast(t *testing.T) {
	got, err := Destination(Position{}, 90, oneDegreeM)
	if err != nil {
		t.Fatalf("Destination: %v", err)
	}
	if math.Abs(got.Longitude-1.0) > 0.01 {
		t.Errorf("longitude %f, want about 1.0", got.Longitude)
	}
	if math.Abs(got.Latitude) > 1e-6 {
		t.Errorf("latitude %f, want about 0", got.Latitude)
	}
}

func TestDestinationFromMidLatitude(t *testing.T) {
	got, err := Destination(Position{Latitude: 40}, 0, oneDegreeM)
	if err != nil {
		t.Fatalf("Destination: %v", err)
	}
	if math.Abs(got.Latitude-41.0) > 0.01 {
		t.Errorf("latitude %f, want about 41.0", got.Latitude)
	}
	if got.Longitude != 0 {
		t.Errorf("longitude %f, want exactly 0 on a due-north walk", got.Longitude)
	}
}

// A walk across the antimeridian comes back unwrapped.
func TestDestinationLongitudeNotWrapped(t *testing.T) {
	got, err := Destination(Position{Latitude: 0, Longitude: 179.5}, 90, oneDegreeM)
	if err != nil {
		t.Fatalf("Destination: %v", err)
	}
	if got.Longitude <= 180 {
		t.Errorf("longitude %f, want an unwrapped value beyond 180", got.Longitude)
	}
}

func TestDestinationRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name     string
		from     Position
		bearing  float64
		distance float64
	}{
		{"nan latitude", Position{Latitude: math.NaN()}, 0, 100},
		{"inf longitude", Position{Longitude: math.Inf(1)}, 0, 100},
		{"nan bearing", Position{}, math.NaN(), 100},
		{"inf distance", Position{}, 0, math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Destination(tt.from, tt.bearing, tt.distance); err == nil {
				t.Errorf("Destination accepted a non-finite input")
			}
		})
	}
}

func TestPositionStrings(t *testing.T) {
	p := Position{Latitude: 40.416775, Longitude: -3.70379}
	if got, want := p.String(), "(40.416775, -3.703790)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := p.MapsURL(), "https://www.google.com/maps?q=40.416775,-3.703790"; got != want {
		t.Errorf("MapsURL() = %q, want %q", got, want)
	}
}
