package geoloc

import (
	"errors"
	"fmt"
	"os"

	"github.com/rwcarlsen/goexif/exif"
)

// ErrNoGPS marks an image whose EXIF block carries no GPS fix. Not a
// hard failure; plenty of panoramas come out of stitching tools that
// strip the GPS tags.
var ErrNoGPS = errors.New("no GPS data in EXIF")

// DMSToDecimal folds a degrees/minutes/seconds triple into decimal
// degrees, negated for southern and western hemisphere refs.
func DMSToDecimal(deg, min, sec float64, ref string) float64 {
	dec := deg + min/60.0 + sec/3600.0
	if ref == "S" || ref == "W" {
		dec = -dec
	}
	return dec
}

// ReadOrigin pulls the GPS position out of an image's EXIF block.
// A file with no parseable EXIF, or EXIF without a fix, returns an
// error satisfying errors.Is(err, ErrNoGPS).
func ReadOrigin(filename string) (Position, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return Position{}, fmt.Errorf("open+r exif '%s': %v", filename, err)
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return Position{}, fmt.Errorf("exif parsing '%s': %w", filename, ErrNoGPS)
	}

	if lat, err := readDMS(ex, exif.GPSLatitude, exif.GPSLatitudeRef); err != nil {
		return Position{}, fmt.Errorf("gps '%s': %w", filename, err)
	} else if lon, err := readDMS(ex, exif.GPSLongitude, exif.GPSLongitudeRef); err != nil {
		return Position{}, fmt.Errorf("gps '%s': %w", filename, err)
	} else {
		return Position{Latitude: lat, Longitude: lon, Altitude: readAltitude(ex)}, nil
	}
}

func readDMS(ex *exif.Exif, valField, refField exif.FieldName) (float64, error) {
	tag, err := ex.Get(valField)
	if err != nil {
		return 0, ErrNoGPS
	}
	refTag, err := ex.Get(refField)
	if err != nil {
		return 0, ErrNoGPS
	}
	ref, err := refTag.StringVal()
	if err != nil {
		return 0, fmt.Errorf("exif %s ref: %v", valField, err)
	}

	var dms [3]float64
	for i:=0; i<3; i++ {
		num, denom, err := tag.Rat2(i)
		if err != nil {
			return 0, fmt.Errorf("exif %s rational %d: %v", valField, i, err)
		} else if denom == 0 {
			return 0, fmt.Errorf("exif %s rational %d: zero denominator", valField, i)
		}
		dms[i] = float64(num) / float64(denom)
	}

	return DMSToDecimal(dms[0], dms[1], dms[2], ref), nil
}

// GPSAltitudeRef 1 means below sea level. Absent or unreadable
// altitude is simply omitted rather than failing the position read.
func readAltitude(ex *exif.Exif) *float64 {
	tag, err := ex.Get(exif.GPSAltitude)
	if err != nil {
		return nil
	}
	num, denom, err := tag.Rat2(0)
	if err != nil || denom == 0 {
		return nil
	}

	alt := float64(num) / float64(denom)
	if refTag, err := ex.Get(exif.GPSAltitudeRef); err == nil {
		if ref, err := refTag.Int(0); err == nil && ref == 1 {
			alt = -alt
		}
	}
	return &alt
}

/* Example GPS IFD from a DJI Mini 3 Pro panorama export:

GPSLatitudeRef: "N"
GPSLatitude: ["40/1","24/1","59339/1000"]
GPSLongitudeRef: "W"
GPSLongitude: ["3/1","41/1","31123/1000"]
GPSAltitudeRef: 0
GPSAltitude: "66790/100"

*/
