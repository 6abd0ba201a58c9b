package geoloc

import (
	"fmt"
	"image"
	"math"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
)

// Aspect ratio window within which a panorama is taken to be a full
// 360x180 equirectangular sphere.
const equirectAspectTolerance = 0.1

// A Report collects everything worth knowing about a panorama file
// before pushing it through the pipeline: dimensions, whether it
// looks equirectangular, the camera that shot it, and its GPS fix.
type Report struct {
	Path        string  `json:"path"`
	SizeBytes   int64   `json:"size_bytes"`
	Format      string  `json:"format"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`

	PossibleEquirectangular bool `json:"possible_equirectangular"`

	Make     string `json:"make,omitempty"`
	Model    string `json:"model,omitempty"`
	DateTime string `json:"datetime,omitempty"`
	Software string `json:"software,omitempty"`

	DeviceClass string  `json:"device_class,omitempty"`
	MountMinM   float64 `json:"mount_min_m,omitempty"`
	MountMaxM   float64 `json:"mount_max_m,omitempty"`

	Origin  *Position `json:"origin,omitempty"`
	MapsURL string    `json:"maps_url,omitempty"`
}

// ReadReport inspects a panorama file without fully decoding it.
// EXIF and GPS are best-effort; only an unreadable or undecodable
// image is an error.
func ReadReport(filename string) (Report, error) {
	r := Report{Path: filename}

	if fi, err := os.Stat(filename); err != nil {
		return r, fmt.Errorf("stat '%s': %v", filename, err)
	} else {
		r.SizeBytes = fi.Size()
	}

	if reader, err := os.Open(filename); err != nil {
		return r, fmt.Errorf("open+r '%s': %v", filename, err)
	} else if cfg, format, err := image.DecodeConfig(reader); err != nil {
		reader.Close()
		return r, fmt.Errorf("decode config '%s': %v", filename, err)
	} else {
		reader.Close()
		r.Format = format
		r.Width, r.Height = cfg.Width, cfg.Height
		if cfg.Height > 0 {
			r.AspectRatio = float64(cfg.Width) / float64(cfg.Height)
			r.PossibleEquirectangular = math.Abs(r.AspectRatio-2.0) < equirectAspectTolerance
		}
	}

	readCameraTags(&r)

	if pos, err := ReadOrigin(filename); err == nil {
		r.Origin = &pos
		r.MapsURL = pos.MapsURL()
	}

	r.DeviceClass, r.MountMinM, r.MountMaxM, _ = ClassifyDevice(r.Make, r.Model)
	return r, nil
}

func readCameraTags(r *Report) {
	reader, err := os.Open(r.Path)
	if err != nil {
		return
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return
	}

	r.Make = stringTag(ex, exif.Make)
	r.Model = stringTag(ex, exif.Model)
	r.DateTime = stringTag(ex, exif.DateTime)
	r.Software = stringTag(ex, exif.Software)
}

func stringTag(ex *exif.Exif, field exif.FieldName) string {
	tag, err := ex.Get(field)
	if err != nil {
		return ""
	}
	val, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.Trim(val, " \x00")
}

// ClassifyDevice guesses the capture platform from EXIF make/model
// and reports the typical height range the camera is mounted at, in
// meters. Both make and model must be present to attempt a guess.
func ClassifyDevice(make, model string) (class string, minM, maxM float64, ok bool) {
	if make == "" || model == "" {
		return "", 0, 0, false
	}
	make, model = strings.ToUpper(make), strings.ToUpper(model)

	for _, brand := range []string{"DJI", "PARROT", "AUTEL", "SKYDIO", "YUNEEC"} {
		if strings.Contains(make, brand) {
			return "drone", 20, 120, true
		}
	}

	if strings.Contains(make, "GOPRO") || strings.Contains(make, "INSTA360") || strings.Contains(model, "RICOH THETA") {
		return "action_camera", 1.5, 4, true
	}

	for _, brand := range []string{"APPLE", "SAMSUNG", "GOOGLE", "HUAWEI"} {
		if strings.Contains(make, brand) {
			return "smartphone", 1.2, 2, true
		}
	}

	return "", 0, 0, false
}

func (r Report)String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "--- file ---\n")
	fmt.Fprintf(&b, "path:         %s\n", r.Path)
	fmt.Fprintf(&b, "size:         %d bytes\n", r.SizeBytes)
	fmt.Fprintf(&b, "format:       %s, %dx%d\n", r.Format, r.Width, r.Height)
	fmt.Fprintf(&b, "aspect:       %.3f (equirectangular: %v)\n", r.AspectRatio, r.PossibleEquirectangular)

	fmt.Fprintf(&b, "--- camera ---\n")
	if r.Make == "" && r.Model == "" {
		fmt.Fprintf(&b, "no camera EXIF\n")
	} else {
		fmt.Fprintf(&b, "make/model:   %s / %s\n", r.Make, r.Model)
		if r.DateTime != "" { fmt.Fprintf(&b, "taken:        %s\n", r.DateTime) }
		if r.Software != "" { fmt.Fprintf(&b, "software:     %s\n", r.Software) }
	}
	if r.DeviceClass != "" {
		fmt.Fprintf(&b, "device:       %s, typically mounted %.1f-%.1fm up\n", r.DeviceClass, r.MountMinM, r.MountMaxM)
	}

	fmt.Fprintf(&b, "--- gps ---\n")
	if r.Origin == nil {
		fmt.Fprintf(&b, "no GPS fix\n")
	} else {
		fmt.Fprintf(&b, "origin:       %s\n", r.Origin)
		if r.Origin.Altitude != nil {
			fmt.Fprintf(&b, "altitude:     %.2fm\n", *r.Origin.Altitude)
		}
		fmt.Fprintf(&b, "maps:         %s\n", r.MapsURL)
	}

	return b.String()
}
