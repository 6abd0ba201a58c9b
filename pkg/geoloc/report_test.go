package geoloc

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestPng(t *testing.T, w, h int) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "pano.png")
	f, err := os.Create(filename)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()
	return filename
}

func TestReadReportEquirectangular(t *testing.T) {
	r, err := ReadReport(writeTestPng(t, 64, 32))
	if err != nil {
		t.Fatalf("ReadReport: %v", err)
	}

	if r.Format != "png" || r.Width != 64 || r.Height != 32 {
		t.Errorf("got %s %dx%d, want png 64x32", r.Format, r.Width, r.Height)
	}
	if !r.PossibleEquirectangular || r.AspectRatio != 2.0 {
		t.Errorf("aspect %f equirect %v, want 2.0 true", r.AspectRatio, r.PossibleEquirectangular)
	}
	if r.Origin != nil || r.MapsURL != "" {
		t.Errorf("EXIF-less image reported an origin: %+v", r.Origin)
	}
	if r.DeviceClass != "" {
		t.Errorf("EXIF-less image classified as %q", r.DeviceClass)
	}
	if r.SizeBytes <= 0 {
		t.Errorf("size %d, want positive", r.SizeBytes)
	}

	out := r.String()
	for _, want := range []string{"64x32", "no GPS fix", "no camera EXIF"} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q:\n%s", want, out)
		}
	}
}

func TestReadReportNotEquirectangular(t *testing.T) {
	r, err := ReadReport(writeTestPng(t, 64, 48))
	if err != nil {
		t.Fatalf("ReadReport: %v", err)
	}
	if r.PossibleEquirectangular {
		t.Errorf("4:3 image flagged as equirectangular")
	}
}

func TestReadReportMissingFile(t *testing.T) {
	if _, err := ReadReport(filepath.Join(t.TempDir(), "nope.jpg")); err == nil {
		t.Errorf("ReadReport on missing file got no error")
	}
}

func TestClassifyDevice(t *testing.T) {
	tests := []struct {
		make, model string
		wantClass   string
		wantMin     float64
		wantOK      bool
	}{
		{"DJI", "FC3582", "drone", 20, true},
		{"Parrot SA", "ANAFI", "drone", 20, true},
		{"GoPro", "MAX 360", "action_camera", 1.5, true},
		{"RICOH IMAGING COMPANY, LTD.", "RICOH THETA Z1", "action_camera", 1.5, true},
		{"Apple", "iPhone 14 Pro", "smartphone", 1.2, true},
		{"samsung", "SM-G998B", "smartphone", 1.2, true},
		{"NIKON CORPORATION", "NIKON Df", "", 0, false},
		{"", "RICOH THETA Z1", "", 0, false},
		{"DJI", "", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.make+"/"+tt.model, func(t *testing.T) {
			class, minM, _, ok := ClassifyDevice(tt.make, tt.model)
			if class != tt.wantClass || ok != tt.wantOK {
				t.Errorf("ClassifyDevice(%q, %q) = %q,%v, want %q,%v", tt.make, tt.model, class, ok, tt.wantClass, tt.wantOK)
			}
			if ok && minM != tt.wantMin {
				t.Errorf("ClassifyDevice(%q, %q) min %v, want %v", tt.make, tt.model, minM, tt.wantMin)
			}
		})
	}
}
