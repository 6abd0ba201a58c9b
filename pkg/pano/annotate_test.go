package pano

import (
	"image"
	"image/color"
	"testing"

	"github.com/overdonebirch/scripts-yolo-madrid/pkg/cubemap"
	"github.com/overdonebirch/scripts-yolo-madrid/pkg/detect"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestAnnotateFaceDrawsBoxes(t *testing.T) {
	face := solidImage(64, 64, color.RGBA{40, 40, 40, 255})
	dets := []detect.Detection{
		{BBoxIndex: 0, Box: cubemap.Box{X1: 10, Y1: 20, X2: 40, Y2: 50}, ClassID: 0, Score: 0.91},
	}

	out := NewConfig().AnnotateFace(face, dets)

	if out.Bounds() != face.Bounds() {
		t.Fatalf("bounds changed: got %v, want %v", out.Bounds(), face.Bounds())
	}

	// Class 0 strokes red; sample the middle of the left edge.
	r, g, b, _ := out.At(10, 35).RGBA()
	if r < 0xc000 || g > 0x4000 || b > 0x4000 {
		t.Errorf("left edge at (10,35): got rgb %04x/%04x/%04x, want red", r, g, b)
	}

	// The box interior is untouched.
	r, g, b, _ = out.At(25, 40).RGBA()
	if r != g || g != b || r > 0x3000 {
		t.Errorf("interior at (25,40): got rgb %04x/%04x/%04x, want gray", r, g, b)
	}

	// The label strip above the box got a black backing.
	black := 0
	for y := 10; y < 23; y++ {
		for x := 10; x < 60; x++ {
			if r, g, b, _ := out.At(x, y).RGBA(); r == 0 && g == 0 && b == 0 {
				black++
			}
		}
	}
	if black == 0 {
		t.Errorf("no black label backing found above the box")
	}
}

func TestAnnotateFaceClampsLabelAtTop(t *testing.T) {
	face := solidImage(64, 64, color.RGBA{200, 200, 200, 255})
	dets := []detect.Detection{
		{BBoxIndex: 0, Box: cubemap.Box{X1: 5, Y1: 4, X2: 30, Y2: 30}, ClassID: -1, Score: 0.5},
	}

	out := NewConfig().AnnotateFace(face, dets)

	// The label would start above the image; it pins to row zero.
	black := 0
	for y := 0; y < 13; y++ {
		for x := 5; x < 60; x++ {
			if r, g, b, _ := out.At(x, y).RGBA(); r == 0 && g == 0 && b == 0 {
				black++
			}
		}
	}
	if black == 0 {
		t.Errorf("no label backing at the top edge")
	}
}

func TestAnnotatePanorama(t *testing.T) {
	pano := solidImage(256, 128, color.RGBA{30, 30, 30, 255})
	proj, err := cubemap.NewProjector(64, 256, 128)
	if err != nil {
		t.Fatalf("NewProjector: %v", err)
	}

	dets := map[cubemap.Face][]detect.Detection{
		cubemap.Front: {{BBoxIndex: 0, Box: cubemap.Box{X1: 16, Y1: 16, X2: 48, Y2: 48}, ClassID: 1, Score: 0.5}},
		cubemap.Right: {{BBoxIndex: 0, Box: cubemap.Box{X1: 30, Y1: 30, X2: 30, Y2: 30}, ClassID: 2, Score: 0.5}},
	}

	cfg := NewConfig()
	out, err := cfg.AnnotatePanorama(pano, proj, dets)
	if err != nil {
		t.Fatalf("AnnotatePanorama: %v", err)
	}

	// Narrower than PreviewWidth, so no rescale.
	if out.Bounds().Dx() != 256 || out.Bounds().Dy() != 128 {
		t.Errorf("bounds: got %v, want 256x128", out.Bounds())
	}

	// The front box strokes green somewhere near the pano center.
	green := 0
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := out.At(x, y).RGBA()
			if g > 0xc000 && r < 0x4000 && bl < 0x4000 {
				green++
			}
		}
	}
	if green == 0 {
		t.Errorf("no green contour drawn for the front box")
	}
}

func TestAnnotatePanoramaShrinksToPreview(t *testing.T) {
	pano := solidImage(256, 128, color.RGBA{30, 30, 30, 255})
	proj, err := cubemap.NewProjector(64, 256, 128)
	if err != nil {
		t.Fatalf("NewProjector: %v", err)
	}

	cfg := NewConfig()
	cfg.PreviewWidth = 128
	out, err := cfg.AnnotatePanorama(pano, proj, nil)
	if err != nil {
		t.Fatalf("AnnotatePanorama: %v", err)
	}
	if out.Bounds().Dx() != 128 || out.Bounds().Dy() != 64 {
		t.Errorf("preview bounds: got %v, want 128x64", out.Bounds())
	}
}

func TestShrinkToPreviewPassThrough(t *testing.T) {
	cfg := NewConfig()
	cfg.PreviewWidth = 100

	img := solidImage(100, 50, color.RGBA{10, 10, 10, 255})
	if got := cfg.shrinkToPreview(img); got != image.Image(img) {
		t.Errorf("narrow image should pass through unscaled")
	}

	wide := solidImage(200, 50, color.RGBA{10, 10, 10, 255})
	got := cfg.shrinkToPreview(wide)
	if got.Bounds().Dx() != 100 || got.Bounds().Dy() != 25 {
		t.Errorf("scaled bounds: got %v, want 100x25", got.Bounds())
	}
}
