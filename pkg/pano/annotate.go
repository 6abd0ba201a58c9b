package pano

import(
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/overdonebirch/scripts-yolo-madrid/pkg/cubemap"
	"github.com/overdonebirch/scripts-yolo-madrid/pkg/detect"
)

// AnnotateFace draws detection boxes onto a copy of a face image,
// each with a "class: score" label on a black backing strip.
func (c Config)AnnotateFace(face image.Image, dets []detect.Detection) image.Image {
	dc := gg.NewContextForImage(face)
	dc.SetLineWidth(3)

	for _, d := range dets {
		col := c.ClassColor(d.ClassID)
		dc.SetColor(col)
		dc.DrawRectangle(d.Box.X1, d.Box.Y1, d.Box.Width(), d.Box.Height())
		dc.Stroke()

		label := fmt.Sprintf("%s: %.2f", c.ClassName(d.ClassID), d.Score)
		w, h := dc.MeasureString(label)

		lx, ly := d.Box.X1, d.Box.Y1-10
		if ly < 0 { ly = 0 }
		dc.SetRGB(0, 0, 0)
		dc.DrawRectangle(lx, ly, w+4, h)
		dc.Fill()
		dc.SetColor(col)
		dc.DrawString(label, lx+2, ly+h-2)
	}

	return dc.Image()
}

// AnnotatePanorama draws every detection's projected outline onto the
// full panorama, then scales the result down to PreviewWidth.
// Polylines of two points or fewer are not worth drawing; that is
// what a pole-crossing or degenerate box produces.
func (c Config)AnnotatePanorama(pano image.Image, proj *cubemap.Projector, dets map[cubemap.Face][]detect.Detection) (image.Image, error) {
	dc := gg.NewContextForImage(pano)
	dc.SetLineWidth(3)

	for _, f := range cubemap.AllFaces() {
		for _, d := range dets[f] {
			pts, err := proj.BoxContour(f, d.Box, c.EdgeSamples)
			if err != nil {
				return nil, err
			}
			if len(pts) <= 2 {
				continue
			}

			dc.SetColor(c.ClassColor(d.ClassID))
			dc.NewSubPath()
			dc.MoveTo(float64(pts[0].X), float64(pts[0].Y))
			for _, p := range pts[1:] {
				dc.LineTo(float64(p.X), float64(p.Y))
			}
			dc.ClosePath()
			dc.Stroke()
		}
	}

	if c.Verbosity > 1 {
		WritePNG(dc.Image(), "200-contours-fullres.png")
	}

	return c.shrinkToPreview(dc.Image()), nil
}

// shrinkToPreview scales wide images down to PreviewWidth, keeping
// aspect. Anything already narrow enough passes through untouched.
func (c Config)shrinkToPreview(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= c.PreviewWidth {
		return img
	}

	h := b.Dy() * c.PreviewWidth / b.Dx()
	out := image.NewRGBA(image.Rect(0, 0, c.PreviewWidth, h))
	draw.CatmullRom.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	return out
}
