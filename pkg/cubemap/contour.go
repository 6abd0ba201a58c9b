package cubemap

import(
	"image"
	"strconv"
)

// A Box is an axis-aligned box in face pixel coords, corner (X1,Y1)
// top-left, (X2,Y2) bottom-right.
type Box struct {
	X1, Y1, X2, Y2 float64
}

func (b Box)Centroid() (x, y float64) { return (b.X1 + b.X2) / 2.0, (b.Y1 + b.Y2) / 2.0 }
func (b Box)Width() float64           { return b.X2 - b.X1 }
func (b Box)Height() float64          { return b.Y2 - b.Y1 }

// BoxContour maps the perimeter of a face box onto the panorama,
// walking the four edges clockwise from the top-left corner and
// sampling roughly samplesPerEdge points along each. A zero-length
// edge contributes no points. Boxes near a face edge can map across
// the +/-180 seam or over a pole, which leaves the polyline
// discontinuous; callers treat anything of two points or fewer as
// not worth drawing.
func (p *Projector)BoxContour(f Face, box Box, samplesPerEdge int) ([]image.Point, error) {
	if f < Front || f >= NumFaces {
		return nil, NewFaceError(strconv.Itoa(int(f)))
	}
	if samplesPerEdge < 1 {
		samplesPerEdge = 1
	}

	x1, y1 := int(box.X1), int(box.Y1)
	x2, y2 := int(box.X2), int(box.Y2)

	pts := []image.Point{}
	add := func(i, j int) {
		px, py := p.MapPixel(f, float64(i), float64(j))
		pts = append(pts, image.Point{px, py})
	}

	xStep := contourStep(x2-x1, samplesPerEdge)
	yStep := contourStep(y2-y1, samplesPerEdge)

	// Each edge walks corner to corner inclusive, so a box that walks
	// cleanly comes back around to its starting point. A zero-length
	// edge contributes nothing rather than a stray single point.
	if x2 > x1 {
		for x:=x1; x<=x2; x += xStep { add(x, y1) } // top, left to right
	}
	if y2 > y1 {
		for y:=y1; y<=y2; y += yStep { add(x2, y) } // right, top to bottom
	}
	if x2 > x1 {
		for x:=x2; x>=x1; x -= xStep { add(x, y2) } // bottom, right to left
	}
	if y2 > y1 {
		for y:=y2; y>=y1; y -= yStep { add(x1, y) } // left, bottom to top
	}

	return pts, nil
}

func contourStep(edgeLen, samples int) int {
	step := edgeLen / samples
	if step < 1 {
		step = 1
	}
	return step
}

// Azimuth returns the compass bearing of the center of a face box,
// in degrees [0,360). The centroid stays in float coords; there is
// no snapping to the pixel grid on the way through.
func Azimuth(f Face, box Box, cubeSize int) (float64, error) {
	cx, cy := box.Centroid()
	a, b := Normalize(cx, cy, cubeSize)
	dir, err := Direction(f, a, b)
	if err != nil {
		return 0, err
	}
	_, phi := ToSpherical(dir)
	return AzimuthDegrees(phi), nil
}
