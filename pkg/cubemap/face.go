// Package cubemap maps between equirectangular panoramas and the six
// faces of a cubemap, and resolves face pixels back to compass
// azimuths.
package cubemap

import(
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// A Face is one side of the cubemap. The numbering is fixed; it is
// the order faces appear in output files, and the order the detector
// writes its per-face results.
type Face int

const (
	Front Face = iota // +Z
	Right             // +X
	Back              // -Z
	Left              // -X
	Up                // +Y
	Down              // -Y

	NumFaces = 6
)

var faceNames = []string{"front", "right", "back", "left", "up", "down"}

func (f Face)Name() string {
	if f < Front || f >= NumFaces {
		return fmt.Sprintf("face%d", int(f))
	}
	return faceNames[f]
}

func (f Face)String() string { return f.Name() }

// AllFaces returns the six faces in numbering order.
func AllFaces() []Face { return []Face{Front, Right, Back, Left, Up, Down} }

// ParseFace accepts a face name ("front") or a face number ("3");
// detector output has used both styles over time.
func ParseFace(s string) (Face, error) {
	for i, name := range faceNames {
		if strings.EqualFold(s, name) {
			return Face(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < NumFaces {
		return Face(n), nil
	}
	return Front, NewFaceError(s)
}

// MarshalText writes the face name, so face-keyed maps serialize
// with "front".."down" keys.
func (f Face)MarshalText() ([]byte, error) {
	if f < Front || f >= NumFaces {
		return nil, NewFaceError(strconv.Itoa(int(f)))
	}
	return []byte(f.Name()), nil
}

func (f *Face)UnmarshalText(text []byte) error {
	parsed, err := ParseFace(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// A FaceError means a face index or name outside the six cube faces.
// It is always a caller bug, so it is never silently corrected.
type FaceError struct {
	Face string
}

func NewFaceError(face string) FaceError {
	return FaceError{Face: face}
}

func (e FaceError)Error() string {
	return fmt.Sprintf("no cubemap face '%s'", e.Face)
}

type faceBasis struct {
	normal, aAxis, bAxis r3.Vec
}

// faceBases gives each face's orientation: the outward normal at the
// face center, and the world directions its a and b axes run along.
// The direction through (a,b) is normal + a*aAxis + b*bAxis.
var faceBases = [NumFaces]faceBasis{
	Front: {normal: r3.Vec{Z: 1}, aAxis: r3.Vec{X: 1}, bAxis: r3.Vec{Y: 1}},
	Right: {normal: r3.Vec{X: 1}, aAxis: r3.Vec{Z: -1}, bAxis: r3.Vec{Y: 1}},
	Back:  {normal: r3.Vec{Z: -1}, aAxis: r3.Vec{X: -1}, bAxis: r3.Vec{Y: 1}},
	Left:  {normal: r3.Vec{X: -1}, aAxis: r3.Vec{Z: 1}, bAxis: r3.Vec{Y: 1}},
	Up:    {normal: r3.Vec{Y: 1}, aAxis: r3.Vec{X: 1}, bAxis: r3.Vec{Z: -1}},
	Down:  {normal: r3.Vec{Y: -1}, aAxis: r3.Vec{X: 1}, bAxis: r3.Vec{Z: 1}},
}

// Normalize maps pixel coords (i,j) on a cubeSize x cubeSize face to
// normalized face coords: a runs left to right over [-1,1), b runs
// bottom to top. The vertical flip is because image rows grow
// downward.
func Normalize(i, j float64, cubeSize int) (a, b float64) {
	n := float64(cubeSize)
	return 2.0*i/n - 1.0, 1.0 - 2.0*j/n
}

// Direction returns the world-space view direction through the point
// (a,b) on face f. At (0,0) this is the face's outward normal. The
// result is not unit length; the spherical conversion only takes
// ratios, so it never needs to be.
func Direction(f Face, a, b float64) (r3.Vec, error) {
	if f < Front || f >= NumFaces {
		return r3.Vec{}, NewFaceError(strconv.Itoa(int(f)))
	}
	fb := faceBases[f]
	return r3.Add(fb.normal, r3.Add(r3.Scale(a, fb.aAxis), r3.Scale(b, fb.bAxis))), nil
}
