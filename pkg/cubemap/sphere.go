package cubemap

import(
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ToSpherical converts a view direction to spherical angles. theta
// is elevation from the horizontal plane, +pi/2 straight up; phi is
// the horizontal angle from +Z towards +X, in (-pi, pi].
func ToSpherical(v r3.Vec) (theta, phi float64) {
	theta = math.Atan2(v.Y, math.Sqrt(v.X*v.X+v.Z*v.Z))
	phi = math.Atan2(v.X, v.Z)
	return
}

// EquirectPixel maps spherical angles to a pixel in a w x h
// equirectangular image. Values are clamped to the image, so the
// poles and the +/-180 seam can never index out of bounds.
func EquirectPixel(theta, phi float64, w, h int) (x, y int) {
	xf := (phi/math.Pi + 1.0) * 0.5 * float64(w)
	yf := (0.5 - theta/math.Pi) * float64(h)
	return clampPixel(xf, w), clampPixel(yf, h)
}

func clampPixel(v float64, dim int) int {
	if v < 0 {
		return 0
	}
	if v > float64(dim-1) {
		return dim - 1
	}
	return int(v)
}

// AzimuthDegrees maps phi to a compass-style bearing in [0,360):
// 0 straight ahead of the camera (+Z), 90 to its right (+X).
func AzimuthDegrees(phi float64) float64 {
	deg := phi * 180.0 / math.Pi
	if deg < 0 {
		deg += 360.0
	}
	return deg
}
