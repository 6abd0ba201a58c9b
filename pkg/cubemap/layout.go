package cubemap

import(
	"image"

	"golang.org/x/image/draw"
)

// crossCells places each face in the classic 4x3 unfolded-cube
// sheet: up above front, down below front, the side faces in a strip
// with back on the far right.
//
//       [up]
//   [left][front][right][back]
//       [down]
var crossCells = [NumFaces]image.Point{
	Front: {1, 1},
	Right: {2, 1},
	Back:  {3, 1},
	Left:  {0, 1},
	Up:    {1, 0},
	Down:  {1, 2},
}

// CrossLayout pastes six equal-sized faces into one 4x3 contact
// sheet. Cells no face covers stay black.
func CrossLayout(faces [NumFaces]*image.RGBA) *image.RGBA {
	n := faces[Front].Bounds().Dx()
	out := image.NewRGBA(image.Rect(0, 0, 4*n, 3*n))

	for _, f := range AllFaces() {
		cell := crossCells[f]
		r := image.Rect(cell.X*n, cell.Y*n, (cell.X+1)*n, (cell.Y+1)*n)
		draw.Draw(out, r, faces[f], faces[f].Bounds().Min, draw.Src)
	}
	return out
}
