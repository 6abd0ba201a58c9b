package cubemap

import(
	"fmt"
	"image"
	"strconv"
	"sync"
	"time"
)

// A pixLookup maps each pixel of one face to the panorama pixel it
// samples, stored flat in row-major order. Offsets are y*srcW + x,
// which fits int32 for any panorama under 2 gigapixels.
type pixLookup struct {
	stride  int
	offsets []int32
}

func newPixLookup(w, h int) pixLookup {
	return pixLookup{stride: w, offsets: make([]int32, w*h)}
}

func (pl *pixLookup)Set(x, y int, off int32) { pl.offsets[pl.stride*y+x] = off }
func (pl *pixLookup)Get(x, y int) int32      { return pl.offsets[pl.stride*y+x] }

// A Projector rasterizes cube faces out of equirectangular panoramas
// of one fixed size. The pixel mapping depends only on the
// dimensions, never on pixel content, so it is computed once up
// front and shared by every face and every later panorama of the
// same size.
type Projector struct {
	CubeSize   int
	SrcW, SrcH int

	lut [NumFaces]pixLookup
}

func NewProjector(cubeSize, srcW, srcH int) (*Projector, error) {
	if cubeSize <= 0 || srcW <= 0 || srcH <= 0 {
		return nil, fmt.Errorf("projector %dx%d, cube %d: dimensions must be positive", srcW, srcH, cubeSize)
	}

	p := Projector{CubeSize: cubeSize, SrcW: srcW, SrcH: srcH}

	for _, f := range AllFaces() {
		p.lut[f] = newPixLookup(cubeSize, cubeSize)
		for j:=0; j<cubeSize; j++ {
			for i:=0; i<cubeSize; i++ {
				sx, sy := p.MapPixel(f, float64(i), float64(j))
				p.lut[f].Set(i, j, int32(sy*srcW+sx))
			}
		}
	}

	return &p, nil
}

// MapPixel maps face pixel (i,j) to the panorama pixel behind it.
// This is the direct computation; Rasterize goes through the
// precomputed table instead.
func (p *Projector)MapPixel(f Face, i, j float64) (x, y int) {
	a, b := Normalize(i, j, p.CubeSize)
	dir, _ := Direction(f, a, b)
	theta, phi := ToSpherical(dir)
	return EquirectPixel(theta, phi, p.SrcW, p.SrcH)
}

// Rasterize extracts one cube face from the panorama, one source
// pixel per face pixel. The panorama must have the dimensions the
// Projector was built for.
func (p *Projector)Rasterize(src image.Image, f Face) (*image.RGBA, error) {
	if f < Front || f >= NumFaces {
		return nil, NewFaceError(strconv.Itoa(int(f)))
	}
	b := src.Bounds()
	if b.Dx() != p.SrcW || b.Dy() != p.SrcH {
		return nil, fmt.Errorf("rasterize %s: panorama is %dx%d, projector built for %dx%d",
			f, b.Dx(), b.Dy(), p.SrcW, p.SrcH)
	}

	face := image.NewRGBA(image.Rect(0, 0, p.CubeSize, p.CubeSize))
	for j:=0; j<p.CubeSize; j++ {
		for i:=0; i<p.CubeSize; i++ {
			off := int(p.lut[f].Get(i, j))
			face.Set(i, j, src.At(b.Min.X+off%p.SrcW, b.Min.Y+off/p.SrcW))
		}
	}
	return face, nil
}

// A RasterResult is one face out of the worker pool, with how long
// its extraction took.
type RasterResult struct {
	Face    Face
	Img     *image.RGBA
	Elapsed time.Duration
	Err     error
}

// RasterizeAll extracts all six faces concurrently and returns the
// results indexed by face number.
func (p *Projector)RasterizeAll(src image.Image) [NumFaces]RasterResult {
	var wg sync.WaitGroup
	jobsChan    := make(chan Face, NumFaces)
	resultsChan := make(chan RasterResult, NumFaces)

	nWorkers := NumFaces
	for i:=0; i<nWorkers; i++ {
		wg.Add(1)

		go func() {
			for f := range jobsChan {
				start := time.Now()
				img, err := p.Rasterize(src, f)
				resultsChan<- RasterResult{Face: f, Img: img, Elapsed: time.Since(start), Err: err}
			}
			defer wg.Done()
		}()
	}

	for _, f := range AllFaces() {
		jobsChan<- f
	}
	close(jobsChan)
	wg.Wait()
	close(resultsChan)

	var results [NumFaces]RasterResult
	for result := range resultsChan {
		results[result.Face] = result
	}
	return results
}
