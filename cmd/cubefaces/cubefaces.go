package main

import(
	"flag"
	"image"
	"log"
	"os"
	"path/filepath"

	"github.com/overdonebirch/scripts-yolo-madrid/pkg/cubemap"
	"github.com/overdonebirch/scripts-yolo-madrid/pkg/pano"
)

var(
	fOutputDir string
	fCubeSize int
	fQuality int
	fCross bool
)

func init() {
	flag.StringVar(&fOutputDir, "o", ".", "directory to write the face images into")
	flag.IntVar(&fCubeSize, "c", 0, "cube face side in pixels (0: quarter of panorama width)")
	flag.IntVar(&fQuality, "q", 95, "JPEG quality for the faces")
	flag.BoolVar(&fCross, "cross", false, "also write the unfolded cross sheet")
	flag.Parse()
}

func main() {
	if flag.NArg() != 1 {
		log.Fatal("usage: cubefaces [flags] panorama.jpg")
	}
	filename := flag.Arg(0)

	img, err := pano.LoadImage(filename)
	if err != nil {
		log.Fatal(err)
	}

	bounds := img.Bounds()
	cubeSize := fCubeSize
	if cubeSize <= 0 { cubeSize = bounds.Dx() / 4 }

	proj, err := cubemap.NewProjector(cubeSize, bounds.Dx(), bounds.Dy())
	if err != nil {
		log.Fatal(err)
	}
	if err := os.MkdirAll(fOutputDir, 0755); err != nil {
		log.Fatal(err)
	}

	var faces [cubemap.NumFaces]*image.RGBA
	for _, r := range proj.RasterizeAll(img) {
		if r.Err != nil {
			log.Fatalf("rasterize %s: %v\n", r.Face, r.Err)
		}
		faces[r.Face] = r.Img

		out := filepath.Join(fOutputDir, r.Face.Name()+".jpg")
		if err := pano.WriteJPEG(r.Img, out, fQuality); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s (%dx%d, %dms)\n", out, cubeSize, cubeSize, r.Elapsed.Milliseconds())
	}

	if fCross {
		out := filepath.Join(fOutputDir, "cubemap_cross.jpg")
		if err := pano.WriteJPEG(cubemap.CrossLayout(faces), out, fQuality); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s\n", out)
	}
}
