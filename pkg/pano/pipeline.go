package pano

import(
	"errors"
	"fmt"
	"image"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/codahale/hdrhistogram"
	"github.com/skypies/util/histogram"

	"github.com/overdonebirch/scripts-yolo-madrid/pkg/cubemap"
	"github.com/overdonebirch/scripts-yolo-madrid/pkg/detect"
	"github.com/overdonebirch/scripts-yolo-madrid/pkg/geoloc"
)

// A Publisher receives every geocoded detection the pipeline emits.
// Satisfied by publish.Publisher.
type Publisher interface {
	Publish(imageName string, f cubemap.Face, d detect.GeocodedDetection) error
}

// Pipeline walks a batch of panoramas through the whole chain: cube
// faces, azimuths, geocoding, annotated previews. Each stage only
// runs if its input file is there, so a batch can be re-run as the
// detector and depth models drop their results into the output dirs.
type Pipeline struct {
	Config

	Images   []string
	Pub      Publisher

	Statuses []string
	AzHist   histogram.Histogram
	RasterMS *hdrhistogram.Histogram

	nOK, nPartial, nNoGPS, nFailed, nAz int
}

func NewPipeline(cfg Config) *Pipeline {
	return &Pipeline{
		Config:   cfg,
		AzHist:   histogram.Histogram{NumBuckets: 36, ValMin: 0, ValMax: 360},
		RasterMS: hdrhistogram.New(1, 60000, 3),
	}
}

func (p *Pipeline)AddFilesAndDirs(args ...string) error {
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return fmt.Errorf("load %s: %v", arg, err)

		case item.IsDir():
			// A previous run's output dirs are full of face jpgs;
			// don't re-ingest those as panoramas.
			if strings.HasPrefix(item.Name(), "output_") {
				continue
			}
			contents, err := ioutil.ReadDir(arg)
			if err != nil {
				return fmt.Errorf("readdir %s: %v", arg, err)
			}
			for _, content := range contents {
				if err := p.AddFilesAndDirs(filepath.Join(arg, content.Name())); err != nil {
					return fmt.Errorf("load %s: %v", arg, err)
				}
			}

		default: // is a file, load it
			if err := p.addFile(arg); err != nil {
				return fmt.Errorf("addfile %s: %v", arg, err)
			}
		}
	}

	return nil
}

func (p *Pipeline)addFile(filename string) error {
	ext := filepath.Ext(filename)

	switch strings.ToLower(ext) {

	case ".jpg", ".jpeg", ".png", ".tif", ".tiff":
		p.Images = append(p.Images, filename)

	case ".yaml":
		cfg, err := loadConfig(filename)
		if err != nil {
			return fmt.Errorf("Loading %s as config YAML failed: %v", filename, err)
		}
		p.Config = cfg
		log.Printf("Loaded base configuration from %s\n", filename)
	}

	return nil
}

func loadConfig(filename string) (Config, error) {
	contents, err := ioutil.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %v", filename, err)
	}

	return newConfigFromYaml(contents)
}

// Run processes every queued image. A bad image is logged and
// skipped; the rest of the batch still runs.
func (p *Pipeline)Run() {
	for _, filename := range p.Images {
		if p.Verbosity > 0 {
			log.Printf("processing %s\n", filename)
		}
		if err := p.ProcessImage(filename); err != nil {
			log.Printf("%s failed: %v\n", filename, err)
			p.note("failed", filename)
		}
	}
}

// ProcessImage runs one panorama as far as its side files allow:
// always the six faces and the cross sheet; azimuths and overlays
// once detections.json shows up; coords once a distances file and an
// EXIF GPS fix are both on hand.
func (p *Pipeline)ProcessImage(filename string) error {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	outDir := filepath.Join(p.OutputRoot, "output_"+stem)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("mkdir %s: %v", outDir, err)
	}

	img, err := LoadImage(filename)
	if err != nil {
		return err
	}

	bounds := img.Bounds()
	cubeSize := p.CubeSize
	if cubeSize <= 0 {
		cubeSize = bounds.Dx() / 4
	}
	if p.Verbosity > 0 {
		log.Printf("%s: %dx%d panorama, %dx%d faces\n", filename, bounds.Dx(), bounds.Dy(), cubeSize, cubeSize)
	}

	proj, err := cubemap.NewProjector(cubeSize, bounds.Dx(), bounds.Dy())
	if err != nil {
		return err
	}

	var faces [cubemap.NumFaces]*image.RGBA
	for _, r := range proj.RasterizeAll(img) {
		if r.Err != nil {
			return fmt.Errorf("rasterize %s %s: %v", filename, r.Face, r.Err)
		}
		faces[r.Face] = r.Img

		ms := r.Elapsed.Milliseconds()
		if ms < 1 { ms = 1 }
		p.RasterMS.RecordValue(ms)
	}

	for _, f := range cubemap.AllFaces() {
		if err := WriteJPEG(faces[f], filepath.Join(outDir, f.Name()+".jpg"), p.FaceQuality); err != nil {
			return err
		}
	}
	if err := WriteJPEG(cubemap.CrossLayout(faces), filepath.Join(outDir, "cubemap_cross.jpg"), p.FaceQuality); err != nil {
		return err
	}

	detFile := filepath.Join(outDir, "detections.json")
	if _, err := os.Stat(detFile); err != nil {
		log.Printf("%s: no detections.json yet, stopping after faces\n", filename)
		p.note("faces-only", filename)
		return nil
	}

	dets, err := detect.ReadDetections(detFile)
	if err != nil {
		return err
	}

	az, err := detect.ComputeAzimuths(dets, cubeSize)
	if err != nil {
		return err
	}
	if err := detect.WriteAzimuths(filepath.Join(outDir, "azimuths.json"), az); err != nil {
		return err
	}
	for _, recs := range az {
		for _, rec := range recs {
			p.AzHist.Add(histogram.ScalarVal(int(rec.AzimuthDeg)))
			p.nAz++
		}
	}

	for _, f := range cubemap.AllFaces() {
		if len(dets[f]) == 0 {
			continue
		}
		overlay := p.Config.AnnotateFace(faces[f], dets[f])
		if err := WriteJPEG(overlay, filepath.Join(outDir, f.Name()+"_with_detections.jpg"), p.FaceQuality); err != nil {
			return err
		}
	}

	contours, err := p.Config.AnnotatePanorama(img, proj, dets)
	if err != nil {
		return err
	}
	if err := WriteJPEG(contours, filepath.Join(outDir, "panorama_contours.jpg"), p.FaceQuality); err != nil {
		return err
	}

	distFile, ok := findDistances(outDir)
	if !ok {
		log.Printf("%s: no distances yet, stopping after azimuths\n", filename)
		p.note("azimuths-only", filename)
		return nil
	}

	dist, err := detect.ReadDistances(distFile)
	if err != nil {
		return err
	}

	origin, err := geoloc.ReadOrigin(filename)
	if err != nil {
		if errors.Is(err, geoloc.ErrNoGPS) {
			log.Printf("%s: no EXIF GPS fix, skipping geocoding\n", filename)
			p.note("no-gps", filename)
			return nil
		}
		return err
	}

	coords, err := detect.Join(origin, az, dist)
	if err != nil {
		return err
	}
	if err := detect.WriteCoords(filepath.Join(outDir, "coords.json"), coords); err != nil {
		return err
	}

	if p.Config.Publish && p.Pub != nil {
		for _, f := range cubemap.AllFaces() {
			for _, g := range coords[f] {
				if err := p.Pub.Publish(filepath.Base(filename), f, g); err != nil {
					log.Printf("publish %s %s #%d: %v\n", filename, f, g.BBoxIndex, err)
				}
			}
		}
	}

	p.note("ok", filename)
	return nil
}

// The depth stage has produced two generations of filename; prefer
// the newer one.
func findDistances(outDir string) (string, bool) {
	for _, name := range []string{"distances_unidepth.json", "distances.json"} {
		full := filepath.Join(outDir, name)
		if _, err := os.Stat(full); err == nil {
			return full, true
		}
	}
	return "", false
}

func (p *Pipeline)note(status, filename string) {
	p.Statuses = append(p.Statuses, fmt.Sprintf("%-13s %s", status, filename))

	switch status {
	case "ok":                          p.nOK++
	case "faces-only", "azimuths-only": p.nPartial++
	case "no-gps":                      p.nNoGPS++
	case "failed":                      p.nFailed++
	}
}

// Summary reports what happened to the batch, plus a bearing
// histogram and face render timings when there was anything to count.
func (p *Pipeline)Summary() string {
	str := fmt.Sprintf("%d images: %d ok, %d partial, %d without gps, %d failed\n",
		len(p.Images), p.nOK, p.nPartial, p.nNoGPS, p.nFailed)

	for _, s := range p.Statuses {
		str += "  " + s + "\n"
	}

	if p.RasterMS.TotalCount() > 0 {
		str += fmt.Sprintf("face renders (ms): p50=%d, p95=%d, max=%d, n=%d\n",
			p.RasterMS.ValueAtQuantile(50), p.RasterMS.ValueAtQuantile(95),
			p.RasterMS.Max(), p.RasterMS.TotalCount())
	}
	if p.nAz > 0 {
		str += fmt.Sprintf("detection bearings: %s\n", p.AzHist.String())
	}

	return str
}
