// Package pano runs panoramas through the whole treatment: cube
// faces out to disk, detector output back in, bearings, distances,
// GPS coordinates, annotated previews. One Pipeline handles a batch
// of images; each image gets its own output directory.
package pano

import(
	"log"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Verbosity    int

	CubeSize     int    // face side in pixels; 0 means a quarter of each panorama's width
	OutputRoot   string // per-image output dirs get created under here
	FaceQuality  int    // JPEG quality for faces and overlays
	EdgeSamples  int    // contour points sampled per box edge
	PreviewWidth int    // width of the downscaled panorama contour preview

	ClassNames  map[int]string // detector class id -> display name
	ClassColors map[int]string // detector class id -> hex color, e.g. "#ff8800"

	Publish bool // push geocoded detections to kafka
}

func NewConfig() Config {
	c := Config{
		ClassNames:  map[int]string{},
		ClassColors: map[int]string{},
	}
	c.Finalize()
	return c
}

// Finalize fills in anything yaml and flags left unset.
func (c *Config)Finalize() {
	if c.OutputRoot == ""   { c.OutputRoot = "." }
	if c.FaceQuality == 0   { c.FaceQuality = 95 }
	if c.EdgeSamples == 0   { c.EdgeSamples = 20 }
	if c.PreviewWidth == 0  { c.PreviewWidth = 2048 }
	if c.ClassNames == nil  { c.ClassNames = map[int]string{} }
	if c.ClassColors == nil { c.ClassColors = map[int]string{} }
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	c.Finalize()
	return c, err
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

// The six colors the overlays have always used, in class id order.
var defaultPalette = []colorful.Color{
	{R: 1},         // red
	{G: 1},         // green
	{B: 1},         // blue
	{R: 1, G: 1},   // yellow
	{R: 1, B: 1},   // magenta
	{G: 1, B: 1},   // cyan
}

// Classes beyond the fixed six get colors from a generated palette,
// stable within a run.
var extraPalette = colorful.FastHappyPalette(18)

// ClassColor resolves the overlay color for a detector class: a
// configured hex value if there is one, then the fixed palette, then
// the generated one. Class -1 (detector gave no class) draws gray.
func (c Config)ClassColor(id int) colorful.Color {
	if hex, ok := c.ClassColors[id]; ok {
		if col, err := colorful.Hex(hex); err == nil {
			return col
		}
		log.Printf("Config.ClassColors[%d] = '%s' is not a hex color, ignoring\n", id, hex)
	}

	if id < 0 {
		return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	} else if id < len(defaultPalette) {
		return defaultPalette[id]
	}
	return extraPalette[(id-len(defaultPalette))%len(extraPalette)]
}

// ClassName is the label text for a class id; unnamed classes label
// as the bare number, same as the detector's own overlays.
func (c Config)ClassName(id int) string {
	if name, ok := c.ClassNames[id]; ok {
		return name
	}
	return strconv.Itoa(id)
}
