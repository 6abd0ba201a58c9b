package main

import(
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/overdonebirch/scripts-yolo-madrid/pkg/pano"
	"github.com/overdonebirch/scripts-yolo-madrid/pkg/publish"
)

var(
	fVerbosity int
	fCubeSize int
	fOutputRoot string
	fImage string
	fEdgeSamples int
	fPublish bool
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.IntVar(&fCubeSize, "cubesize", 0, "cube face side in pixels (0: quarter of each panorama's width)")
	flag.StringVar(&fOutputRoot, "out", "", "create per-image output dirs under here")
	flag.StringVar(&fImage, "image", "", "process just this one panorama")
	flag.IntVar(&fEdgeSamples, "edgesamples", 0, "contour points sampled per box edge")
	flag.BoolVar(&fPublish, "publish", false, "push geocoded detections to kafka")
	flag.Parse()

	godotenv.Load()

	log.Printf("panopipe starting\n")
}

func main() {
	p := pano.NewPipeline(pano.NewConfig())
	if err := p.AddFilesAndDirs(flag.Args()...); err != nil {
		log.Fatal(err)
	}
	if fImage != "" {
		if err := p.AddFilesAndDirs(fImage); err != nil {
			log.Fatal(err)
		}
	}
	if len(p.Images) == 0 {
		log.Fatal("no panoramas given (pass image files or dirs; .yaml args load config)")
	}

	// Override the config file with command line args, if relevant
	if fCubeSize > 0 { p.Config.CubeSize = fCubeSize }
	if fOutputRoot != "" { p.Config.OutputRoot = fOutputRoot }
	if fEdgeSamples > 0 { p.Config.EdgeSamples = fEdgeSamples }
	if fPublish { p.Config.Publish = true }
	p.Config.Verbosity = fVerbosity

	if p.Config.Publish {
		pub, err := publish.NewPublisher(publish.NewConfig())
		if err != nil {
			log.Fatalf("kafka: %v\n", err)
		}
		defer pub.Close()
		p.Pub = pub
	}

	if p.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", p.Config.AsYaml())
	}

	p.Run()

	log.Printf("all done\n\n%s", p.Summary())
}
