package main

import(
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"log"

	"github.com/overdonebirch/scripts-yolo-madrid/pkg/geoloc"
)

var(
	fJsonFile string
)

func init() {
	flag.StringVar(&fJsonFile, "json", "", "also write the report as JSON to this file (single image only)")
	flag.Parse()
}

func main() {
	if flag.NArg() == 0 {
		log.Fatal("usage: panogps [flags] image.jpg [more images ...]")
	}
	if fJsonFile != "" && flag.NArg() != 1 {
		log.Fatal("-json only works with a single image")
	}

	for _, filename := range flag.Args() {
		report, err := geoloc.ReadReport(filename)
		if err != nil {
			log.Printf("%s: %v\n", filename, err)
			continue
		}

		fmt.Print(report)

		if fJsonFile != "" {
			b, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				log.Fatalf("marshal report: %v\n", err)
			}
			if err := ioutil.WriteFile(fJsonFile, b, 0644); err != nil {
				log.Fatal(err)
			}
			log.Printf("wrote %s\n", fJsonFile)
		}
	}
}
