package pano

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	c := NewConfig()

	if c.OutputRoot != "." {
		t.Errorf("OutputRoot: got %q, want \".\"", c.OutputRoot)
	}
	if c.FaceQuality != 95 {
		t.Errorf("FaceQuality: got %d, want 95", c.FaceQuality)
	}
	if c.EdgeSamples != 20 {
		t.Errorf("EdgeSamples: got %d, want 20", c.EdgeSamples)
	}
	if c.PreviewWidth != 2048 {
		t.Errorf("PreviewWidth: got %d, want 2048", c.PreviewWidth)
	}
	if c.CubeSize != 0 {
		t.Errorf("CubeSize: got %d, want 0 (auto)", c.CubeSize)
	}
	if c.ClassNames == nil || c.ClassColors == nil {
		t.Errorf("class maps should be usable without nil checks")
	}
}

func TestConfigFromYaml(t *testing.T) {
	yaml := `
verbosity: 2
cubesize: 1024
outputroot: /tmp/out
classnames:
  0: traffic_light
  3: bench
classcolors:
  3: "#ff8800"
`
	c, err := newConfigFromYaml([]byte(yaml))
	if err != nil {
		t.Fatalf("newConfigFromYaml: %v", err)
	}

	if c.Verbosity != 2 || c.CubeSize != 1024 || c.OutputRoot != "/tmp/out" {
		t.Errorf("explicit fields not honored: %+v", c)
	}
	if c.FaceQuality != 95 || c.EdgeSamples != 20 {
		t.Errorf("defaults not filled in for unset fields: %+v", c)
	}
	if c.ClassNames[0] != "traffic_light" || c.ClassNames[3] != "bench" {
		t.Errorf("classnames not parsed: %+v", c.ClassNames)
	}
	if c.ClassColors[3] != "#ff8800" {
		t.Errorf("classcolors not parsed: %+v", c.ClassColors)
	}

	if !strings.Contains(c.AsYaml(), "cubesize: 1024") {
		t.Errorf("AsYaml round trip lost cubesize:\n%s", c.AsYaml())
	}
}

func TestConfigFromYamlViaPipeline(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "pano.yaml")
	if err := ioutil.WriteFile(filename, []byte("cubesize: 640\n"), 0644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	p := NewPipeline(NewConfig())
	if err := p.AddFilesAndDirs(filename); err != nil {
		t.Fatalf("AddFilesAndDirs: %v", err)
	}
	if p.CubeSize != 640 {
		t.Errorf("yaml config not picked up, CubeSize = %d", p.CubeSize)
	}
	if len(p.Images) != 0 {
		t.Errorf("yaml file should not queue as an image")
	}
}

func TestClassColor(t *testing.T) {
	c := NewConfig()
	c.ClassColors[2] = "#102030"
	c.ClassColors[4] = "not-a-color"

	if got := c.ClassColor(0); got != defaultPalette[0] {
		t.Errorf("class 0: got %v, want palette red", got)
	}
	if got := c.ClassColor(5); got != defaultPalette[5] {
		t.Errorf("class 5: got %v, want palette cyan", got)
	}

	// Configured hex wins over the palette.
	got := c.ClassColor(2)
	if got.R < 0.05 || got.R > 0.08 {
		t.Errorf("class 2 hex override: got %v, want ~#102030", got)
	}

	// A broken hex value falls back to the palette.
	if got := c.ClassColor(4); got != defaultPalette[4] {
		t.Errorf("class 4 bad hex: got %v, want palette magenta", got)
	}

	if got := c.ClassColor(-1); got.R != 0.5 || got.G != 0.5 || got.B != 0.5 {
		t.Errorf("classless detection: got %v, want gray", got)
	}

	// Ids past the fixed palette still resolve, and stay stable.
	if c.ClassColor(7) != c.ClassColor(7) {
		t.Errorf("extra palette not stable across calls")
	}
	if c.ClassColor(6) == c.ClassColor(7) {
		t.Errorf("adjacent extra classes should differ")
	}
}

func TestClassName(t *testing.T) {
	c := NewConfig()
	c.ClassNames[9] = "streetlamp"

	if got := c.ClassName(9); got != "streetlamp" {
		t.Errorf("named class: got %q", got)
	}
	if got := c.ClassName(3); got != "3" {
		t.Errorf("unnamed class: got %q, want \"3\"", got)
	}
	if got := c.ClassName(-1); got != "-1" {
		t.Errorf("classless: got %q, want \"-1\"", got)
	}
}
