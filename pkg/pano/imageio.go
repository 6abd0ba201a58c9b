package pano

// A few helper routines for golang's image libraries

import(
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"

	_ "golang.org/x/image/tiff"
)

// An ImageLoadError means one panorama could not be read or decoded.
// Fatal to that image only; a batch logs it and moves on.
type ImageLoadError struct {
	Filename string
	Err      error
}

func NewImageLoadError(filename string, err error) ImageLoadError {
	return ImageLoadError{Filename: filename, Err: err}
}

func (e ImageLoadError)Error() string {
	return fmt.Sprintf("image load '%s': %v", e.Filename, e.Err)
}

func (e ImageLoadError)Unwrap() error { return e.Err }

func LoadImage(filename string) (image.Image, error) {
	if reader, err := os.Open(filename); err != nil {
		return nil, NewImageLoadError(filename, err)
	} else {
		defer reader.Close()
		if img, _, err := image.Decode(reader); err != nil {
			return nil, NewImageLoadError(filename, err)
		} else {
			return img, nil
		}
	}
}

func WriteJPEG(img image.Image, filename string, quality int) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return jpeg.Encode(writer, img, &jpeg.Options{Quality: quality})
	}
}

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}
