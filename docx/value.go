package docx

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	// Watermark assets are occasionally exported as BMP or TIFF.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Value is a renderable context value: literal text or an inline image.
type Value interface{ isValue() }

// Text is a literal text value. It replaces the marker's run content
// while inheriting the run's formatting.
type Text string

func (Text) isValue() {}

// Image is an inline picture substituted in place of a marker.
type Image struct {
	data      []byte
	ext       string
	widthEMU  int64
	heightEMU int64
}

func (*Image) isValue() {}

// OOXML drawing coordinates are English Metric Units.
const emuPerMM = 36000

var imageContentTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
}

// LoadImage reads an image asset and sizes it to widthMM millimetres
// wide, preserving the aspect ratio of the decoded pixels.
func LoadImage(path string, widthMM float64) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image asset: %w", err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image asset %s: %w", filepath.Base(path), err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("image asset %s has no dimensions", filepath.Base(path))
	}
	if _, ok := imageContentTypes[format]; !ok {
		return nil, fmt.Errorf("image asset %s: unsupported format %s", filepath.Base(path), format)
	}
	w := int64(widthMM * emuPerMM)
	h := int64(widthMM * emuPerMM * float64(cfg.Height) / float64(cfg.Width))
	return &Image{data: data, ext: format, widthEMU: w, heightEMU: h}, nil
}
