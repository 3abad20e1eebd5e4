// Package heightmap decodes image files into normalized elevation grids.
package heightmap

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
)

// Extensions lists the file extensions Load can decode.
var Extensions = []string{"bmp", "png", "jpg", "jpeg", "tif", "tiff", "tga"}

// Heightmap is a row-major grid of elevations in [0, 1].
type Heightmap struct {
	Width   int
	Height  int
	Samples []float32
}

// Size returns the grid dimensions.
func (h *Heightmap) Size() (int, int) {
	return h.Width, h.Height
}

// At returns the elevation at (col, row).
func (h *Heightmap) At(col, row int) float32 {
	return h.Samples[row*h.Width+col]
}

// Load reads and decodes a heightmap image file.
func Load(path string) (*Heightmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading heightmap: %w", err)
	}

	hm, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return hm, nil
}

// Decode converts encoded image bytes into a heightmap. The extension selects
// the TGA decoder, which has no magic number; every other format is sniffed.
func Decode(data []byte, ext string) (*Heightmap, error) {
	var img image.Image
	var err error

	if strings.EqualFold(strings.TrimPrefix(ext, "."), "tga") {
		img, err = decodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, err
	}

	return FromImage(img)
}

// FromImage samples the first channel of img, scaled from [0, 255] to [0, 1].
func FromImage(img image.Image) (*Heightmap, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("empty image %dx%d", width, height)
	}

	hm := &Heightmap{
		Width:   width,
		Height:  height,
		Samples: make([]float32, width*height),
	}

	// Fast path for the common grayscale case.
	if gray, ok := img.(*image.Gray); ok {
		for y := range height {
			row := gray.Pix[y*gray.Stride : y*gray.Stride+width]
			for x, v := range row {
				hm.Samples[y*width+x] = float32(v) / 255.0
			}
		}
		return hm, nil
	}

	for y := range height {
		for x := range width {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			hm.Samples[y*width+x] = float32(c.R) / 255.0
		}
	}
	return hm, nil
}
