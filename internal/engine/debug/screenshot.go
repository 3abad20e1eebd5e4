// Package debug provides framebuffer capture for the viewer.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// ScreenshotCapture writes framebuffer contents to timestamped PNG files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// CaptureFromPixels saves bottom-up RGBA rows, as returned by glReadPixels,
// as a PNG. label is appended to the prefix, usually the terrain state.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int, label string) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid screenshot size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}

	filename, err := sc.nextFilename(label)
	if err != nil {
		return "", err
	}

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	return filename, nil
}

// nextFilename picks prefix_label_timestamp.png, adding a counter when a
// capture in the same second already exists.
func (sc *ScreenshotCapture) nextFilename(label string) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	base := sc.prefix
	if label != "" {
		base += "_" + label
	}
	base += "_" + sc.now().Format("2006-01-02_15-04-05")

	name := filepath.Join(sc.outputDir, base+".png")
	for i := 1; ; i++ {
		if _, err := os.Stat(name); os.IsNotExist(err) {
			return name, nil
		}
		name = filepath.Join(sc.outputDir, fmt.Sprintf("%s_%d.png", base, i))
	}
}
