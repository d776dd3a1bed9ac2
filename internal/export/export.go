// Package export writes the pipeline artifacts to disk: the composited
// basemap, the two meshes and a manifest describing them.
package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// Writer writes artifacts into one output directory.
type Writer struct {
	outputDir string
}

// NewWriter creates a writer for dir. The directory is created on first write.
func NewWriter(dir string) *Writer {
	return &Writer{outputDir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.outputDir
}

// Path returns where an artifact called name is written.
func (w *Writer) Path(name string) string {
	if w.outputDir == "" {
		return name
	}
	return filepath.Join(w.outputDir, name)
}

func (w *Writer) create(name string) (*os.File, string, error) {
	// Create output directory if needed
	if w.outputDir != "" {
		if err := os.MkdirAll(w.outputDir, 0755); err != nil {
			return nil, "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path := w.Path(name)
	file, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("creating file: %w", err)
	}
	return file, path, nil
}

// WritePNG encodes img as PNG under name.
func (w *Writer) WritePNG(name string, img image.Image) (string, error) {
	file, path, err := w.create(name)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}

	return path, nil
}

// WritePixels writes a raw row-major RGBA buffer as PNG.
// pixels must hold exactly width*height*4 bytes, rows top to bottom.
func (w *Writer) WritePixels(name string, pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[y*rowSize:(y+1)*rowSize])
	}

	return w.WritePNG(name, img)
}
