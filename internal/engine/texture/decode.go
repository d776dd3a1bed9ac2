package texture

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	// Codecs accepted for basemap input.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
)

var registerOnce sync.Once

// Register adds the TGA codec to the image package. TGA has no real magic
// number, so it is registered after every other codec and only matched when
// nothing else claims the data. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		image.RegisterFormat("tga", "?\x00\x02", decodeTGAReader, decodeTGAConfig)
		image.RegisterFormat("tga", "?\x00\x0a", decodeTGAReader, decodeTGAConfig)
	})
}

// DecodeRGBA decodes any registered raster format and returns it as 8-bit
// RGBA with its origin at (0, 0), together with the detected format name.
func DecodeRGBA(data []byte) (*image.RGBA, string, error) {
	Register()

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decoding image: %w", err)
	}
	return ToRGBA(img), format, nil
}

// ToRGBA converts any image.Image to *image.RGBA with bounds starting at the
// origin. An *image.RGBA that already qualifies is returned as is.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
