// Package basemap prepares the equirectangular base texture: it crops the
// padded source image and paints administrative regions on top of it.
package basemap

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/Faultbox/geoglobe/internal/engine/texture"
)

// ErrPaddingTooLarge is returned when the padding leaves no pixels to draw on.
var ErrPaddingTooLarge = errors.New("padding too large for image")

// Padding is the number of pixels stripped from each edge of the source image.
type Padding struct {
	Width  int
	Height int
}

// Basemap is the cropped base texture. Image bounds start at the origin and
// span exactly Width x Height pixels.
type Basemap struct {
	Image  *image.RGBA
	Width  int
	Height int
}

// Decode decodes encoded raster bytes in any registered format and crops the
// padding away. Decode failures are returned unchanged in meaning; callers
// treat them as fatal.
func Decode(data []byte, padding Padding) (*Basemap, error) {
	img, _, err := texture.DecodeRGBA(data)
	if err != nil {
		return nil, fmt.Errorf("basemap: %w", err)
	}
	return FromImage(img, padding)
}

// FromImage crops padding from every edge of img and copies the inner region
// into a new RGBA buffer.
func FromImage(img image.Image, padding Padding) (*Basemap, error) {
	src := img.Bounds()
	w := src.Dx() - 2*padding.Width
	h := src.Dy() - 2*padding.Height
	if padding.Width < 0 || padding.Height < 0 || w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d image, padding %dx%d",
			ErrPaddingTooLarge, src.Dx(), src.Dy(), padding.Width, padding.Height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	sp := src.Min.Add(image.Pt(padding.Width, padding.Height))
	draw.Draw(dst, dst.Bounds(), img, sp, draw.Src)

	return &Basemap{Image: dst, Width: w, Height: h}, nil
}

// Bytes returns the pixel buffer: row-major RGBA, 4 bytes per pixel, row
// stride 4*Width. The slice aliases the image.
func (b *Basemap) Bytes() []byte {
	return b.Image.Pix[:4*b.Width*b.Height]
}

// ProjectPixel maps a longitude/latitude in degrees to the pixel containing it
// under the equirectangular layout of the basemap.
func (b *Basemap) ProjectPixel(lon, lat float64) image.Point {
	return ProjectPixel(lon, lat, b.Width, b.Height)
}
