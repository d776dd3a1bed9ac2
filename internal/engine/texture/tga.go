// Package texture registers the raster codecs accepted for basemap input and
// converts decoded images to the 8-bit RGBA layout the rasterizer draws on.
package texture

import (
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

type tgaHeader struct {
	idLength    int
	imageType   byte
	width       int
	height      int
	bpp         int
	topToBottom bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, fmt.Errorf("TGA data too short")
	}

	h := tgaHeader{
		idLength:  int(data[0]),
		imageType: data[2],
		width:     int(data[12]) | int(data[13])<<8,
		height:    int(data[14]) | int(data[15])<<8,
		bpp:       int(data[16]),
		// bit 5 of the descriptor selects top-to-bottom row order
		topToBottom: data[17]&0x20 != 0,
	}

	if data[1] != 0 {
		return tgaHeader{}, fmt.Errorf("color-mapped TGA not supported")
	}
	if h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE {
		return tgaHeader{}, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", h.imageType)
	}
	if h.bpp != 24 && h.bpp != 32 {
		return tgaHeader{}, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", h.bpp)
	}
	return h, nil
}

// DecodeTGA decodes a TGA image file.
// Supports uncompressed true-color (type 2) and RLE compressed (type 10) TGA files,
// the variants exported by common GIS and paint tools for basemaps.
func DecodeTGA(data []byte) (image.Image, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}
	pixelData := data[offset:]

	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	bytesPerPixel := h.bpp / 8

	if h.imageType == TGATypeUncompressed {
		if len(pixelData) < h.width*h.height*bytesPerPixel {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for i := 0; i < h.width*h.height; i++ {
			h.set(img, i, readBGRA(pixelData[i*bytesPerPixel:], bytesPerPixel))
		}
		return img, nil
	}

	if err := decodeTGARLE(img, h, pixelData, bytesPerPixel); err != nil {
		return nil, err
	}
	return img, nil
}

// decodeTGARLE decodes RLE-compressed TGA pixel data into an image.
func decodeTGARLE(img *image.RGBA, h tgaHeader, pixelData []byte, bytesPerPixel int) error {
	pixelCount := h.width * h.height
	pixelIdx := 0
	dataIdx := 0

	for pixelIdx < pixelCount {
		if dataIdx >= len(pixelData) {
			return fmt.Errorf("TGA RLE data truncated at pixel %d of %d", pixelIdx, pixelCount)
		}
		packet := pixelData[dataIdx]
		dataIdx++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// run: one pixel repeated
			if dataIdx+bytesPerPixel > len(pixelData) {
				return fmt.Errorf("TGA RLE run truncated")
			}
			c := readBGRA(pixelData[dataIdx:], bytesPerPixel)
			dataIdx += bytesPerPixel

			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				h.set(img, pixelIdx, c)
				pixelIdx++
			}
			continue
		}

		for i := 0; i < count && pixelIdx < pixelCount; i++ {
			if dataIdx+bytesPerPixel > len(pixelData) {
				return fmt.Errorf("TGA RLE raw packet truncated")
			}
			h.set(img, pixelIdx, readBGRA(pixelData[dataIdx:], bytesPerPixel))
			dataIdx += bytesPerPixel
			pixelIdx++
		}
	}

	return nil
}

func (h tgaHeader) set(img *image.RGBA, pixelIdx int, c color.RGBA) {
	x := pixelIdx % h.width
	y := pixelIdx / h.width
	if !h.topToBottom {
		y = h.height - 1 - y
	}
	img.SetRGBA(x, y, c)
}

func readBGRA(p []byte, bytesPerPixel int) color.RGBA {
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if bytesPerPixel == 4 {
		c.A = p[3]
	}
	return c
}

// decodeTGAReader and decodeTGAConfig adapt DecodeTGA to image.RegisterFormat.
func decodeTGAReader(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeTGA(data)
}

func decodeTGAConfig(r io.Reader) (image.Config, error) {
	var hdr [tgaHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return image.Config{}, err
	}
	h, err := parseTGAHeader(hdr[:])
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: h.width, Height: h.height}, nil
}
