package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// tgaHeaderBytes builds an 18-byte TGA header.
func tgaHeaderBytes(imageType byte, w, h int, bpp byte, topToBottom bool) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	if topToBottom {
		hdr[17] = 0x20
	}
	return hdr
}

func TestDecodeTGAUncompressedBottomUp(t *testing.T) {
	// 2x2, 24 bpp, rows stored bottom row first, BGR order.
	data := tgaHeaderBytes(TGATypeUncompressed, 2, 2, 24, false)
	data = append(data,
		0, 0, 255, 0, 255, 0, // bottom row: red, green
		255, 0, 0, 255, 255, 255, // top row: blue, white
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	rgba := img.(*image.RGBA)

	checks := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 1, color.RGBA{255, 0, 0, 255}},
		{1, 1, color.RGBA{0, 255, 0, 255}},
		{0, 0, color.RGBA{0, 0, 255, 255}},
		{1, 0, color.RGBA{255, 255, 255, 255}},
	}
	for _, c := range checks {
		if got := rgba.RGBAAt(c.x, c.y); got != c.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestDecodeTGARLE(t *testing.T) {
	// 3x1, 32 bpp, top-to-bottom: a run of two, then one raw pixel.
	data := tgaHeaderBytes(TGATypeRLE, 3, 1, 32, true)
	data = append(data,
		0x81, 10, 20, 30, 40,
		0x00, 1, 2, 3, 4,
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	rgba := img.(*image.RGBA)
	if got, want := rgba.RGBAAt(1, 0), (color.RGBA{30, 20, 10, 40}); got != want {
		t.Errorf("run pixel = %v, want %v", got, want)
	}
	if got, want := rgba.RGBAAt(2, 0), (color.RGBA{3, 2, 1, 4}); got != want {
		t.Errorf("raw pixel = %v, want %v", got, want)
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	cases := map[string][]byte{
		"short":      {0, 0, 2},
		"color map":  append([]byte{0, 1}, make([]byte, 16)...),
		"bad type":   tgaHeaderBytes(3, 1, 1, 24, false),
		"bad depth":  tgaHeaderBytes(TGATypeUncompressed, 1, 1, 16, false),
		"truncated":  append(tgaHeaderBytes(TGATypeUncompressed, 2, 2, 24, false), 1, 2, 3),
		"rle cutoff": append(tgaHeaderBytes(TGATypeRLE, 4, 1, 24, false), 0x81, 1, 2, 3),
	}
	for name, data := range cases {
		if _, err := DecodeTGA(data); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestDecodeRGBAPNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	src.SetNRGBA(2, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}

	img, format, err := DecodeRGBA(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeRGBA failed: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if got, want := img.RGBAAt(2, 1), (color.RGBA{200, 100, 50, 255}); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestDecodeRGBATGA(t *testing.T) {
	data := tgaHeaderBytes(TGATypeUncompressed, 1, 1, 24, false)
	data = append(data, 9, 8, 7)

	img, format, err := DecodeRGBA(data)
	if err != nil {
		t.Fatalf("DecodeRGBA failed: %v", err)
	}
	if format != "tga" {
		t.Errorf("format = %q, want tga", format)
	}
	if got, want := img.RGBAAt(0, 0), (color.RGBA{7, 8, 9, 255}); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestDecodeRGBAGarbage(t *testing.T) {
	if _, _, err := DecodeRGBA([]byte("definitely not an image")); err == nil {
		t.Error("expected error for undecodable data")
	}
}

func TestToRGBAOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 8, 7))
	src.SetRGBA(6, 6, color.RGBA{1, 2, 3, 255})

	dst := ToRGBA(src)
	if dst.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("bounds = %v, want origin-based 3x2", dst.Bounds())
	}
	if got := dst.RGBAAt(1, 1); got != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("pixel = %v", got)
	}

	same := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if ToRGBA(same) != same {
		t.Error("origin-based RGBA should be returned unchanged")
	}
}
