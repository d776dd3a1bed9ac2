package basemap

import (
	"image/color"
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorSource yields the fill color for each drawn region.
type ColorSource interface {
	Next() color.RGBA
}

// randomColors picks bright, saturated hues from a seeded generator.
type randomColors struct {
	rng *rand.Rand
}

// NewColorSource returns a random ColorSource. A non-zero seed gives the same
// sequence on every run; zero seeds from the clock.
func NewColorSource(seed int64) ColorSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &randomColors{rng: rand.New(rand.NewSource(seed))}
}

// Next implements ColorSource. Colors are always opaque.
func (c *randomColors) Next() color.RGBA {
	h := c.rng.Float64() * 360
	s := 0.55 + c.rng.Float64()*0.4
	v := 0.6 + c.rng.Float64()*0.35

	r, g, b := colorful.Hsv(h, s, v).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
