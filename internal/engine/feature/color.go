// Package feature turns GeoJSON administrative boundaries into a colored
// triangle mesh floating just above the globe surface.
package feature

import "github.com/cespare/xxhash/v2"

// ColorAssigner maps a feature name to an RGB color.
type ColorAssigner interface {
	ColorFor(name string) [3]uint8
}

// HashColors derives colors from a 64-bit xxhash of the name. Equal names
// always get equal colors, in every process.
type HashColors struct{}

// ColorFor implements ColorAssigner.
func (HashColors) ColorFor(name string) [3]uint8 {
	return ColorFor(name)
}

// ColorFor returns the hash color for name.
func ColorFor(name string) [3]uint8 {
	h := xxhash.Sum64String(name)
	return [3]uint8{uint8(h >> 16), uint8(h >> 8), uint8(h)}
}

// Normalize converts an 8-bit color to the [0, 1] floats stored in vertices.
func Normalize(c [3]uint8) [3]float32 {
	return [3]float32{
		float32(c[0]) / 255,
		float32(c[1]) / 255,
		float32(c[2]) / 255,
	}
}
