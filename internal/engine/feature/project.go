package feature

import (
	gomath "math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"

	"github.com/Faultbox/geoglobe/pkg/math"
)

// SurfaceOffset lifts feature geometry above the globe to avoid z-fighting.
const SurfaceOffset = 1

// Project maps an assembled (latitude, longitude) point in degrees to globe
// space at radius+SurfaceOffset.
//
// The first coordinate, shifted by pi, is used as the elevation angle:
//
//	x = -cos(a)*cos(b)*R, y = sin(a)*R, z = cos(a)*sin(b)*R
//
// with a = p.X+pi and b = p.Y in radians. This lines the overlay up with
// the basemap texture as sampled by the globe shader and must not be changed
// without checking the two layers visually.
func Project(p r2.Point, radius float32) math.Vec3 {
	a := float32(degrees(p.X).Radians()) + gomath.Pi
	b := float32(degrees(p.Y).Radians())
	r := radius + SurfaceOffset

	sinA, cosA := sincos32(a)
	sinB, cosB := sincos32(b)

	return math.Vec3{
		X: -cosA * cosB * r,
		Y: sinA * r,
		Z: cosA * sinB * r,
	}
}

// Unproject inverts Project for latitudes in (-90, 90). Only the direction
// of v matters, so points at any distance from the center are accepted.
func Unproject(v math.Vec3) r2.Point {
	n := v.Normalize()

	sinLat := gomath.Max(-1, gomath.Min(1, -float64(n.Y)))
	lat := s1.Angle(gomath.Asin(sinLat))
	lon := s1.Angle(gomath.Atan2(-float64(n.Z), float64(n.X)))

	return r2.Point{X: lat.Degrees(), Y: lon.Degrees()}
}

func degrees(d float64) s1.Angle {
	return s1.Angle(d) * s1.Degree
}

func sincos32(a float32) (sin, cos float32) {
	s, c := gomath.Sincos(float64(a))
	return float32(s), float32(c)
}
