package feature

import (
	gomath "math"
	"testing"

	"github.com/golang/geo/r2"
)

func TestProjectDistanceFromCenter(t *testing.T) {
	const radius = 100
	for _, p := range []r2.Point{{X: 0, Y: 0}, {X: 45, Y: 90}, {X: -60, Y: -170}, {X: 89, Y: 12}} {
		got := Project(p, radius).Length()
		if gomath.Abs(float64(got)-(radius+SurfaceOffset)) > 1e-3 {
			t.Errorf("|Project(%v)| = %v, want %v", p, got, radius+SurfaceOffset)
		}
	}
}

func TestProjectAxes(t *testing.T) {
	const radius = 9

	// Zero latitude and longitude lands on +X after the pi rotation.
	v := Project(r2.Point{}, radius)
	if gomath.Abs(float64(v.X)-10) > 1e-4 || gomath.Abs(float64(v.Y)) > 1e-4 || gomath.Abs(float64(v.Z)) > 1e-4 {
		t.Errorf("Project(0, 0) = %v, want (10, 0, 0)", v)
	}

	// Positive latitude goes to -Y.
	v = Project(r2.Point{X: 90}, radius)
	if gomath.Abs(float64(v.Y)+10) > 1e-4 {
		t.Errorf("Project(lat 90) = %v, want y = -10", v)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	const radius = 10000
	for lat := -85.0; lat <= 85; lat += 17 {
		for lon := -175.0; lon <= 175; lon += 25 {
			p := r2.Point{X: lat, Y: lon}
			got := Unproject(Project(p, radius))
			if gomath.Abs(got.X-lat) > 1e-2 || gomath.Abs(got.Y-lon) > 1e-2 {
				t.Errorf("Unproject(Project(%v)) = %v", p, got)
			}
		}
	}
}

func TestUnprojectIgnoresDistance(t *testing.T) {
	p := r2.Point{X: 33, Y: -71}
	v := Project(p, 10)
	for _, scale := range []float32{0.01, 1, 250} {
		scaled := v
		scaled.X, scaled.Y, scaled.Z = v.X*scale, v.Y*scale, v.Z*scale
		got := Unproject(scaled)
		if gomath.Abs(got.X-p.X) > 1e-3 || gomath.Abs(got.Y-p.Y) > 1e-3 {
			t.Errorf("Unproject(%v x %v) = %v, want %v", v, scale, got, p)
		}
	}
}
