// Package triangulate triangulates planar polygons with holes.
//
// A polygon is given as a point list and a set of contours, each contour an
// ordered list of indices into the point list. The first contour is the outer
// boundary and the rest are holes. Output triangles only use the given points
// and never cross a contour edge.
package triangulate

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Triangle holds three indices into the point list, counter-clockwise in the
// (x, y) plane.
type Triangle [3]int

// Triangulation errors.
var (
	ErrNoContours       = errors.New("triangulate: no contours")
	ErrIndexOutOfRange  = errors.New("triangulate: contour index out of range")
	ErrDegenerate       = errors.New("triangulate: degenerate contour")
	ErrSelfIntersection = errors.New("triangulate: contours intersect")
	ErrNoTriangles      = errors.New("triangulate: polygon produced no triangles")
)

type pointXY struct {
	x, y float64
}

// Triangulate triangulates the region bounded by contours[0] with the other
// contours removed as holes. Contours may repeat their first index at the end.
//
// Contours with fewer than three distinct vertices, non-finite coordinates,
// zero area, or edges that cross each other are rejected. Contours touching at
// a vertex are accepted.
func Triangulate(points []r2.Point, contours [][]int) ([]Triangle, error) {
	if len(contours) == 0 {
		return nil, ErrNoContours
	}

	rings := make([][]int, 0, len(contours))
	for ci, c := range contours {
		ring, err := openRing(points, c)
		if err != nil {
			return nil, fmt.Errorf("contour %d: %w", ci, err)
		}
		rings = append(rings, ring)
	}

	if err := checkCrossings(points, rings); err != nil {
		return nil, err
	}

	pts := make([]pointXY, len(points))
	for i, p := range points {
		pts[i] = pointXY{p.X, p.Y}
	}

	if signedArea(pts, rings[0]) == 0 {
		return nil, fmt.Errorf("contour 0: %w: zero area", ErrDegenerate)
	}

	tris := earcut(pts, rings[0], rings[1:])
	if len(tris) == 0 {
		return nil, ErrNoTriangles
	}
	return tris, nil
}

// openRing validates a contour and returns it without the closing repeat or
// consecutive duplicate positions.
func openRing(points []r2.Point, contour []int) ([]int, error) {
	ring := make([]int, 0, len(contour))
	for _, idx := range contour {
		if idx < 0 || idx >= len(points) {
			return nil, fmt.Errorf("%w: %d (have %d points)", ErrIndexOutOfRange, idx, len(points))
		}
		p := points[idx]
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil, fmt.Errorf("%w: non-finite point %d", ErrDegenerate, idx)
		}
		if len(ring) > 0 && points[ring[len(ring)-1]] == p {
			continue
		}
		ring = append(ring, idx)
	}

	for len(ring) > 1 && points[ring[len(ring)-1]] == points[ring[0]] {
		ring = ring[:len(ring)-1]
	}

	if len(ring) < 3 {
		return nil, fmt.Errorf("%w: %d distinct vertices", ErrDegenerate, len(ring))
	}
	return ring, nil
}
