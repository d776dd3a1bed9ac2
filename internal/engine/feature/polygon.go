package feature

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/Faultbox/geoglobe/pkg/geojson"
)

// MinRingPositions is the shortest ring accepted, counting the closing repeat:
// four distinct vertices plus the repeat.
const MinRingPositions = 5

// ErrDegenerateRing is returned for rings with fewer than MinRingPositions positions.
var ErrDegenerateRing = errors.New("degenerate ring")

// Polygon is one polygon prepared for triangulation.
//
// Points hold (latitude, longitude) pairs as (X, Y). Contours index into
// Points; the first contour is the outer boundary, the rest are holes. Every
// contour ends with its own first index.
type Polygon struct {
	Points   []r2.Point
	Contours [][]int
}

// AddRing appends a closed GeoJSON ring as a new contour. The ring's closing
// position is not stored; the contour refers back to its first point instead.
func (p *Polygon) AddRing(ring geojson.Ring) error {
	if len(ring) < MinRingPositions {
		return fmt.Errorf("%w: %d positions, need %d", ErrDegenerateRing, len(ring), MinRingPositions)
	}

	offset := len(p.Points)

	contour := make([]int, len(ring))
	for i := range contour {
		contour[i] = offset + i
	}
	contour[len(contour)-1] = contour[0]

	for _, pos := range ring[:len(ring)-1] {
		p.Points = append(p.Points, r2.Point{X: pos.Lat(), Y: pos.Lon()})
	}
	p.Contours = append(p.Contours, contour)

	return nil
}

// AssemblePolygon builds a Polygon from a GeoJSON polygon's rings.
//
// An invalid outer ring fails the whole polygon. Invalid holes are left out
// and returned in skipped; the rest of the polygon is still assembled.
func AssemblePolygon(rings geojson.Polygon) (poly *Polygon, skipped []error, err error) {
	if len(rings) == 0 {
		return nil, nil, fmt.Errorf("outer ring: %w: polygon has no rings", ErrDegenerateRing)
	}

	poly = &Polygon{}
	for i, ring := range rings {
		if err := poly.AddRing(ring); err != nil {
			if i == 0 {
				return nil, nil, fmt.Errorf("outer ring: %w", err)
			}
			skipped = append(skipped, fmt.Errorf("hole %d: %w", i, err))
		}
	}
	return poly, skipped, nil
}
