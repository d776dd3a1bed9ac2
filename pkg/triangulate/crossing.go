package triangulate

import (
	"fmt"
	"sort"

	"github.com/golang/geo/r2"
)

type segment struct {
	a, b    r2.Point
	ring    int
	edge    int
	extents r2.Rect
}

// checkCrossings sweeps all contour edges left to right and fails on the
// first pair that crosses at a point interior to both edges.
func checkCrossings(points []r2.Point, rings [][]int) error {
	var segs []segment
	for ri, ring := range rings {
		for k := range ring {
			a := points[ring[k]]
			b := points[ring[(k+1)%len(ring)]]
			segs = append(segs, segment{
				a:       a,
				b:       b,
				ring:    ri,
				edge:    k,
				extents: r2.RectFromPoints(a, b),
			})
		}
	}

	sort.Slice(segs, func(i, j int) bool {
		return segs[i].extents.X.Lo < segs[j].extents.X.Lo
	})

	active := make([]*segment, 0, 64)
	for i := range segs {
		s := &segs[i]

		kept := active[:0]
		for _, t := range active {
			if t.extents.X.Hi >= s.extents.X.Lo {
				kept = append(kept, t)
			}
		}
		active = kept

		for _, t := range active {
			if !t.extents.Intersects(s.extents) {
				continue
			}
			if crosses(s.a, s.b, t.a, t.b) {
				return fmt.Errorf("%w: contour %d edge %d crosses contour %d edge %d",
					ErrSelfIntersection, t.ring, t.edge, s.ring, s.edge)
			}
		}
		active = append(active, s)
	}
	return nil
}

// crosses reports a proper crossing: each segment strictly separates the
// endpoints of the other. Shared endpoints and collinear touches do not count.
func crosses(a1, b1, a2, b2 r2.Point) bool {
	o1 := orient(a1, b1, a2)
	o2 := orient(a1, b1, b2)
	o3 := orient(a2, b2, a1)
	o4 := orient(a2, b2, b1)
	return o1*o2 < 0 && o3*o4 < 0
}

func orient(a, b, c r2.Point) int {
	return sign(b.Sub(a).Cross(c.Sub(a)))
}
