package triangulate

import (
	"math"
	"sort"
)

// node is a vertex in a circular doubly linked polygon ring.
// prevZ/nextZ link the same nodes in z-order for the hashed ear test.
type node struct {
	i    int // index into the caller's point slice
	x, y float64

	prev, next *node

	z            int32
	prevZ, nextZ *node

	steiner bool
}

// hashThreshold is the outer ring size above which ears are tested through the
// z-order index instead of a full ring scan.
const hashThreshold = 80

type earcutter struct {
	tris []Triangle

	minX, minY float64
	invSize    float64
}

// earcut triangulates an outer ring with holes. Rings are lists of point
// indices without the closing repeat.
func earcut(points []pointXY, outer []int, holes [][]int) []Triangle {
	ec := &earcutter{}

	outerNode := linkedList(points, outer, true)
	if outerNode == nil || outerNode.next == outerNode.prev {
		return nil
	}

	if len(holes) > 0 {
		outerNode = eliminateHoles(points, holes, outerNode)
	}

	if len(outer) > hashThreshold {
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, i := range outer {
			p := points[i]
			minX = math.Min(minX, p.x)
			minY = math.Min(minY, p.y)
			maxX = math.Max(maxX, p.x)
			maxY = math.Max(maxY, p.y)
		}
		ec.minX, ec.minY = minX, minY

		size := math.Max(maxX-minX, maxY-minY)
		if size != 0 {
			ec.invSize = 32767 / size
		}
	}

	ec.earcutLinked(outerNode, 0)
	return ec.tris
}

// linkedList builds a ring in the requested orientation.
func linkedList(points []pointXY, ring []int, clockwise bool) *node {
	var last *node
	if clockwise == (signedArea(points, ring) > 0) {
		for _, i := range ring {
			last = insertNode(i, points[i], last)
		}
	} else {
		for k := len(ring) - 1; k >= 0; k-- {
			last = insertNode(ring[k], points[ring[k]], last)
		}
	}

	if last != nil && equals(last, last.next) {
		removeNode(last)
		last = last.next
	}
	return last
}

func (ec *earcutter) earcutLinked(ear *node, pass int) {
	if ear == nil {
		return
	}

	if pass == 0 && ec.invSize != 0 {
		indexCurve(ear, ec.minX, ec.minY, ec.invSize)
	}

	stop := ear
	for ear.prev != ear.next {
		prev, next := ear.prev, ear.next

		var ok bool
		if ec.invSize != 0 {
			ok = isEarHashed(ear, ec.minX, ec.minY, ec.invSize)
		} else {
			ok = isEar(ear)
		}

		if ok {
			ec.tris = append(ec.tris, Triangle{prev.i, ear.i, next.i})
			removeNode(ear)

			// Skipping the next vertex leads to fewer sliver triangles.
			ear = next.next
			stop = next.next
			continue
		}

		ear = next

		if ear == stop {
			switch pass {
			case 0:
				ec.earcutLinked(filterPoints(ear, nil), 1)
			case 1:
				ear = ec.cureLocalIntersections(filterPoints(ear, nil))
				ec.earcutLinked(ear, 2)
			case 2:
				ec.splitEarcut(ear)
			}
			break
		}
	}
}

// isEar reports whether ear is a convex vertex whose triangle contains no
// other ring vertex.
func isEar(ear *node) bool {
	a, b, c := ear.prev, ear, ear.next
	if area(a, b, c) >= 0 {
		return false
	}

	x0, y0, x1, y1 := triangleBBox(a, b, c)

	for p := c.next; p != a; p = p.next {
		if p.x >= x0 && p.x <= x1 && p.y >= y0 && p.y <= y1 &&
			pointInTriangle(a.x, a.y, b.x, b.y, c.x, c.y, p.x, p.y) &&
			area(p.prev, p, p.next) >= 0 {
			return false
		}
	}
	return true
}

func isEarHashed(ear *node, minX, minY, invSize float64) bool {
	a, b, c := ear.prev, ear, ear.next
	if area(a, b, c) >= 0 {
		return false
	}

	x0, y0, x1, y1 := triangleBBox(a, b, c)
	minZ := zOrder(x0, y0, minX, minY, invSize)
	maxZ := zOrder(x1, y1, minX, minY, invSize)

	blocks := func(p *node) bool {
		return p.x >= x0 && p.x <= x1 && p.y >= y0 && p.y <= y1 &&
			p != a && p != c &&
			pointInTriangle(a.x, a.y, b.x, b.y, c.x, c.y, p.x, p.y) &&
			area(p.prev, p, p.next) >= 0
	}

	p, n := ear.prevZ, ear.nextZ
	for p != nil && p.z >= minZ && n != nil && n.z <= maxZ {
		if blocks(p) {
			return false
		}
		p = p.prevZ
		if blocks(n) {
			return false
		}
		n = n.nextZ
	}
	for p != nil && p.z >= minZ {
		if blocks(p) {
			return false
		}
		p = p.prevZ
	}
	for n != nil && n.z <= maxZ {
		if blocks(n) {
			return false
		}
		n = n.nextZ
	}
	return true
}

// cureLocalIntersections clips the small self-intersections that remain
// after collinear and duplicate points are filtered.
func (ec *earcutter) cureLocalIntersections(start *node) *node {
	p := start
	for {
		a, b := p.prev, p.next.next

		if !equals(a, b) && intersects(a, p, p.next, b) && locallyInside(a, b) && locallyInside(b, a) {
			ec.tris = append(ec.tris, Triangle{a.i, p.i, b.i})
			removeNode(p)
			removeNode(p.next)
			p = b
			start = b
		}
		p = p.next
		if p == start {
			break
		}
	}
	return filterPoints(p, nil)
}

// splitEarcut splits the ring along a valid diagonal and triangulates both halves.
func (ec *earcutter) splitEarcut(start *node) {
	a := start
	for {
		for b := a.next.next; b != a.prev; b = b.next {
			if a.i != b.i && isValidDiagonal(a, b) {
				c := splitPolygon(a, b)

				a = filterPoints(a, a.next)
				c = filterPoints(c, c.next)

				ec.earcutLinked(a, 0)
				ec.earcutLinked(c, 0)
				return
			}
		}
		a = a.next
		if a == start {
			return
		}
	}
}

// eliminateHoles links every hole into the outer ring through a bridge edge,
// leftmost holes first.
func eliminateHoles(points []pointXY, holes [][]int, outerNode *node) *node {
	queue := make([]*node, 0, len(holes))
	for _, h := range holes {
		list := linkedList(points, h, false)
		if list == nil {
			continue
		}
		if list == list.next {
			list.steiner = true
		}
		queue = append(queue, getLeftmost(list))
	}

	sort.SliceStable(queue, func(i, j int) bool { return queue[i].x < queue[j].x })

	for _, h := range queue {
		outerNode = eliminateHole(h, outerNode)
	}
	return outerNode
}

func eliminateHole(hole, outerNode *node) *node {
	bridge := findHoleBridge(hole, outerNode)
	if bridge == nil {
		return outerNode
	}

	bridgeReverse := splitPolygon(bridge, hole)
	filterPoints(bridgeReverse, bridgeReverse.next)
	return filterPoints(bridge, bridge.next)
}

// findHoleBridge finds an outer ring vertex visible from the hole's leftmost point.
func findHoleBridge(hole, outerNode *node) *node {
	hx, hy := hole.x, hole.y
	qx := math.Inf(-1)
	var m *node

	// Segment intersected by a ray from the hole's leftmost point to the left.
	p := outerNode
	for {
		if hy <= p.y && hy >= p.next.y && p.next.y != p.y {
			x := p.x + (hy-p.y)*(p.next.x-p.x)/(p.next.y-p.y)
			if x <= hx && x > qx {
				qx = x
				if p.x < p.next.x {
					m = p
				} else {
					m = p.next
				}
				if x == hx {
					return m
				}
			}
		}
		p = p.next
		if p == outerNode {
			break
		}
	}

	if m == nil {
		return nil
	}

	// Look for points inside the triangle (hole point, intersection, endpoint);
	// the one with the smallest angle to the ray is the connection point.
	stop := m
	mx, my := m.x, m.y
	tanMin := math.Inf(1)

	p = m
	for {
		if hx >= p.x && p.x >= mx && hx != p.x {
			var ax, cx float64
			if hy < my {
				ax, cx = hx, qx
			} else {
				ax, cx = qx, hx
			}
			if pointInTriangle(ax, hy, mx, my, cx, hy, p.x, p.y) {
				tan := math.Abs(hy-p.y) / (hx - p.x)
				if locallyInside(p, hole) &&
					(tan < tanMin || (tan == tanMin && (p.x > m.x || (p.x == m.x && sectorContainsSector(m, p))))) {
					m = p
					tanMin = tan
				}
			}
		}
		p = p.next
		if p == stop {
			break
		}
	}
	return m
}

func sectorContainsSector(m, p *node) bool {
	return area(m.prev, m, p.prev) < 0 && area(p.next, m, m.next) < 0
}

func getLeftmost(start *node) *node {
	leftmost := start
	for p := start.next; p != start; p = p.next {
		if p.x < leftmost.x || (p.x == leftmost.x && p.y < leftmost.y) {
			leftmost = p
		}
	}
	return leftmost
}

// filterPoints removes duplicate and collinear points between start and end.
func filterPoints(start, end *node) *node {
	if start == nil {
		return nil
	}
	if end == nil {
		end = start
	}

	p := start
	for {
		again := false
		if !p.steiner && (equals(p, p.next) || area(p.prev, p, p.next) == 0) {
			removeNode(p)
			p = p.prev
			end = p
			if p == p.next {
				break
			}
			again = true
		} else {
			p = p.next
		}
		if !again && p == end {
			break
		}
	}
	return end
}

func isValidDiagonal(a, b *node) bool {
	if a.next.i == b.i || a.prev.i == b.i || intersectsPolygon(a, b) {
		return false
	}
	if locallyInside(a, b) && locallyInside(b, a) && middleInside(a, b) &&
		(area(a.prev, a, b.prev) != 0 || area(a, b.prev, b) != 0) {
		return true
	}
	return equals(a, b) && area(a.prev, a, a.next) > 0 && area(b.prev, b, b.next) > 0
}

func intersectsPolygon(a, b *node) bool {
	p := a
	for {
		if p.i != a.i && p.next.i != a.i && p.i != b.i && p.next.i != b.i &&
			intersects(p, p.next, a, b) {
			return true
		}
		p = p.next
		if p == a {
			return false
		}
	}
}

func locallyInside(a, b *node) bool {
	if area(a.prev, a, a.next) < 0 {
		return area(a, b, a.next) >= 0 && area(a, a.prev, b) >= 0
	}
	return area(a, b, a.prev) < 0 || area(a, a.next, b) < 0
}

func middleInside(a, b *node) bool {
	inside := false
	px, py := (a.x+b.x)/2, (a.y+b.y)/2

	p := a
	for {
		if (p.y > py) != (p.next.y > py) && p.next.y != p.y &&
			px < (p.next.x-p.x)*(py-p.y)/(p.next.y-p.y)+p.x {
			inside = !inside
		}
		p = p.next
		if p == a {
			return inside
		}
	}
}

// splitPolygon links a and b with a diagonal. If they belong to one ring it
// is split in two; if one is a hole it is merged into the other ring.
func splitPolygon(a, b *node) *node {
	a2 := &node{i: a.i, x: a.x, y: a.y}
	b2 := &node{i: b.i, x: b.x, y: b.y}
	an, bp := a.next, b.prev

	a.next = b
	b.prev = a

	a2.next = an
	an.prev = a2

	b2.next = a2
	a2.prev = b2

	bp.next = b2
	b2.prev = bp

	return b2
}

func insertNode(i int, p pointXY, last *node) *node {
	n := &node{i: i, x: p.x, y: p.y}
	if last == nil {
		n.prev = n
		n.next = n
	} else {
		n.next = last.next
		n.prev = last
		last.next.prev = n
		last.next = n
	}
	return n
}

func removeNode(p *node) {
	p.next.prev = p.prev
	p.prev.next = p.next

	if p.prevZ != nil {
		p.prevZ.nextZ = p.nextZ
	}
	if p.nextZ != nil {
		p.nextZ.prevZ = p.prevZ
	}
}

// indexCurve assigns z-order values and sorts the ring's z links.
func indexCurve(start *node, minX, minY, invSize float64) {
	p := start
	for {
		if p.z == 0 {
			p.z = zOrder(p.x, p.y, minX, minY, invSize)
		}
		p.prevZ = p.prev
		p.nextZ = p.next
		p = p.next
		if p == start {
			break
		}
	}

	p.prevZ.nextZ = nil
	p.prevZ = nil

	sortLinked(p)
}

// sortLinked is Simon Tatham's linked list merge sort on z.
func sortLinked(list *node) *node {
	inSize := 1
	for {
		p := list
		list = nil
		var tail *node
		numMerges := 0

		for p != nil {
			numMerges++
			q := p
			pSize := 0
			for i := 0; i < inSize; i++ {
				pSize++
				q = q.nextZ
				if q == nil {
					break
				}
			}
			qSize := inSize

			for pSize > 0 || (qSize > 0 && q != nil) {
				var e *node
				if pSize != 0 && (qSize == 0 || q == nil || p.z <= q.z) {
					e = p
					p = p.nextZ
					pSize--
				} else {
					e = q
					q = q.nextZ
					qSize--
				}

				if tail != nil {
					tail.nextZ = e
				} else {
					list = e
				}
				e.prevZ = tail
				tail = e
			}
			p = q
		}

		tail.nextZ = nil
		inSize *= 2

		if numMerges <= 1 {
			return list
		}
	}
}

// zOrder interleaves the bits of the scaled coordinates.
func zOrder(x, y, minX, minY, invSize float64) int32 {
	ix := int32((x - minX) * invSize)
	iy := int32((y - minY) * invSize)

	ix = (ix | (ix << 8)) & 0x00FF00FF
	ix = (ix | (ix << 4)) & 0x0F0F0F0F
	ix = (ix | (ix << 2)) & 0x33333333
	ix = (ix | (ix << 1)) & 0x55555555

	iy = (iy | (iy << 8)) & 0x00FF00FF
	iy = (iy | (iy << 4)) & 0x0F0F0F0F
	iy = (iy | (iy << 2)) & 0x33333333
	iy = (iy | (iy << 1)) & 0x55555555

	return ix | (iy << 1)
}

func triangleBBox(a, b, c *node) (x0, y0, x1, y1 float64) {
	x0 = math.Min(a.x, math.Min(b.x, c.x))
	y0 = math.Min(a.y, math.Min(b.y, c.y))
	x1 = math.Max(a.x, math.Max(b.x, c.x))
	y1 = math.Max(a.y, math.Max(b.y, c.y))
	return
}

func pointInTriangle(ax, ay, bx, by, cx, cy, px, py float64) bool {
	return (cx-px)*(ay-py) >= (ax-px)*(cy-py) &&
		(ax-px)*(by-py) >= (bx-px)*(ay-py) &&
		(bx-px)*(cy-py) >= (cx-px)*(by-py)
}

// area is twice the signed area of triangle pqr; negative when convex in ring order.
func area(p, q, r *node) float64 {
	return (q.y-p.y)*(r.x-q.x) - (q.x-p.x)*(r.y-q.y)
}

func equals(p, q *node) bool {
	return p.x == q.x && p.y == q.y
}

func intersects(p1, q1, p2, q2 *node) bool {
	o1 := sign(area(p1, q1, p2))
	o2 := sign(area(p1, q1, q2))
	o3 := sign(area(p2, q2, p1))
	o4 := sign(area(p2, q2, q1))

	if o1 != o2 && o3 != o4 {
		return true
	}
	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == 0 && onSegment(p1, q2, q1) {
		return true
	}
	if o3 == 0 && onSegment(p2, p1, q2) {
		return true
	}
	if o4 == 0 && onSegment(p2, q1, q2) {
		return true
	}
	return false
}

func onSegment(p, q, r *node) bool {
	return q.x <= math.Max(p.x, r.x) && q.x >= math.Min(p.x, r.x) &&
		q.y <= math.Max(p.y, r.y) && q.y >= math.Min(p.y, r.y)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func signedArea(points []pointXY, ring []int) float64 {
	sum := 0.0
	j := len(ring) - 1
	for i := range ring {
		pi, pj := points[ring[i]], points[ring[j]]
		sum += (pj.x - pi.x) * (pi.y + pj.y)
		j = i
	}
	return sum
}
