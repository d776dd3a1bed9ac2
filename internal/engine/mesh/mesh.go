// Package mesh provides the vertex and index containers shared by the globe and
// feature mesh builders, plus their GPU-ready byte encoding.
package mesh

import (
	"encoding/binary"
	"math"
)

// GlobeVertex is a position-only vertex of the base sphere.
type GlobeVertex struct {
	Position [3]float32
}

// FeatureVertex is a vertex of the feature overlay with a per-feature color.
type FeatureVertex struct {
	Position [3]float32
	Color    [3]float32
}

// Vertex is implemented by every vertex type a Mesh can hold.
type Vertex interface {
	GlobeVertex | FeatureVertex
}

// Mesh holds triangle-list geometry ready for GPU upload.
// Indices are grouped in triangles (stride 3).
type Mesh[V Vertex] struct {
	Vertices []V
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// EmptyBounds returns bounds that any point will expand.
func EmptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Extend grows the bounds to include p.
func (b *Bounds) Extend(p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// IsEmpty reports whether no point was ever added.
func (b Bounds) IsEmpty() bool {
	return b.Min[0] > b.Max[0]
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh[V]) TriangleCount() int {
	return len(m.Indices) / 3
}

// Stride returns the size of one encoded vertex in bytes.
func (m *Mesh[V]) Stride() int {
	var v V
	switch any(v).(type) {
	case FeatureVertex:
		return 24
	default:
		return 12
	}
}

// VertexBytes encodes the vertices as tightly packed little-endian float32s,
// position first, then color for feature vertices.
func (m *Mesh[V]) VertexBytes() []byte {
	stride := m.Stride()
	buf := make([]byte, len(m.Vertices)*stride)

	off := 0
	for i := range m.Vertices {
		switch v := any(m.Vertices[i]).(type) {
		case GlobeVertex:
			off = putFloats(buf, off, v.Position[:])
		case FeatureVertex:
			off = putFloats(buf, off, v.Position[:])
			off = putFloats(buf, off, v.Color[:])
		}
	}
	return buf
}

// IndexBytes encodes the indices as little-endian uint32s.
func (m *Mesh[V]) IndexBytes() []byte {
	buf := make([]byte, len(m.Indices)*4)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

func putFloats(buf []byte, off int, fs []float32) int {
	for _, f := range fs {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
		off += 4
	}
	return off
}
