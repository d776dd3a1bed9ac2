// Package globe builds the UV-sphere mesh the basemap texture is wrapped around.
package globe

import (
	"errors"
	"fmt"
	"math"

	"github.com/Faultbox/geoglobe/internal/engine/mesh"
)

// ErrInvalidParams is returned when sphere parameters cannot produce a closed mesh.
var ErrInvalidParams = errors.New("invalid sphere parameters")

// Minimum subdivisions for a closed sphere.
const (
	MinSlices = 3
	MinStacks = 2
)

// SphereParams are validated sphere subdivision parameters.
// The zero value is not usable; construct with NewSphereParams.
type SphereParams struct {
	slices uint32
	stacks uint32
	radius float32
}

// NewSphereParams validates and returns sphere parameters.
func NewSphereParams(slices, stacks uint32, radius float32) (SphereParams, error) {
	if slices < MinSlices {
		return SphereParams{}, fmt.Errorf("%w: slices %d < %d", ErrInvalidParams, slices, MinSlices)
	}
	if stacks < MinStacks {
		return SphereParams{}, fmt.Errorf("%w: stacks %d < %d", ErrInvalidParams, stacks, MinStacks)
	}
	if !(radius > 0) || math.IsInf(float64(radius), 0) {
		return SphereParams{}, fmt.Errorf("%w: radius %v must be positive", ErrInvalidParams, radius)
	}
	return SphereParams{slices: slices, stacks: stacks, radius: radius}, nil
}

// Slices returns the number of longitude subdivisions.
func (p SphereParams) Slices() uint32 { return p.slices }

// Stacks returns the number of latitude subdivisions.
func (p SphereParams) Stacks() uint32 { return p.stacks }

// Radius returns the sphere radius.
func (p SphereParams) Radius() float32 { return p.radius }

// VertexCount returns the number of vertices BuildSphere produces.
func (p SphereParams) VertexCount() int {
	return int(p.slices*(p.stacks-1) + 2)
}

// IndexCount returns the number of indices BuildSphere produces.
func (p SphereParams) IndexCount() int {
	return int(6*p.slices*(p.stacks-2) + 6*p.slices)
}

// BuildSphere creates a UV sphere centered on the origin.
//
// Vertex 0 is the north pole (+Y), followed by stacks-1 rings of slices
// vertices from north to south, and the south pole last. Pole fans and the
// quad strips share one winding order.
func BuildSphere(p SphereParams) *mesh.Mesh[mesh.GlobeVertex] {
	if p.slices < MinSlices || p.stacks < MinStacks {
		panic("globe: BuildSphere called with unvalidated SphereParams")
	}

	slices, stacks, r := p.slices, p.stacks, p.radius

	vertices := make([]mesh.GlobeVertex, 0, p.VertexCount())
	vertices = append(vertices, mesh.GlobeVertex{Position: [3]float32{0, r, 0}})

	for i := uint32(0); i < stacks-1; i++ {
		phi := math.Pi * float64(i+1) / float64(stacks)
		sinPhi, cosPhi := math.Sincos(phi)

		for j := uint32(0); j < slices; j++ {
			theta := 2 * math.Pi * float64(j) / float64(slices)
			sinTheta, cosTheta := math.Sincos(theta)

			vertices = append(vertices, mesh.GlobeVertex{Position: [3]float32{
				float32(sinPhi*cosTheta) * r,
				float32(cosPhi) * r,
				float32(sinPhi*sinTheta) * r,
			}})
		}
	}

	vertices = append(vertices, mesh.GlobeVertex{Position: [3]float32{0, -r, 0}})

	north := uint32(0)
	south := uint32(len(vertices) - 1)
	lastBand := slices*(stacks-2) + 1

	indices := make([]uint32, 0, p.IndexCount())

	// Pole fans
	for i := uint32(0); i < slices; i++ {
		next := (i + 1) % slices
		indices = append(indices, north, next+1, i+1)
		indices = append(indices, south, lastBand+i, lastBand+next)
	}

	// Quad strips between consecutive rings
	for j := uint32(0); j < stacks-2; j++ {
		j0 := j*slices + 1
		j1 := (j+1)*slices + 1

		for i := uint32(0); i < slices; i++ {
			next := (i + 1) % slices
			i0 := j0 + i
			i1 := j0 + next
			i2 := j1 + next
			i3 := j1 + i

			indices = append(indices, i3, i0, i1, i1, i2, i3)
		}
	}

	return &mesh.Mesh[mesh.GlobeVertex]{
		Vertices: vertices,
		Indices:  indices,
		Bounds:   bounds(vertices),
	}
}

func bounds(vertices []mesh.GlobeVertex) mesh.Bounds {
	b := mesh.EmptyBounds()
	for _, v := range vertices {
		b.Extend(v.Position)
	}
	return b
}
