package mesh

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestStride(t *testing.T) {
	if got := (&Mesh[GlobeVertex]{}).Stride(); got != 12 {
		t.Errorf("globe stride = %d, want 12", got)
	}
	if got := (&Mesh[FeatureVertex]{}).Stride(); got != 24 {
		t.Errorf("feature stride = %d, want 24", got)
	}
}

func TestVertexBytesFeatureLayout(t *testing.T) {
	m := &Mesh[FeatureVertex]{
		Vertices: []FeatureVertex{
			{Position: [3]float32{1, 2, 3}, Color: [3]float32{0.25, 0.5, 1}},
			{Position: [3]float32{-1, -2, -3}, Color: [3]float32{0, 0, 0}},
		},
	}

	buf := m.VertexBytes()
	if len(buf) != 48 {
		t.Fatalf("expected 48 bytes, got %d", len(buf))
	}

	want := []float32{1, 2, 3, 0.25, 0.5, 1, -1, -2, -3, 0, 0, 0}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if got != w {
			t.Errorf("float %d = %v, want %v", i, got, w)
		}
	}
}

func TestIndexBytes(t *testing.T) {
	m := &Mesh[GlobeVertex]{Indices: []uint32{0, 1, 2, 2, 1, 70000}}

	buf := m.IndexBytes()
	if len(buf) != 24 {
		t.Fatalf("expected 24 bytes, got %d", len(buf))
	}
	if got := binary.LittleEndian.Uint32(buf[20:]); got != 70000 {
		t.Errorf("last index = %d, want 70000", got)
	}
	if m.TriangleCount() != 2 {
		t.Errorf("expected 2 triangles, got %d", m.TriangleCount())
	}
}

func TestBoundsExtend(t *testing.T) {
	b := EmptyBounds()
	if !b.IsEmpty() {
		t.Fatal("expected fresh bounds to be empty")
	}

	b.Extend([3]float32{1, -2, 3})
	b.Extend([3]float32{-1, 5, 0})

	if b.IsEmpty() {
		t.Fatal("expected bounds to be non-empty")
	}
	if b.Min != [3]float32{-1, -2, 0} {
		t.Errorf("min = %v", b.Min)
	}
	if b.Max != [3]float32{1, 5, 3} {
		t.Errorf("max = %v", b.Max)
	}
}
