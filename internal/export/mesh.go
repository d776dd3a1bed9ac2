package export

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Faultbox/geoglobe/internal/engine/mesh"
)

// MeshMagic opens every mesh file.
const MeshMagic = "GMSH"

// MeshVersion is the current mesh file version.
const MeshVersion uint32 = 1

// ErrBadMesh is returned when a mesh file header cannot be read.
var ErrBadMesh = errors.New("not a mesh file")

// MeshHeader is the fixed-size header of a mesh file. It is followed by
// VertexCount*Stride vertex bytes and IndexCount*4 index bytes, all
// little-endian.
type MeshHeader struct {
	Version     uint32
	Stride      uint32
	VertexCount uint32
	IndexCount  uint32
}

// WriteMesh writes m to w in mesh file format.
func WriteMesh[V mesh.Vertex](w io.Writer, m *mesh.Mesh[V]) error {
	bw := bufio.NewWriter(w)

	hdr := MeshHeader{
		Version:     MeshVersion,
		Stride:      uint32(m.Stride()),
		VertexCount: uint32(len(m.Vertices)),
		IndexCount:  uint32(len(m.Indices)),
	}
	if _, err := bw.WriteString(MeshMagic); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, hdr); err != nil {
		return fmt.Errorf("writing mesh header: %w", err)
	}
	if _, err := bw.Write(m.VertexBytes()); err != nil {
		return fmt.Errorf("writing vertices: %w", err)
	}
	if _, err := bw.Write(m.IndexBytes()); err != nil {
		return fmt.Errorf("writing indices: %w", err)
	}
	return bw.Flush()
}

// ReadMeshHeader reads and checks the magic and header of a mesh file.
func ReadMeshHeader(r io.Reader) (MeshHeader, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return MeshHeader{}, fmt.Errorf("%w: %v", ErrBadMesh, err)
	}
	if string(magic[:]) != MeshMagic {
		return MeshHeader{}, fmt.Errorf("%w: magic %q", ErrBadMesh, magic[:])
	}

	var hdr MeshHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return MeshHeader{}, fmt.Errorf("%w: %v", ErrBadMesh, err)
	}
	if hdr.Version != MeshVersion {
		return MeshHeader{}, fmt.Errorf("%w: unsupported version %d", ErrBadMesh, hdr.Version)
	}
	return hdr, nil
}

// SaveMesh writes m to the file name inside the writer's directory.
func SaveMesh[V mesh.Vertex](w *Writer, name string, m *mesh.Mesh[V]) (string, error) {
	file, path, err := w.create(name)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := WriteMesh(file, m); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}
