package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/geoglobe/internal/export"
)

// inspectMesh prints the header of an exported mesh file.
func inspectMesh(out io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	hdr, err := export.ReadMeshHeader(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprintf(out, "File:      %s\n", path)
	fmt.Fprintf(out, "Version:   %d\n", hdr.Version)
	fmt.Fprintf(out, "Stride:    %d bytes\n", hdr.Stride)
	fmt.Fprintf(out, "Vertices:  %d\n", hdr.VertexCount)
	fmt.Fprintf(out, "Indices:   %d (%d triangles)\n", hdr.IndexCount, hdr.IndexCount/3)
	return nil
}
