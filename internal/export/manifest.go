package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Faultbox/geoglobe/internal/engine/mesh"
)

// ManifestName is the file name of the manifest.
const ManifestName = "manifest.json"

// Manifest describes one export run.
type Manifest struct {
	Created  time.Time      `json:"created"`
	Basemap  *ImageEntry    `json:"basemap,omitempty"`
	Globe    *MeshEntry     `json:"globe,omitempty"`
	Features *MeshEntry     `json:"features,omitempty"`
	Config   string         `json:"config,omitempty"`
	Params   map[string]any `json:"params,omitempty"`
}

// ImageEntry describes an exported image.
type ImageEntry struct {
	File   string `json:"file"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// MeshEntry describes an exported mesh.
type MeshEntry struct {
	File      string     `json:"file"`
	Stride    int        `json:"stride"`
	Vertices  int        `json:"vertices"`
	Triangles int        `json:"triangles"`
	BoundsMin [3]float32 `json:"boundsMin"`
	BoundsMax [3]float32 `json:"boundsMax"`
}

// NewMeshEntry summarizes m as written to file.
func NewMeshEntry[V mesh.Vertex](file string, m *mesh.Mesh[V]) *MeshEntry {
	e := &MeshEntry{
		File:      file,
		Stride:    m.Stride(),
		Vertices:  len(m.Vertices),
		Triangles: m.TriangleCount(),
	}
	if !m.Bounds.IsEmpty() {
		e.BoundsMin = m.Bounds.Min
		e.BoundsMax = m.Bounds.Max
	}
	return e
}

// WriteManifest writes m as indented JSON to ManifestName.
func (w *Writer) WriteManifest(m Manifest) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding manifest: %w", err)
	}

	file, path, err := w.create(ManifestName)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := file.Write(append(data, '\n')); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}
