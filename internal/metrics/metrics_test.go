package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Faultbox/geoglobe/internal/engine/basemap"
	"github.com/Faultbox/geoglobe/internal/engine/feature"
)

func TestRecordFeatures(t *testing.T) {
	before := testutil.ToFloat64(PolygonsTotal.WithLabelValues("skipped"))
	unnamed := testutil.ToFloat64(FeaturesTotal.WithLabelValues("unnamed"))

	RecordFeatures(&feature.Report{Features: 5, Unnamed: 1, Ignored: 1, Polygons: 4, PolygonsSkipped: 2, RingsSkipped: 1})

	if got := testutil.ToFloat64(PolygonsTotal.WithLabelValues("skipped")) - before; got != 2 {
		t.Errorf("skipped polygons delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(FeaturesTotal.WithLabelValues("unnamed")) - unnamed; got != 1 {
		t.Errorf("unnamed delta = %v, want 1", got)
	}
}

func TestRecordBasemapAndMesh(t *testing.T) {
	before := testutil.ToFloat64(BasemapRegionsTotal.WithLabelValues("drawn"))
	RecordBasemap(basemap.DrawReport{Drawn: 3, Collapsed: 1})
	if got := testutil.ToFloat64(BasemapRegionsTotal.WithLabelValues("drawn")) - before; got != 3 {
		t.Errorf("drawn delta = %v, want 3", got)
	}

	RecordMesh("globe", 9802, 19800)
	if got := testutil.ToFloat64(MeshVertices.WithLabelValues("globe")); got != 9802 {
		t.Errorf("globe vertices = %v, want 9802", got)
	}
	if got := testutil.ToFloat64(MeshTriangles.WithLabelValues("globe")); got != 19800 {
		t.Errorf("globe triangles = %v, want 19800", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	ObserveStage("globe", time.Now().Add(-5*time.Millisecond))
	RecordMesh("features", 10, 4)

	path := filepath.Join(t.TempDir(), "geoglobe.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{
		"geoglobe_stage_duration_ms_count{stage=\"globe\"}",
		"geoglobe_mesh_vertices{mesh=\"features\"} 10",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("textfile missing %q", want)
		}
	}
	if strings.Contains(text, "go_goroutines") {
		t.Error("textfile should not contain runtime metrics")
	}
}
