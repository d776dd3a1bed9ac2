package feature

import (
	"errors"
	"testing"

	"github.com/golang/geo/r2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/geoglobe/pkg/geojson"
	"github.com/Faultbox/geoglobe/pkg/triangulate"
)

func named(name any, geom geojson.Geometry) geojson.Feature {
	return geojson.Feature{
		Properties: map[string]any{geojson.DefaultNameProperty: name},
		Geometry:   geom,
	}
}

func multi(polys ...geojson.Polygon) geojson.MultiPolygon {
	return geojson.MultiPolygon(polys)
}

// fanTriangulator fans every outer contour from its first point and records
// the calls it receives.
type fanTriangulator struct {
	calls int
}

func (f *fanTriangulator) Triangulate(points []r2.Point, contours [][]int) ([]triangulate.Triangle, error) {
	f.calls++
	outer := contours[0]
	n := len(outer) - 1
	tris := make([]triangulate.Triangle, 0, n-2)
	for i := 1; i+1 < n; i++ {
		tris = append(tris, triangulate.Triangle{outer[0], outer[i], outer[i+1]})
	}
	return tris, nil
}

func TestBuildMeshNamedAndUnnamed(t *testing.T) {
	ring := geojson.Ring{{0, 0}, {10, 0}, {10, 10}, {5, 15}, {0, 0}}
	features := []geojson.Feature{
		named("A", multi(geojson.Polygon{ring})),
		named(nil, multi(geojson.Polygon{ring})),
	}

	tri := &fanTriangulator{}
	m, report := BuildMesh(features, BuildOptions{Radius: 50, Triangulator: tri})

	if tri.calls != 1 {
		t.Errorf("triangulator called %d times, want 1", tri.calls)
	}
	if len(m.Vertices) != 4 {
		t.Fatalf("len(Vertices) = %d, want 4", len(m.Vertices))
	}
	if len(m.Indices) != 6 {
		t.Fatalf("len(Indices) = %d, want 6", len(m.Indices))
	}

	want := Normalize(ColorFor("A"))
	for i, v := range m.Vertices {
		if v.Color != want {
			t.Errorf("vertex %d color = %v, want %v", i, v.Color, want)
		}
	}
	if report.Features != 2 || report.Unnamed != 1 || report.Polygons != 1 {
		t.Errorf("report = %+v, want 2 features, 1 unnamed, 1 polygon", report)
	}
	if report.Err() != nil {
		t.Errorf("report.Err() = %v, want nil", report.Err())
	}
}

func TestBuildMeshMissingNameContributesNothing(t *testing.T) {
	ring := square(0, 0, 5)
	features := []geojson.Feature{
		{Geometry: multi(geojson.Polygon{ring})},
		{Properties: map[string]any{"OTHER": "x"}, Geometry: multi(geojson.Polygon{ring})},
	}

	m, report := BuildMesh(features, BuildOptions{Radius: 1})
	if len(m.Vertices) != 0 || len(m.Indices) != 0 {
		t.Errorf("mesh has %d vertices, %d indices, want none", len(m.Vertices), len(m.Indices))
	}
	if report.Unnamed != 2 {
		t.Errorf("report.Unnamed = %d, want 2", report.Unnamed)
	}
	if !m.Bounds.IsEmpty() {
		t.Errorf("empty mesh bounds = %+v", m.Bounds)
	}
}

func TestBuildMeshInvalidOuterRingIsLocal(t *testing.T) {
	short := geojson.Ring{{0, 0}, {1, 0}, {0, 1}, {0, 0}}
	features := []geojson.Feature{
		named("Broken", multi(geojson.Polygon{short}, geojson.Polygon{square(20, 20, 2)})),
		named("Fine", multi(geojson.Polygon{square(-40, 10, 3)})),
	}

	m, report := BuildMesh(features, BuildOptions{Radius: 100})

	if len(m.Vertices) != 8 {
		t.Fatalf("len(Vertices) = %d, want 8 from the two valid squares", len(m.Vertices))
	}
	if len(m.Indices) != 12 {
		t.Fatalf("len(Indices) = %d, want 12", len(m.Indices))
	}
	for _, idx := range m.Indices[6:] {
		if idx < 4 {
			t.Errorf("second polygon index %d not offset past first polygon", idx)
		}
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Errorf("index %d out of range", idx)
		}
	}

	if report.Polygons != 2 || report.PolygonsSkipped != 1 {
		t.Errorf("report = %+v, want 2 polygons, 1 skipped", report)
	}
	skipped := report.Skipped()
	if len(skipped) != 1 {
		t.Fatalf("Skipped() = %v, want one error", skipped)
	}
	var se *SkipError
	if !errors.As(skipped[0], &se) || se.Feature != "Broken" || se.Polygon != 0 {
		t.Errorf("skip = %v, want Broken polygon 0", skipped[0])
	}
	if !errors.Is(report.Err(), ErrDegenerateRing) {
		t.Errorf("report.Err() = %v, want ErrDegenerateRing", report.Err())
	}
}

func TestBuildMeshTriangulationFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	failing := TriangulatorFunc(func([]r2.Point, [][]int) ([]triangulate.Triangle, error) {
		return nil, triangulate.ErrSelfIntersection
	})

	features := []geojson.Feature{named("Knot", multi(geojson.Polygon{square(0, 0, 1)}))}
	m, report := BuildMesh(features, BuildOptions{Radius: 1, Triangulator: failing, Logger: zap.New(core)})

	if len(m.Vertices) != 0 {
		t.Errorf("len(Vertices) = %d, want 0", len(m.Vertices))
	}
	if !errors.Is(report.Err(), triangulate.ErrSelfIntersection) {
		t.Errorf("report.Err() = %v, want ErrSelfIntersection", report.Err())
	}

	entries := logs.FilterMessage("skipping polygon").All()
	if len(entries) != 1 {
		t.Fatalf("got %d skip log entries, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["feature"]; got != "Knot" {
		t.Errorf("logged feature = %v, want Knot", got)
	}
}

func TestBuildMeshIgnoresOtherGeometry(t *testing.T) {
	features := []geojson.Feature{
		named("Point", geojson.Point{1, 2}),
		named("Line", geojson.LineString{{0, 0}, {1, 1}}),
		named("Poly", geojson.Polygon{square(0, 0, 1)}),
		named("Nothing", nil),
	}

	tri := &fanTriangulator{}
	m, report := BuildMesh(features, BuildOptions{Radius: 1, Triangulator: tri})
	if len(m.Vertices) != 0 || tri.calls != 0 {
		t.Errorf("non multi-polygon geometry produced %d vertices, %d calls", len(m.Vertices), tri.calls)
	}
	if report.Ignored != 4 {
		t.Errorf("report.Ignored = %d, want 4", report.Ignored)
	}
	if report.Err() != nil {
		t.Errorf("ignored geometry reported errors: %v", report.Err())
	}
}

func TestBuildMeshWithHole(t *testing.T) {
	poly := geojson.Polygon{square(0, 0, 10), square(0, 0, 2)}
	features := []geojson.Feature{named("Ring", multi(poly))}

	m, report := BuildMesh(features, BuildOptions{Radius: 10})
	if len(m.Vertices) != 8 {
		t.Fatalf("len(Vertices) = %d, want 8", len(m.Vertices))
	}
	if got := len(m.Indices) / 3; got != 8 {
		t.Errorf("triangles = %d, want 8", got)
	}
	if report.Triangles != 8 {
		t.Errorf("report.Triangles = %d, want 8", report.Triangles)
	}
	if m.Bounds.IsEmpty() {
		t.Error("bounds not computed")
	}
}

func TestBuildMeshNameProperty(t *testing.T) {
	features := []geojson.Feature{
		{Properties: map[string]any{"ADMIN": "Chile"}, Geometry: multi(geojson.Polygon{square(-70, -30, 2)})},
	}

	m, _ := BuildMesh(features, BuildOptions{Radius: 1, NameProperty: "ADMIN"})
	if len(m.Vertices) != 4 {
		t.Fatalf("len(Vertices) = %d, want 4", len(m.Vertices))
	}
	if want := Normalize(ColorFor("Chile")); m.Vertices[0].Color != want {
		t.Errorf("color = %v, want %v", m.Vertices[0].Color, want)
	}
}
