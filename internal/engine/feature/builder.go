package feature

import (
	"fmt"

	"github.com/golang/geo/r2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/geoglobe/internal/engine/mesh"
	"github.com/Faultbox/geoglobe/internal/logger"
	"github.com/Faultbox/geoglobe/pkg/geojson"
	"github.com/Faultbox/geoglobe/pkg/triangulate"
)

// Triangulator triangulates an assembled polygon with holes.
type Triangulator interface {
	Triangulate(points []r2.Point, contours [][]int) ([]triangulate.Triangle, error)
}

// TriangulatorFunc adapts a function to the Triangulator interface.
type TriangulatorFunc func(points []r2.Point, contours [][]int) ([]triangulate.Triangle, error)

// Triangulate implements Triangulator.
func (f TriangulatorFunc) Triangulate(points []r2.Point, contours [][]int) ([]triangulate.Triangle, error) {
	return f(points, contours)
}

// BuildOptions contains options for feature mesh building.
type BuildOptions struct {
	// Radius is the globe radius; vertices are placed at Radius+SurfaceOffset.
	Radius float32
	// NameProperty is the property naming a feature. Defaults to "NAME".
	NameProperty string
	// Triangulator defaults to triangulate.Triangulate.
	Triangulator Triangulator
	// Colors defaults to HashColors.
	Colors ColorAssigner
	// Logger defaults to the global logger named "features".
	Logger *zap.Logger
}

func (o BuildOptions) withDefaults() BuildOptions {
	if o.NameProperty == "" {
		o.NameProperty = geojson.DefaultNameProperty
	}
	if o.Triangulator == nil {
		o.Triangulator = TriangulatorFunc(triangulate.Triangulate)
	}
	if o.Colors == nil {
		o.Colors = HashColors{}
	}
	if o.Logger == nil {
		o.Logger = logger.Named("features")
	}
	return o
}

// BuildMesh triangulates every named multi-polygon feature and combines the
// results into one mesh. Features, polygons and rings that cannot be used are
// logged, counted in the report and skipped; they never fail the build.
func BuildMesh(features []geojson.Feature, opts BuildOptions) (*mesh.Mesh[mesh.FeatureVertex], *Report) {
	opts = opts.withDefaults()
	log := opts.Logger

	m := &mesh.Mesh[mesh.FeatureVertex]{Bounds: mesh.EmptyBounds()}
	report := &Report{}

	for fi := range features {
		f := &features[fi]
		report.Features++

		name, ok := f.Name(opts.NameProperty)
		if !ok {
			report.Unnamed++
			log.Debug("skipping unnamed feature", zap.Int("index", fi))
			continue
		}

		switch g := f.Geometry.(type) {
		case geojson.MultiPolygon:
			color := Normalize(opts.Colors.ColorFor(name))
			for pi, rings := range g {
				appendPolygon(m, report, log, opts, name, pi, rings, color)
			}
		case nil:
			report.Ignored++
		case geojson.Point, geojson.MultiPoint, geojson.LineString, geojson.MultiLineString,
			geojson.Polygon, geojson.GeometryCollection:
			report.Ignored++
		}
	}

	log.Info("feature mesh built",
		zap.Int("features", report.Features),
		zap.Int("polygons", report.Polygons),
		zap.Int("polygonsSkipped", report.PolygonsSkipped),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", m.TriangleCount()),
	)

	return m, report
}

func appendPolygon(m *mesh.Mesh[mesh.FeatureVertex], report *Report, log *zap.Logger,
	opts BuildOptions, name string, pi int, rings geojson.Polygon, color [3]float32) {

	poly, skipped, err := AssemblePolygon(rings)
	for _, holeErr := range skipped {
		report.RingsSkipped++
		log.Debug("skipping hole", zap.String("feature", name), zap.Int("polygon", pi), zap.Error(holeErr))
	}
	if err != nil {
		report.skip(name, pi, err)
		log.Info("skipping polygon", zap.String("feature", name), zap.Int("polygon", pi), zap.Error(err))
		return
	}

	tris, err := opts.Triangulator.Triangulate(poly.Points, poly.Contours)
	if err != nil {
		report.skip(name, pi, err)
		log.Info("skipping polygon", zap.String("feature", name), zap.Int("polygon", pi), zap.Error(err))
		return
	}

	offset := uint32(len(m.Vertices))
	for _, p := range poly.Points {
		pos := Project(p, opts.Radius).Array()
		m.Vertices = append(m.Vertices, mesh.FeatureVertex{Position: pos, Color: color})
		m.Bounds.Extend(pos)
	}
	for _, t := range tris {
		m.Indices = append(m.Indices,
			uint32(t[0])+offset,
			uint32(t[1])+offset,
			uint32(t[2])+offset,
		)
	}

	report.Polygons++
	report.Triangles += len(tris)
}

// Report summarizes a feature mesh build.
type Report struct {
	Features        int // features seen
	Unnamed         int // features without a usable name
	Ignored         int // named features whose geometry is not a multi-polygon
	Polygons        int // polygons triangulated
	PolygonsSkipped int // polygons dropped for a bad outer ring or failed triangulation
	RingsSkipped    int // holes dropped from otherwise valid polygons
	Triangles       int

	errs error
}

func (r *Report) skip(name string, polygon int, err error) {
	r.PolygonsSkipped++
	r.errs = multierr.Append(r.errs, &SkipError{Feature: name, Polygon: polygon, Err: err})
}

// Err returns every polygon skip combined, or nil when nothing was skipped.
func (r *Report) Err() error {
	return r.errs
}

// Skipped returns the individual polygon skips.
func (r *Report) Skipped() []error {
	return multierr.Errors(r.errs)
}

// SkipError records why one polygon of a feature was left out.
type SkipError struct {
	Feature string
	Polygon int
	Err     error
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("feature %q polygon %d: %v", e.Feature, e.Polygon, e.Err)
}

func (e *SkipError) Unwrap() error {
	return e.Err
}
