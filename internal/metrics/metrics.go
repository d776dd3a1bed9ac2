// Package metrics collects pipeline counters and writes them in the
// Prometheus text format for the node exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Faultbox/geoglobe/internal/engine/basemap"
	"github.com/Faultbox/geoglobe/internal/engine/feature"
)

// Registry holds every pipeline metric. It is separate from the default
// registry so textfile dumps carry no Go runtime series.
var Registry = prometheus.NewRegistry()

var (
	FeaturesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geoglobe_features_total",
		Help: "Features seen by the feature mesh builder, by outcome",
	}, []string{"outcome"})
	PolygonsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geoglobe_polygons_total",
		Help: "Polygons handled by the feature mesh builder, by outcome",
	}, []string{"outcome"})
	RingsSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geoglobe_rings_skipped_total",
		Help: "Invalid holes dropped from otherwise valid polygons",
	})
	BasemapRegionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geoglobe_basemap_regions_total",
		Help: "Outer rings handled by the basemap rasterizer, by outcome",
	}, []string{"outcome"})
	MeshVertices = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "geoglobe_mesh_vertices",
		Help: "Vertex count of the last built mesh",
	}, []string{"mesh"})
	MeshTriangles = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "geoglobe_mesh_triangles",
		Help: "Triangle count of the last built mesh",
	}, []string{"mesh"})
	StageDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geoglobe_stage_duration_ms",
		Help:    "Pipeline stage duration in milliseconds",
		Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 20000},
	}, []string{"stage"})
)

func init() {
	Registry.MustRegister(FeaturesTotal)
	Registry.MustRegister(PolygonsTotal)
	Registry.MustRegister(RingsSkippedTotal)
	Registry.MustRegister(BasemapRegionsTotal)
	Registry.MustRegister(MeshVertices)
	Registry.MustRegister(MeshTriangles)
	Registry.MustRegister(StageDurationMs)
}

// ObserveStage records the time since start for stage.
func ObserveStage(stage string, start time.Time) {
	StageDurationMs.WithLabelValues(stage).Observe(float64(time.Since(start).Microseconds()) / 1000)
}

// RecordMesh sets the size gauges for a named mesh.
func RecordMesh(name string, vertices, triangles int) {
	MeshVertices.WithLabelValues(name).Set(float64(vertices))
	MeshTriangles.WithLabelValues(name).Set(float64(triangles))
}

// RecordFeatures adds a feature mesh build report to the counters.
func RecordFeatures(r *feature.Report) {
	built := r.Features - r.Unnamed - r.Ignored
	FeaturesTotal.WithLabelValues("eligible").Add(float64(built))
	FeaturesTotal.WithLabelValues("unnamed").Add(float64(r.Unnamed))
	FeaturesTotal.WithLabelValues("ignored").Add(float64(r.Ignored))

	PolygonsTotal.WithLabelValues("triangulated").Add(float64(r.Polygons))
	PolygonsTotal.WithLabelValues("skipped").Add(float64(r.PolygonsSkipped))
	RingsSkippedTotal.Add(float64(r.RingsSkipped))
}

// RecordBasemap adds a rasterizer report to the counters.
func RecordBasemap(r basemap.DrawReport) {
	BasemapRegionsTotal.WithLabelValues("drawn").Add(float64(r.Drawn))
	BasemapRegionsTotal.WithLabelValues("collapsed").Add(float64(r.Collapsed))
}

// WriteTextfile writes every metric to path atomically.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
