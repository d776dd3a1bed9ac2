package main

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/geoglobe/internal/assets"
	"github.com/Faultbox/geoglobe/internal/config"
	"github.com/Faultbox/geoglobe/internal/engine/basemap"
	"github.com/Faultbox/geoglobe/internal/engine/feature"
	"github.com/Faultbox/geoglobe/internal/engine/globe"
	"github.com/Faultbox/geoglobe/internal/engine/mesh"
	"github.com/Faultbox/geoglobe/internal/export"
	"github.com/Faultbox/geoglobe/internal/logger"
	"github.com/Faultbox/geoglobe/internal/metrics"
	"github.com/Faultbox/geoglobe/pkg/geojson"
)

// Artifact file names inside the output directory.
const (
	basemapFile  = "basemap.png"
	globeFile    = "globe.mesh"
	featuresFile = "features.mesh"
	configFile   = "config.yaml"
)

// bakeResult summarizes one run.
type bakeResult struct {
	Manifest string
	Globe    *mesh.Mesh[mesh.GlobeVertex]
	Overlay  *mesh.Mesh[mesh.FeatureVertex]
	Basemap  *basemap.Basemap
	Features *feature.Report
	Drawn    basemap.DrawReport
}

// bake runs the three pipelines and writes their artifacts. Only an invalid
// sphere, unreadable inputs or an undecodable base image fail the run.
func bake(cfg *config.Config, mgr *assets.Manager) (*bakeResult, error) {
	log := logger.Named("bake")
	res := &bakeResult{}

	params, err := globe.NewSphereParams(cfg.Globe.Slices, cfg.Globe.Stacks, cfg.Globe.Radius)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res.Globe = globe.BuildSphere(params)
	metrics.ObserveStage("globe", start)
	metrics.RecordMesh("globe", len(res.Globe.Vertices), res.Globe.TriangleCount())
	log.Info("globe mesh built",
		zap.Int("vertices", len(res.Globe.Vertices)),
		zap.Int("triangles", res.Globe.TriangleCount()),
	)

	fc, err := loadFeatures(mgr, cfg.Features.Path)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	res.Overlay, res.Features = feature.BuildMesh(fc.Features, feature.BuildOptions{
		Radius:       cfg.Globe.Radius,
		NameProperty: cfg.Features.NameProperty,
	})
	metrics.ObserveStage("features", start)
	metrics.RecordFeatures(res.Features)
	metrics.RecordMesh("features", len(res.Overlay.Vertices), res.Overlay.TriangleCount())
	if err := res.Features.Err(); err != nil {
		log.Debug("feature polygons skipped", zap.Error(err))
	}

	data, err := mgr.Load(cfg.Basemap.Path)
	if err != nil {
		return nil, fmt.Errorf("loading basemap: %w", err)
	}

	start = time.Now()
	res.Basemap, err = basemap.Decode(data, basemap.Padding{
		Width:  cfg.Basemap.PaddingWidth,
		Height: cfg.Basemap.PaddingHeight,
	})
	if err != nil {
		return nil, err
	}
	res.Drawn = res.Basemap.DrawFeatures(fc.Features, basemap.DrawOptions{
		NameProperty:    cfg.Features.NameProperty,
		Colors:          basemap.NewColorSource(cfg.Basemap.Seed),
		FillAllPolygons: cfg.Basemap.FillAllPolygons,
	})
	metrics.ObserveStage("basemap", start)
	metrics.RecordBasemap(res.Drawn)

	start = time.Now()
	res.Manifest, err = writeArtifacts(cfg, res)
	if err != nil {
		return nil, err
	}
	metrics.ObserveStage("export", start)

	return res, nil
}

// openAssets builds the asset manager from the configured roots. Roots that
// are missing or not directories are logged and left out.
func openAssets(roots []string) *assets.Manager {
	log := logger.Named("assets")
	mgr := assets.NewManager()
	for _, root := range roots {
		if err := mgr.AddRoot(root); err != nil {
			log.Warn("ignoring asset root", zap.String("root", root), zap.Error(err))
		}
	}
	return mgr
}

func loadFeatures(mgr *assets.Manager, name string) (*geojson.FeatureCollection, error) {
	data, err := mgr.Load(name)
	if err != nil {
		return nil, fmt.Errorf("loading features: %w", err)
	}
	fc, err := geojson.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return fc, nil
}

func writeArtifacts(cfg *config.Config, res *bakeResult) (string, error) {
	w := export.NewWriter(cfg.Output.Dir)

	if _, err := w.WritePixels(basemapFile, res.Basemap.Bytes(), res.Basemap.Width, res.Basemap.Height); err != nil {
		return "", fmt.Errorf("writing basemap: %w", err)
	}
	if _, err := export.SaveMesh(w, globeFile, res.Globe); err != nil {
		return "", fmt.Errorf("writing globe mesh: %w", err)
	}
	if _, err := export.SaveMesh(w, featuresFile, res.Overlay); err != nil {
		return "", fmt.Errorf("writing feature mesh: %w", err)
	}
	if err := cfg.SaveTo(filepath.Join(w.Dir(), configFile)); err != nil {
		return "", fmt.Errorf("writing effective config: %w", err)
	}

	return w.WriteManifest(export.Manifest{
		Created:  time.Now().UTC(),
		Basemap:  &export.ImageEntry{File: basemapFile, Width: res.Basemap.Width, Height: res.Basemap.Height},
		Globe:    export.NewMeshEntry(globeFile, res.Globe),
		Features: export.NewMeshEntry(featuresFile, res.Overlay),
		Config:   configFile,
		Params: map[string]any{
			"slices":          cfg.Globe.Slices,
			"stacks":          cfg.Globe.Stacks,
			"radius":          cfg.Globe.Radius,
			"seed":            cfg.Basemap.Seed,
			"fillAllPolygons": cfg.Basemap.FillAllPolygons,
			"polygonsSkipped": res.Features.PolygonsSkipped,
		},
	})
}
