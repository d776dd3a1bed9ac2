// globebake builds the globe artifacts: the sphere mesh, the feature overlay
// mesh and the composited basemap texture.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/geoglobe/internal/config"
	"github.com/Faultbox/geoglobe/internal/logger"
	"github.com/Faultbox/geoglobe/internal/metrics"
)

var (
	flagList    = flag.Bool("list", false, "List features and their eligibility, then exit")
	flagInspect = flag.String("inspect", "", "Print the header of an exported mesh file, then exit")
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	if *flagInspect != "" {
		if err := inspectMesh(os.Stdout, *flagInspect); err != nil {
			fmt.Fprintf(os.Stderr, "Inspect error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== GeoGlobe bake ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			logger.Warn("saving config failed", zap.Error(err))
		} else {
			logger.Info("config saved", zap.String("path", path))
		}
	}

	mgr := openAssets(cfg.Assets.Roots)
	defer mgr.Close()

	if *flagList {
		if err := listFeatures(os.Stdout, mgr, cfg); err != nil {
			logger.Error("listing features failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	result, err := bake(cfg, mgr)
	if err != nil {
		logger.Error("bake failed", zap.Error(err))
		os.Exit(1)
	}

	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Warn("writing metrics failed", zap.String("path", cfg.Metrics.Textfile), zap.Error(err))
		}
	}

	hits, misses := mgr.Cache().Stats()
	logger.Debug("asset cache",
		zap.Int("entries", mgr.Cache().Len()),
		zap.Int("hits", hits),
		zap.Int("misses", misses),
	)

	logger.Info("bake finished",
		zap.String("manifest", result.Manifest),
		zap.Int("polygonsSkipped", result.Features.PolygonsSkipped),
	)
}
