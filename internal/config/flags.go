package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagBasemap  = flag.String("basemap", "", "Base image asset")
	flagFeatures = flag.String("features", "", "GeoJSON feature collection asset")
	flagOut      = flag.String("out", "", "Output directory")
	flagSlices   = flag.Uint("slices", 0, "Globe longitude subdivisions")
	flagStacks   = flag.Uint("stacks", 0, "Globe latitude subdivisions")
	flagRadius   = flag.Float64("radius", 0, "Globe radius")
	flagSeed     = flag.Int64("seed", 0, "Basemap color seed (0 = random)")

	flagSaveConfig = flag.Bool("save-config", false, "Write the effective config to the user config directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagBasemap != "" {
		cfg.Basemap.Path = *flagBasemap
	}
	if *flagFeatures != "" {
		cfg.Features.Path = *flagFeatures
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagSlices > 0 {
		cfg.Globe.Slices = uint32(*flagSlices)
	}
	if *flagStacks > 0 {
		cfg.Globe.Stacks = uint32(*flagStacks)
	}
	if *flagRadius > 0 {
		cfg.Globe.Radius = float32(*flagRadius)
	}
	if *flagSeed != 0 {
		cfg.Basemap.Seed = *flagSeed
	}
}
