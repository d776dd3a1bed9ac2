// Package config handles pipeline configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// Config holds all pipeline settings.
type Config struct {
	Globe    GlobeConfig    `yaml:"globe"`
	Basemap  BasemapConfig  `yaml:"basemap"`
	Features FeaturesConfig `yaml:"features"`
	Assets   AssetsConfig   `yaml:"assets"`
	Output   OutputConfig   `yaml:"output"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GlobeConfig holds sphere tessellation parameters.
type GlobeConfig struct {
	Slices uint32  `yaml:"slices"` // longitude subdivisions
	Stacks uint32  `yaml:"stacks"` // latitude subdivisions
	Radius float32 `yaml:"radius"`
}

// BasemapConfig holds base image settings.
type BasemapConfig struct {
	Path            string `yaml:"path"`
	PaddingWidth    int    `yaml:"padding_width"`
	PaddingHeight   int    `yaml:"padding_height"`
	Seed            int64  `yaml:"seed"` // 0 = different colors every run
	FillAllPolygons bool   `yaml:"fill_all_polygons"`
}

// FeaturesConfig holds GeoJSON input settings.
type FeaturesConfig struct {
	Path         string `yaml:"path"`
	NameProperty string `yaml:"name_property"`
}

// AssetsConfig holds asset search directories.
type AssetsConfig struct {
	Roots []string `yaml:"roots"` // searched last to first
}

// OutputConfig holds artifact output settings.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// MetricsConfig holds metrics output settings.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"` // empty disables the dump
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Globe: GlobeConfig{
			Slices: 100,
			Stacks: 100,
			Radius: 10000,
		},
		Basemap: BasemapConfig{
			Path: "blue_marble_2048.tif",
		},
		Features: FeaturesConfig{
			Path:         "world_2010.geojson",
			NameProperty: "NAME",
		},
		Assets: AssetsConfig{
			Roots: []string{"assets"},
		},
		Output: OutputConfig{
			Dir: "out",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Validate reports every setting the pipeline cannot run with.
func (c *Config) Validate() error {
	var err error
	invalid := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Globe.Slices < 3 {
		invalid("globe.slices must be at least 3, got %d", c.Globe.Slices)
	}
	if c.Globe.Stacks < 2 {
		invalid("globe.stacks must be at least 2, got %d", c.Globe.Stacks)
	}
	if r := float64(c.Globe.Radius); !(r > 0) || math.IsInf(r, 0) {
		invalid("globe.radius must be positive, got %v", c.Globe.Radius)
	}
	if c.Basemap.PaddingWidth < 0 || c.Basemap.PaddingHeight < 0 {
		invalid("basemap padding must not be negative, got %dx%d", c.Basemap.PaddingWidth, c.Basemap.PaddingHeight)
	}
	if c.Basemap.Path == "" {
		invalid("basemap.path is empty")
	}
	if c.Features.Path == "" {
		invalid("features.path is empty")
	}
	if c.Features.NameProperty == "" {
		invalid("features.name_property is empty")
	}
	return err
}
