package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GEOGLOBE_"

// Load loads configuration with priority: defaults < file < .env/env < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "GeoGlobe")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "GeoGlobe")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "geoglobe")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "geoglobe")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnv applies GEOGLOBE_* overrides read through lookup.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(EnvPrefix + key)
		if !ok || strings.TrimSpace(v) == "" {
			return "", false
		}
		return strings.TrimSpace(v), true
	}
	bad := func(key, v string, err error) error {
		return fmt.Errorf("environment %s%s=%q: %w", EnvPrefix, key, v, err)
	}

	if v, ok := get("SLICES"); ok {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return bad("SLICES", v, err)
		}
		cfg.Globe.Slices = uint32(n)
	}
	if v, ok := get("STACKS"); ok {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return bad("STACKS", v, err)
		}
		cfg.Globe.Stacks = uint32(n)
	}
	if v, ok := get("RADIUS"); ok {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return bad("RADIUS", v, err)
		}
		cfg.Globe.Radius = float32(f)
	}
	if v, ok := get("SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return bad("SEED", v, err)
		}
		cfg.Basemap.Seed = n
	}
	if v, ok := get("FILL_ALL_POLYGONS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return bad("FILL_ALL_POLYGONS", v, err)
		}
		cfg.Basemap.FillAllPolygons = b
	}
	if v, ok := get("BASEMAP"); ok {
		cfg.Basemap.Path = v
	}
	if v, ok := get("FEATURES"); ok {
		cfg.Features.Path = v
	}
	if v, ok := get("NAME_PROPERTY"); ok {
		cfg.Features.NameProperty = v
	}
	if v, ok := get("ASSET_ROOTS"); ok {
		cfg.Assets.Roots = filepath.SplitList(v)
	}
	if v, ok := get("OUTPUT_DIR"); ok {
		cfg.Output.Dir = v
	}
	if v, ok := get("METRICS_TEXTFILE"); ok {
		cfg.Metrics.Textfile = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		cfg.Logging.Level = v
	}
	if v, ok := get("LOG_FILE"); ok {
		cfg.Logging.LogFile = v
	}
	return nil
}
