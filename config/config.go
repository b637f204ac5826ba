// Package config provides configuration loading and access for the
// density mapper.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all mapper configuration parameters.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Smoothing SmoothingConfig `yaml:"smoothing"`
	Render    RenderConfig    `yaml:"render"`
	Parallel  ParallelConfig  `yaml:"parallel"`
	Screen    ScreenConfig    `yaml:"screen"`
	Synthetic SyntheticConfig `yaml:"synthetic"`
	Live      LiveConfig      `yaml:"live"`
}

// GridConfig holds the output map geometry.
type GridConfig struct {
	Npix       int     `yaml:"npix"`        // pixels per axis (square map)
	HalfExtent float64 `yaml:"half_extent"` // physical half-width of the frame
}

// SmoothingConfig holds smoothing-length estimation parameters.
type SmoothingConfig struct {
	Neighbors int     `yaml:"neighbors"` // k for the k-th nearest neighbor distance
	MinHsml   float64 `yaml:"min_hsml"`  // floor applied to estimated lengths (0 = none)
}

// RenderConfig holds heatmap export parameters.
type RenderConfig struct {
	SizePx       int     `yaml:"size_px"`       // PNG edge length in pixels
	LogScale     bool    `yaml:"log_scale"`     // log10 intensity instead of linear
	ClipQuantile float64 `yaml:"clip_quantile"` // saturate above this Z quantile (0 = max)
}

// ParallelConfig holds splat parallelization parameters.
type ParallelConfig struct {
	Workers int `yaml:"workers"` // 0 = GOMAXPROCS
}

// ScreenConfig holds viewer window settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SyntheticConfig holds synthetic cloud generation defaults.
type SyntheticConfig struct {
	N        int     `yaml:"n"`
	Scale    float64 `yaml:"scale"`
	Contrast float64 `yaml:"contrast"`
}

// LiveConfig holds live-demo simulation parameters.
type LiveConfig struct {
	Particles  int     `yaml:"particles"`
	OrbitSpeed float64 `yaml:"orbit_speed"` // radians per second at unit radius
	Jitter     float64 `yaml:"jitter"`      // random velocity kick per second
	Resplat    float64 `yaml:"resplat"`     // seconds between map rebuilds
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded
// defaults if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into the same struct - only overwrites fields
		// present in the file.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
