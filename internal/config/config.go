// Package config handles configuration loading for the plotcolor server.
package config

import (
	"fmt"
	"os"

	"github.com/soma-tiles/plotcolor/pkg/colormap"
	"gopkg.in/yaml.v3"
)

// Config represents the server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Cache  CacheConfig  `yaml:"cache"`
	Render RenderConfig `yaml:"render"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
	Title       string   `yaml:"title"`
}

// CacheConfig contains caching settings.
type CacheConfig struct {
	ImageSizeMB     int `yaml:"image_size_mb"`
	ImageTTLMinutes int `yaml:"image_ttl_minutes"`
	QueryCacheSize  int `yaml:"query_cache_size"`
}

// RenderConfig contains rendering and colormap settings.
type RenderConfig struct {
	ColorbarWidth   int     `yaml:"colorbar_width"`
	ColorbarHeight  int     `yaml:"colorbar_height"`
	SwatchSize      int     `yaml:"swatch_size"`
	DefaultColormap string  `yaml:"default_colormap"`
	DefaultStages   int     `yaml:"default_stages"`
	AlphaScale      float64 `yaml:"alpha_scale"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return default config if file doesn't exist
		return DefaultConfig(), nil
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	// Apply defaults for missing values
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
			Title:       "plotcolor",
		},
		Cache: CacheConfig{
			ImageSizeMB:     64,
			ImageTTLMinutes: 10,
			QueryCacheSize:  1000,
		},
		Render: RenderConfig{
			ColorbarWidth:   256,
			ColorbarHeight:  24,
			SwatchSize:      24,
			DefaultColormap: "viridis",
			DefaultStages:   colormap.DefaultStages,
			AlphaScale:      colormap.DefaultAlphaScale,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaults.Server.Port
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = defaults.Server.CORSOrigins
	}
	if cfg.Server.Title == "" {
		cfg.Server.Title = defaults.Server.Title
	}
	if cfg.Cache.ImageSizeMB == 0 {
		cfg.Cache.ImageSizeMB = defaults.Cache.ImageSizeMB
	}
	if cfg.Cache.ImageTTLMinutes == 0 {
		cfg.Cache.ImageTTLMinutes = defaults.Cache.ImageTTLMinutes
	}
	if cfg.Cache.QueryCacheSize == 0 {
		cfg.Cache.QueryCacheSize = defaults.Cache.QueryCacheSize
	}
	if cfg.Render.ColorbarWidth == 0 {
		cfg.Render.ColorbarWidth = defaults.Render.ColorbarWidth
	}
	if cfg.Render.ColorbarHeight == 0 {
		cfg.Render.ColorbarHeight = defaults.Render.ColorbarHeight
	}
	if cfg.Render.SwatchSize == 0 {
		cfg.Render.SwatchSize = defaults.Render.SwatchSize
	}
	if cfg.Render.DefaultColormap == "" {
		cfg.Render.DefaultColormap = defaults.Render.DefaultColormap
	}
	if cfg.Render.DefaultStages == 0 {
		cfg.Render.DefaultStages = defaults.Render.DefaultStages
	}
	if cfg.Render.AlphaScale == 0 {
		cfg.Render.AlphaScale = defaults.Render.AlphaScale
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Cache.ImageSizeMB < 0 || c.Cache.ImageTTLMinutes < 0 || c.Cache.QueryCacheSize < 0 {
		return fmt.Errorf("cache sizes must not be negative")
	}
	if c.Render.ColorbarWidth < 2 || c.Render.ColorbarHeight < 1 || c.Render.SwatchSize < 1 {
		return fmt.Errorf("render sizes too small: colorbar %dx%d, swatch %d",
			c.Render.ColorbarWidth, c.Render.ColorbarHeight, c.Render.SwatchSize)
	}
	if c.Render.DefaultStages < 2 || c.Render.DefaultStages > colormap.MaxStages {
		return fmt.Errorf("render.default_stages must be in [2, %d], got %d", colormap.MaxStages, c.Render.DefaultStages)
	}
	if _, ok := colormap.Builtin(c.Render.DefaultColormap); !ok {
		return fmt.Errorf("unknown render.default_colormap %q", c.Render.DefaultColormap)
	}
	return nil
}
