// Package config loads the campus service configuration from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// BoundingBoxConfig is the rectangular campus boundary.
type BoundingBoxConfig struct {
	North float64 `yaml:"north" validate:"required,gte=-90,lte=90"`
	South float64 `yaml:"south" validate:"required,gte=-90,lte=90"`
	East  float64 `yaml:"east" validate:"required,gte=-180,lte=180"`
	West  float64 `yaml:"west" validate:"required,gte=-180,lte=180"`
}

// CampusConfig tunes graph construction and stitching.
type CampusConfig struct {
	BoundingBox    BoundingBoxConfig `yaml:"boundingBox" validate:"required"`
	FloorHeight    float64           `yaml:"floorHeight" validate:"gte=0"`
	MergeThreshold float64           `yaml:"mergeThreshold" validate:"gte=0"`
	SeamThreshold  float64           `yaml:"seamThreshold" validate:"gte=0"`
}

// RoutingConfig tunes the engine.
type RoutingConfig struct {
	WalkingSpeed  float64 `yaml:"walkingSpeed" validate:"gte=0"`
	CacheCapacity int     `yaml:"cacheCapacity" validate:"gte=0"`
	MaxIterations int     `yaml:"maxIterations" validate:"gte=0"`
}

// ExternalConfig points at the off-campus road router.
type ExternalConfig struct {
	BaseURL        string `yaml:"baseURL" validate:"omitempty,url"`
	TimeoutSeconds int    `yaml:"timeoutSeconds" validate:"gte=0"`
}

type Config struct {
	Campus   CampusConfig   `yaml:"campus" validate:"required"`
	Routing  RoutingConfig  `yaml:"routing"`
	External ExternalConfig `yaml:"external"`
}

// Load reads, validates and defaults the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if cfg.Campus.BoundingBox.North <= cfg.Campus.BoundingBox.South {
		return nil, fmt.Errorf("invalid config %s: boundingBox north must be greater than south", path)
	}
	if cfg.Campus.BoundingBox.East <= cfg.Campus.BoundingBox.West {
		return nil, fmt.Errorf("invalid config %s: boundingBox east must be greater than west", path)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Campus.FloorHeight == 0 {
		cfg.Campus.FloorHeight = 3.2
	}
	if cfg.Campus.MergeThreshold == 0 {
		cfg.Campus.MergeThreshold = 15
	}
	if cfg.Campus.SeamThreshold == 0 {
		cfg.Campus.SeamThreshold = 18
	}
	if cfg.Routing.WalkingSpeed == 0 {
		cfg.Routing.WalkingSpeed = 1.4
	}
	if cfg.Routing.CacheCapacity == 0 {
		cfg.Routing.CacheCapacity = 20
	}
	if cfg.Routing.MaxIterations == 0 {
		cfg.Routing.MaxIterations = 10_000
	}
	if cfg.External.TimeoutSeconds == 0 {
		cfg.External.TimeoutSeconds = 10
	}
}
