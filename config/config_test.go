package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusnav/routing/config"
)

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yml")
	assert.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
campus:
  boundingBox:
    north: 9.8574
    south: 9.8438
    east: 122.8931
    west: 122.8831
`)
	cfg, err := config.Load(path)
	assert.NoError(t, err)

	assert.Equal(t, 9.8574, cfg.Campus.BoundingBox.North)
	assert.Equal(t, 3.2, cfg.Campus.FloorHeight)
	assert.Equal(t, 15.0, cfg.Campus.MergeThreshold)
	assert.Equal(t, 18.0, cfg.Campus.SeamThreshold)
	assert.Equal(t, 1.4, cfg.Routing.WalkingSpeed)
	assert.Equal(t, 20, cfg.Routing.CacheCapacity)
	assert.Equal(t, 10_000, cfg.Routing.MaxIterations)
	assert.Equal(t, 10, cfg.External.TimeoutSeconds)
}

func TestLoadKeepsExplicitValues(t *testing.T) {
	path := writeConfig(t, `
campus:
  boundingBox:
    north: 9.8574
    south: 9.8438
    east: 122.8931
    west: 122.8831
  floorHeight: 4.0
  seamThreshold: 25
routing:
  walkingSpeed: 1.1
  cacheCapacity: 50
external:
  baseURL: http://localhost:5000/route/v1/foot
  timeoutSeconds: 3
`)
	cfg, err := config.Load(path)
	assert.NoError(t, err)

	assert.Equal(t, 4.0, cfg.Campus.FloorHeight)
	assert.Equal(t, 25.0, cfg.Campus.SeamThreshold)
	assert.Equal(t, 1.1, cfg.Routing.WalkingSpeed)
	assert.Equal(t, 50, cfg.Routing.CacheCapacity)
	assert.Equal(t, "http://localhost:5000/route/v1/foot", cfg.External.BaseURL)
	assert.Equal(t, 3, cfg.External.TimeoutSeconds)
}

func TestLoadRejectsInvertedBoundingBox(t *testing.T) {
	path := writeConfig(t, `
campus:
  boundingBox:
    north: 9.8438
    south: 9.8574
    east: 122.8931
    west: 122.8831
`)
	_, err := config.Load(path)
	assert.ErrorContains(t, err, "north must be greater than south")
}

func TestLoadRejectsBadValues(t *testing.T) {
	// latitude out of range
	path := writeConfig(t, `
campus:
  boundingBox:
    north: 99
    south: 9.8438
    east: 122.8931
    west: 122.8831
`)
	_, err := config.Load(path)
	assert.Error(t, err)

	// not a URL
	path = writeConfig(t, `
campus:
  boundingBox:
    north: 9.8574
    south: 9.8438
    east: 122.8931
    west: 122.8831
external:
  baseURL: not a url
`)
	_, err = config.Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}
