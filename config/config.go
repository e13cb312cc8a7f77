// Package config holds the scene-building configuration. Nothing here is
// process-wide state: callers load a Scene and pass it along explicitly.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"
)

// Scene configures how a parsed map becomes a scene.
type Scene struct {
	// Colliders maps a tile layer name to the resolv tags of its collision
	// grid. Tile layers listed here are turned into collision grids instead
	// of being rendered.
	Colliders map[string][]string `toml:"colliders" yaml:"colliders"`

	// RenderProperty, when set, restricts rendering to tile layers whose
	// boolean property of that name is true.
	RenderProperty string `toml:"render_property" yaml:"render_property"`

	// SkipUnknownTypes logs and skips objects whose type tag has no
	// registered factory instead of failing the build.
	SkipUnknownTypes bool `toml:"skip_unknown_types" yaml:"skip_unknown_types"`

	// ImageCacheSize bounds the number of tileset images kept decoded.
	ImageCacheSize int `toml:"image_cache_size" yaml:"image_cache_size"`

	Viewer Viewer `toml:"viewer" yaml:"viewer"`
}

// Viewer holds window settings for the map viewer.
type Viewer struct {
	Width       int     `toml:"width" yaml:"width"`
	Height      int     `toml:"height" yaml:"height"`
	ScrollSpeed float64 `toml:"scroll_speed" yaml:"scroll_speed"`
}

// Default returns the configuration used when no file is given.
func Default() Scene {
	return Scene{
		Colliders:      map[string][]string{},
		ImageCacheSize: 16,
		Viewer: Viewer{
			Width:       1280,
			Height:      720,
			ScrollSpeed: 4,
		},
	}
}

// ColliderTags returns the tags for layer and whether it is a collider layer.
func (s Scene) ColliderTags(layer string) ([]string, bool) {
	tags, ok := s.Colliders[layer]
	return tags, ok
}

// Load reads a Scene from a .toml, .yaml or .yml file. Fields missing from
// the file keep their Default values.
func Load(path string) (Scene, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}

	if cfg.Colliders == nil {
		cfg.Colliders = map[string][]string{}
	}
	return cfg, nil
}
