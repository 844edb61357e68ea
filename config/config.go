// Package config loads engine-wide tunables from a TOML file, keeping
// [github.com/grindlemire/gpf.Engine] itself free of any particular
// configuration format (spec.md §9's ambient configuration layer).
package config

import (
	"fmt"
	"image"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the settings gpfrun (or any other embedder) loads
// before constructing an [github.com/grindlemire/gpf.Engine].
type Config struct {
	// TileWidth and TileHeight override gpf.DefaultTileSize. Zero means
	// "use the engine's built-in default".
	TileWidth  int `toml:"tile_width"`
	TileHeight int `toml:"tile_height"`

	// LogLevel is one of "debug", "info", "warn", "error". Empty means
	// "info".
	LogLevel string `toml:"log_level"`
}

// TileSize returns the configured tile grid size, or ok=false if
// either dimension was left unset.
func (c Config) TileSize() (image.Point, bool) {
	if c.TileWidth <= 0 || c.TileHeight <= 0 {
		return image.Point{}, false
	}
	return image.Pt(c.TileWidth, c.TileHeight), true
}

// Load reads and decodes a TOML config file at path.
func Load(path string) (Config, error) {
	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return c, nil
}

// LoadOptional behaves like Load, but returns the zero Config without
// error if path does not exist, so callers can treat a config file as
// optional rather than mandatory.
func LoadOptional(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Config{}, nil
	}
	return Load(path)
}
