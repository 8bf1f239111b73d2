// Package config loads the TOML configuration shared by the render and
// serve commands.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/0x0FACED/go-voronoi-paint/pkg/logger"
	"github.com/0x0FACED/go-voronoi-paint/pkg/props"
	"github.com/0x0FACED/go-voronoi-paint/pkg/surface"
)

type Server struct {
	Addr        string   `toml:"addr"`
	StaticDir   string   `toml:"static_dir"`
	CORSOrigins []string `toml:"cors_origins"`
	MaxElements int      `toml:"max_elements"`
}

// Canvas is the paint size used when a request does not name one.
type Canvas struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type Log struct {
	Level string `toml:"level"`
}

// Config is the whole configuration file. Style holds raw property values
// keyed by either the declared name or the short key, e.g.
//
//	[style]
//	numberOfCells = "auto"
//	cellColors = ["#ff0000", "#00ff00"]
type Config struct {
	Server Server         `toml:"server"`
	Canvas Canvas         `toml:"canvas"`
	Log    Log            `toml:"log"`
	Style  map[string]any `toml:"style"`
}

func Default() Config {
	return Config{
		Server: Server{
			Addr:        ":8080",
			CORSOrigins: []string{"*"},
			MaxElements: 256,
		},
		Canvas: Canvas{Width: 800, Height: 600},
		Log:    Log{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path or a missing file yields
// the defaults; any other read or decode error is returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config: %s: unknown keys %v", path, undecoded)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Canvas.Width < 1 || c.Canvas.Width > surface.MaxSide ||
		c.Canvas.Height < 1 || c.Canvas.Height > surface.MaxSide {
		return fmt.Errorf("config: canvas %dx%d out of range [1, %d]", c.Canvas.Width, c.Canvas.Height, surface.MaxSide)
	}
	if c.Server.MaxElements < 1 {
		return fmt.Errorf("config: server.max_elements must be at least 1, got %d", c.Server.MaxElements)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log level: %w", err)
	}
	if _, err := props.FromTOML(c.Style); err != nil {
		return fmt.Errorf("config: style: %w", err)
	}
	return nil
}

// StyleBag returns the [style] table as a property bag.
func (c Config) StyleBag() (props.Map, error) {
	return props.FromTOML(c.Style)
}
