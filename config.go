package swirl

import (
	"fmt"
	"os"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/colornames"
)

// Config collects the demo parameters. Zero values are filled with the
// defaults below, so a TOML file only needs to name what it overrides.
type Config struct {
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	Title      string  `toml:"title"`
	Instances  int     `toml:"instances"`
	ShapeScale float32 `toml:"shape_scale"`
	SpinSpeed  float32 `toml:"spin_speed"`
	ClearColor string  `toml:"clear_color"`
	Seed       int64   `toml:"seed"`
	Debug      bool    `toml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Width:      1920,
		Height:     1080,
		Title:      "swirl",
		Instances:  1000,
		ShapeScale: 0.05,
		SpinSpeed:  1.0,
		ClearColor: "black",
	}
}

// LoadConfig reads a TOML file over the defaults. An empty path returns the
// defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Instances < 0 {
		return fmt.Errorf("instances must not be negative, got %d", c.Instances)
	}
	if _, err := c.ClearWgpuColor(); err != nil {
		return err
	}
	return nil
}

func (c Config) Aspect() float32 {
	return float32(c.Width) / float32(c.Height)
}

// ClearWgpuColor resolves the named clear color against the SVG 1.1 color
// list.
func (c Config) ClearWgpuColor() (wgpu.Color, error) {
	name := strings.ToLower(strings.TrimSpace(c.ClearColor))
	if name == "" {
		name = "black"
	}
	rgba, ok := colornames.Map[name]
	if !ok {
		return wgpu.Color{}, fmt.Errorf("unknown clear color %q", c.ClearColor)
	}
	return wgpu.Color{
		R: float64(rgba.R) / 255,
		G: float64(rgba.G) / 255,
		B: float64(rgba.B) / 255,
		A: float64(rgba.A) / 255,
	}, nil
}
