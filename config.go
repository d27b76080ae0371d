package flashanimedit

import (
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v2"
)

// Config is the editor configuration, decoded from a YAML file.
type Config struct {
	Display struct {
		Backend string `yaml:"backend"`
		Card    int    `yaml:"card"`
	} `yaml:"display"`
	Brush struct {
		Color   string   `yaml:"color"`
		Palette []string `yaml:"palette"`
	} `yaml:"brush"`
	Export struct {
		Dir string `yaml:"dir"`
	} `yaml:"export"`
	LogLevel string `yaml:"logLevel"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	c := Config{}
	c.Display.Backend = "sdl"
	c.Brush.Color = "#222222"
	c.Brush.Palette = []string{
		"#222222", "#FFFFFF", "#D32F2F", "#F57C00", "#FBC02D",
		"#388E3C", "#1976D2", "#7B1FA2", "#795548",
	}
	c.Export.Dir = "."
	c.LogLevel = "info"
	return c
}

// LoadConfig reads a YAML config file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return c, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate checks backend and color values.
func (c *Config) Validate() error {
	switch c.Display.Backend {
	case "sdl", "kmsdrm", "null":
	default:
		return fmt.Errorf("unknown display backend %q", c.Display.Backend)
	}

	if _, err := colorful.Hex(c.Brush.Color); err != nil {
		return fmt.Errorf("invalid brush color %q: %w", c.Brush.Color, err)
	}
	for _, hex := range c.Brush.Palette {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("invalid palette color %q: %w", hex, err)
		}
	}
	return nil
}

// MakePaintEngine creates the paint engine named by the config.
func (c *Config) MakePaintEngine() (PaintEngine, error) {
	switch c.Display.Backend {
	case "sdl":
		return NewSDLPaintEngine(WindowWidth, WindowHeight)
	case "kmsdrm":
		return NewKMSDRMPaintEngine(c.Display.Card)
	case "null":
		return NullPaintEngine(WindowWidth, WindowHeight), nil
	default:
		return nil, fmt.Errorf("unknown display backend %q", c.Display.Backend)
	}
}
