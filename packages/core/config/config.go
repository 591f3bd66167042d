package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/testglow/testglow/packages/render"
)

// Color mode names accepted in config files and on the command line.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is testglow's presentation configuration as read from a YAML
// file. Everything is optional; zero values mean "use the default".
type Config struct {
	Color       string            `yaml:"color,omitempty"`     // auto, always, never
	Use256Color *bool             `yaml:"color256,omitempty"`
	Glyphs      *bool             `yaml:"glyphs,omitempty"`
	TagColors   map[string]string `yaml:"tagColors,omitempty"` // tag -> name or #rrggbb
}

// ConfigFilenames contains the config file names searched in order.
var ConfigFilenames = []string{
	".testglow.yml",
	".testglow.yaml",
	"testglow.yml",
	"testglow.yaml",
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{Color: ColorAuto}
}

// LoadConfig loads configuration from the given path, or searches the
// current directory when the path is empty. A missing file is not an
// error; defaults apply.
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory.
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}
	return DefaultConfig(), nil
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := validateColorMode(config.Color); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return config, nil
}

func validateColorMode(mode string) error {
	switch mode {
	case "", ColorAuto, ColorAlways, ColorNever:
		return nil
	}
	return fmt.Errorf("invalid color mode %q (want auto, always or never)", mode)
}

func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetUse256Color returns the 256-color setting, defaulting to false.
func (c *Config) GetUse256Color() bool {
	return getBool(c.Use256Color, false)
}

// GetGlyphs returns the iconographic glyph setting, defaulting to false.
func (c *Config) GetGlyphs() bool {
	return getBool(c.Glyphs, false)
}

// UseANSI resolves the color mode against the terminal: "always" and
// "never" are absolute, "auto" follows whether the sink is a tty.
func (c *Config) UseANSI(tty bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return tty
}

// RenderOptions converts the config into recorder options. File-level
// tag colors merge first, so options appended afterwards win; built-in
// bindings beat both.
func (c *Config) RenderOptions(tty bool) ([]render.Option, error) {
	opts := []render.Option{
		render.WithANSI(c.UseANSI(tty)),
		render.With256Color(c.GetUse256Color()),
		render.WithGlyphs(c.GetGlyphs()),
	}

	if len(c.TagColors) > 0 {
		colors := make(map[string]render.Color, len(c.TagColors))
		for tag, spec := range c.TagColors {
			parsed, err := render.ParseColor(spec)
			if err != nil {
				return nil, fmt.Errorf("tag %q: %w", tag, err)
			}
			colors[tag] = parsed
		}
		opts = append(opts, render.WithTagColors(colors))
	}
	return opts, nil
}
