// Package config loads the wallpaper configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"linux-wallpaperparticles/internal/engine2D"
	"linux-wallpaperparticles/internal/engine2D/particle"

	"gopkg.in/yaml.v3"
)

const (
	EffectLine = "line"
	EffectDust = "dust"
	EffectNone = "none"

	MaxFPS = 240
)

type Config struct {
	FPS            int     `yaml:"fps"`
	Background     Color   `yaml:"background"`
	ClearEachFrame bool    `yaml:"clearEachFrame"`
	Effect         string  `yaml:"effect"`
	RenderScale    float64 `yaml:"renderScale"`
	ScalingMode    string  `yaml:"scalingMode"`

	// SceneWidth and SceneHeight fix the simulated scene size; the scene is
	// then fitted or filled onto the window. Zero follows the window.
	SceneWidth  int `yaml:"sceneWidth"`
	SceneHeight int `yaml:"sceneHeight"`

	// Seed makes particle trajectories reproducible; 0 seeds from the clock.
	Seed uint64 `yaml:"seed"`

	Dust DustConfig `yaml:"dust"`
	Line LineConfig `yaml:"line"`
}

type DustConfig struct {
	Count     int            `yaml:"count"`
	Color     Color          `yaml:"color"`
	Speed     float64        `yaml:"speed"`
	MinRadius float64        `yaml:"minRadius"`
	MaxRadius float64        `yaml:"maxRadius"`
	Gradient  []GradientStop `yaml:"gradient"`
}

// GradientStop places a color on the radial profile of a dust particle,
// Offset 0 being the center and 1 the max radius.
type GradientStop struct {
	Offset float64 `yaml:"offset"`
	Color  Color   `yaml:"color"`
}

type LineConfig struct {
	Count       int     `yaml:"count"`
	Color       Color   `yaml:"color"`
	Speed       float64 `yaml:"speed"`
	MinDistance float64 `yaml:"minDistance"`
	MaxDistance float64 `yaml:"maxDistance"`
	Radius      float64 `yaml:"radius"`
	LineColor   Color   `yaml:"lineColor"`
	LineWidth   float64 `yaml:"lineWidth"`
}

// Default returns the built-in configuration: a white background with the
// line network shown and blue glowing dust available.
func Default() *Config {
	dust := particle.DefaultDustOptions()
	line := particle.DefaultLineOptions()

	return &Config{
		FPS:            60,
		Background:     Color(color.NRGBA{R: 255, G: 255, B: 255, A: 255}),
		ClearEachFrame: true,
		Effect:         EffectLine,
		RenderScale:    1,
		ScalingMode:    engine2D.ScalingFill,
		Dust: DustConfig{
			Count:     dust.Count,
			Color:     Color(dust.Color),
			Speed:     dust.Speed,
			MinRadius: dust.MinRadius,
			MaxRadius: dust.MaxRadius,
			Gradient: []GradientStop{
				{Offset: 0.1, Color: Color(color.NRGBA{B: 255, A: 255})},
				{Offset: 1, Color: Color(color.NRGBA{})},
			},
		},
		Line: LineConfig{
			Count:       line.Count,
			Color:       Color(line.Color),
			Speed:       line.Speed,
			MinDistance: line.MinDistance,
			MaxDistance: line.MaxDistance,
			Radius:      line.Radius,
			LineColor:   Color(line.LineColor),
			LineWidth:   line.LineWidth,
		},
	}
}

// Load reads the config at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.FPS < 1 || c.FPS > MaxFPS {
		return fmt.Errorf("fps %d outside 1..%d", c.FPS, MaxFPS)
	}
	if c.RenderScale <= 0 || c.RenderScale > 1 {
		return fmt.Errorf("renderScale %.2f outside (0, 1]", c.RenderScale)
	}
	switch c.ScalingMode {
	case engine2D.ScalingFill, engine2D.ScalingFit:
	default:
		return fmt.Errorf("unknown scalingMode %q", c.ScalingMode)
	}
	switch c.Effect {
	case EffectLine, EffectDust, EffectNone:
	default:
		return fmt.Errorf("unknown effect %q", c.Effect)
	}
	if c.SceneWidth < 0 || c.SceneHeight < 0 || (c.SceneWidth == 0) != (c.SceneHeight == 0) {
		return fmt.Errorf("scene size %dx%d must be both zero or both positive", c.SceneWidth, c.SceneHeight)
	}

	for _, stop := range c.Dust.Gradient {
		if stop.Offset < 0 || stop.Offset > 1 {
			return fmt.Errorf("dust: gradient offset %.2f outside [0, 1]", stop.Offset)
		}
	}

	return errors.Join(
		wrap("dust", c.DustOptions(0, 0, nil).Validate()),
		wrap("line", c.LineOptions(0, 0, nil).Validate()),
	)
}

func wrap(section string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", section, err)
}

// Random returns the particle random source for this config.
func (c *Config) Random() *particle.Random {
	if c.Seed == 0 {
		return particle.NewTimeRandom()
	}
	return particle.NewRandom(c.Seed)
}

// DustGradient builds the radial gradient for dust particles, or nil when
// none is configured.
func (c *Config) DustGradient() *engine2D.RadialGradient {
	if len(c.Dust.Gradient) == 0 {
		return nil
	}
	stops := make([]engine2D.GradientStop, len(c.Dust.Gradient))
	for i, s := range c.Dust.Gradient {
		stops[i] = engine2D.GradientStop{Offset: s.Offset, Color: s.Color.NRGBA()}
	}
	return engine2D.NewRadialGradient(c.Dust.MaxRadius, stops...)
}

func (c *Config) DustOptions(width, height int, rng *particle.Random) particle.DustOptions {
	return particle.DustOptions{
		ViewWidth:  width,
		ViewHeight: height,
		Count:      c.Dust.Count,
		Color:      c.Dust.Color.NRGBA(),
		Speed:      c.Dust.Speed,
		MinRadius:  c.Dust.MinRadius,
		MaxRadius:  c.Dust.MaxRadius,
		Gradient:   c.DustGradient(),
		Visible:    c.Effect == EffectDust,
		Rand:       rng,
	}
}

func (c *Config) LineOptions(width, height int, rng *particle.Random) particle.LineOptions {
	return particle.LineOptions{
		ViewWidth:   width,
		ViewHeight:  height,
		Count:       c.Line.Count,
		Color:       c.Line.Color.NRGBA(),
		Speed:       c.Line.Speed,
		MinDistance: c.Line.MinDistance,
		MaxDistance: c.Line.MaxDistance,
		Radius:      c.Line.Radius,
		LineColor:   c.Line.LineColor.NRGBA(),
		LineWidth:   c.Line.LineWidth,
		Visible:     c.Effect == EffectLine,
		Rand:        rng,
	}
}

// SceneSize is the size particles are simulated at on a screen of the given
// size: the fixed scene size when set, otherwise the screen reduced by the
// render scale.
func (c *Config) SceneSize(screenWidth, screenHeight int) (int, int) {
	if c.SceneWidth > 0 {
		return c.SceneWidth, c.SceneHeight
	}
	return engine2D.ScaledSize(screenWidth, screenHeight, c.RenderScale)
}

// Generators builds the line and dust generators, in that priority order,
// sharing one random source.
func (c *Config) Generators(width, height int) (*particle.LineGenerator, *particle.DustGenerator, error) {
	rng := c.Random()

	line, err := particle.NewLineGenerator(c.LineOptions(width, height, rng))
	if err != nil {
		return nil, nil, fmt.Errorf("line: %w", err)
	}
	dust, err := particle.NewDustGenerator(c.DustOptions(width, height, rng))
	if err != nil {
		return nil, nil, fmt.Errorf("dust: %w", err)
	}
	return line, dust, nil
}
