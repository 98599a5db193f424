// Package config loads the YAML scene file of the scanline viewer.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/scanline/pkg/engine"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// Config is the scene file. Zero values are replaced by defaults.
type Config struct {
	Model    string `yaml:"model"`    // OBJ or GLB path; empty draws the built-in cube
	Texture  string `yaml:"texture"`  // Image path; overrides an embedded GLB texture
	Recenter bool   `yaml:"recenter"` // Move the mesh centroid to the origin

	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`

	FOV   float64   `yaml:"fov"` // degrees
	Near  float64   `yaml:"near"`
	Far   float64   `yaml:"far"`
	Light []float64 `yaml:"light"` // direction towards the light, 3 components

	Mode       string `yaml:"mode"` // textured or flat
	Shade      bool   `yaml:"shade"`
	Wireframe  bool   `yaml:"wireframe"`
	WireColor  string `yaml:"wire_color"` // R,G,B
	Background string `yaml:"background"` // R,G,B

	Distance  float64  `yaml:"distance"`
	Spin      *float64 `yaml:"spin"` // pointer to distinguish unset vs 0
	MoveSpeed float64  `yaml:"move_speed"`
	TurnSpeed float64  `yaml:"turn_speed"`
	Smoothing float64  `yaml:"smoothing"`

	// MaxTextureSize caps the larger side of a loaded texture; 0 keeps
	// the image size.
	MaxTextureSize int `yaml:"max_texture_size"`
}

// Defaults
const (
	DefaultWidth      = 256
	DefaultHeight     = 240
	DefaultFPS        = 60
	DefaultFOV        = 90
	DefaultNear       = 0.1
	DefaultFar        = 1000
	DefaultMode       = "textured"
	DefaultWireColor  = "0,255,128"
	DefaultBackground = "30,30,40"
	DefaultDistance   = 5
	DefaultSpin       = 1
	DefaultMoveSpeed  = 8
	DefaultTurnSpeed  = 2
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.normalize()
	return c
}

// Load reads and validates a scene file. Unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML, fills defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) normalize() {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.FPS == 0 {
		c.FPS = DefaultFPS
	}
	if c.FOV == 0 {
		c.FOV = DefaultFOV
	}
	if c.Near == 0 {
		c.Near = DefaultNear
	}
	if c.Far == 0 {
		c.Far = DefaultFar
	}
	if len(c.Light) == 0 {
		c.Light = []float64{0, 1, -1}
	}
	if c.Mode == "" {
		c.Mode = DefaultMode
	}
	if c.WireColor == "" {
		c.WireColor = DefaultWireColor
	}
	if c.Background == "" {
		c.Background = DefaultBackground
	}
	if c.Distance == 0 {
		c.Distance = DefaultDistance
	}
	if c.Spin == nil {
		spin := float64(DefaultSpin)
		c.Spin = &spin
	}
	if c.MoveSpeed == 0 {
		c.MoveSpeed = DefaultMoveSpeed
	}
	if c.TurnSpeed == 0 {
		c.TurnSpeed = DefaultTurnSpeed
	}
}

// Validate rejects settings the renderer cannot use.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size %dx%d must be positive", c.Width, c.Height))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps %d must be positive", c.FPS))
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		errs = append(errs, fmt.Errorf("fov %v must be in (0, 180)", c.FOV))
	}
	if c.Near <= 0 || c.Near >= c.Far {
		errs = append(errs, fmt.Errorf("near %v must be positive and below far %v", c.Near, c.Far))
	}
	if len(c.Light) != 3 {
		errs = append(errs, fmt.Errorf("light needs 3 components, got %d", len(c.Light)))
	} else if c.Light[0] == 0 && c.Light[1] == 0 && c.Light[2] == 0 {
		errs = append(errs, errors.New("light direction must not be zero"))
	}
	if _, err := render.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseColor(c.WireColor); err != nil {
		errs = append(errs, fmt.Errorf("wire_color: %w", err))
	}
	if _, err := ParseColor(c.Background); err != nil {
		errs = append(errs, fmt.Errorf("background: %w", err))
	}
	if c.Distance <= 0 {
		errs = append(errs, fmt.Errorf("distance %v must be positive", c.Distance))
	}
	if c.MoveSpeed < 0 || c.TurnSpeed < 0 || c.Smoothing < 0 {
		errs = append(errs, errors.New("speeds and smoothing must not be negative"))
	}
	if c.MaxTextureSize < 0 {
		errs = append(errs, fmt.Errorf("max_texture_size %d must not be negative", c.MaxTextureSize))
	}
	return errors.Join(errs...)
}

// Engine validates the file and maps it onto the engine configuration.
func (c *Config) Engine() (engine.Config, error) {
	if err := c.Validate(); err != nil {
		return engine.Config{}, err
	}
	mode, _ := render.ParseMode(c.Mode)
	wire, _ := ParseColor(c.WireColor)
	bg, _ := ParseColor(c.Background)
	spin := float64(DefaultSpin)
	if c.Spin != nil {
		spin = *c.Spin
	}

	opts := render.DefaultOptions()
	opts.FOV = c.FOV
	opts.Near = c.Near
	opts.Far = c.Far
	opts.Light = math3d.Dir3(c.Light[0], c.Light[1], c.Light[2])
	opts.Mode = mode
	opts.Shade = c.Shade
	opts.Wireframe = c.Wireframe
	opts.WireColor = wire
	opts.Background = bg

	return engine.Config{
		Width:     c.Width,
		Height:    c.Height,
		Render:    opts,
		Distance:  c.Distance,
		Spin:      spin,
		MoveSpeed: c.MoveSpeed,
		TurnSpeed: c.TurnSpeed,
		Smoothing: c.Smoothing,
	}, nil
}

// ParseColor parses "R,G,B" with components in 0..255.
func ParseColor(s string) (render.Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return render.Color{}, fmt.Errorf("color %q: want R,G,B", s)
	}
	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return render.Color{}, fmt.Errorf("color %q: %w", s, err)
		}
		rgb[i] = uint8(v)
	}
	return render.RGB(rgb[0], rgb[1], rgb[2]), nil
}
