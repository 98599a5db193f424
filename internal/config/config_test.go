package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/scanline/pkg/render"
)

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	ec, err := c.Engine()
	if err != nil {
		t.Fatal(err)
	}
	if ec.Width != 256 || ec.Height != 240 {
		t.Errorf("size = %dx%d, want 256x240", ec.Width, ec.Height)
	}
	if ec.Render.FOV != 90 || ec.Render.Near != 0.1 || ec.Render.Far != 1000 {
		t.Errorf("projection = %v/%v/%v", ec.Render.FOV, ec.Render.Near, ec.Render.Far)
	}
	if ec.Render.Mode != render.ModeTextured {
		t.Errorf("mode = %v, want textured", ec.Render.Mode)
	}
	if ec.Distance != 5 || ec.Spin != 1 || ec.MoveSpeed != 8 || ec.TurnSpeed != 2 || ec.Smoothing != 0 {
		t.Errorf("motion = %+v", ec)
	}
	if ec.Render.Background != render.RGB(30, 30, 40) {
		t.Errorf("background = %v", ec.Render.Background)
	}
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
model: teapot.obj
recenter: true
width: 320
height: 200
mode: flat
wireframe: true
wire_color: "255, 0, 0"
light: [1, 0, 0]
spin: 0
smoothing: 4.5
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Model != "teapot.obj" || !c.Recenter {
		t.Errorf("model = %q recenter = %v", c.Model, c.Recenter)
	}

	ec, err := c.Engine()
	if err != nil {
		t.Fatal(err)
	}
	if ec.Width != 320 || ec.Height != 200 {
		t.Errorf("size = %dx%d", ec.Width, ec.Height)
	}
	if ec.Render.Mode != render.ModeFlat || !ec.Render.Wireframe || ec.Render.WireColor != render.ColorRed {
		t.Errorf("render options = %+v", ec.Render)
	}
	if ec.Render.Light.X != 1 || ec.Render.Light.W != 0 {
		t.Errorf("light = %v, want direction (1,0,0)", ec.Render.Light)
	}
	if ec.Spin != 0 {
		t.Errorf("spin = %v, an explicit 0 must be kept", ec.Spin)
	}
	if ec.Smoothing != 4.5 {
		t.Errorf("smoothing = %v", ec.Smoothing)
	}
	// Untouched fields keep their defaults.
	if ec.Render.FOV != DefaultFOV || ec.Distance != DefaultDistance {
		t.Errorf("defaults lost: fov %v distance %v", ec.Render.FOV, ec.Distance)
	}
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil): %v", err)
	}
	if c.Width != DefaultWidth || *c.Spin != DefaultSpin {
		t.Errorf("empty file did not normalize: %+v", c)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown key", "colour: red\n", "colour"},
		{"negative width", "width: -4\n", "size"},
		{"near beyond far", "near: 10\nfar: 5\n", "near"},
		{"fov too wide", "fov: 180\n", "fov"},
		{"unknown mode", "mode: gouraud\n", "gouraud"},
		{"short light", "light: [1, 2]\n", "light"},
		{"zero light", "light: [0, 0, 0]\n", "light"},
		{"bad background", "background: blue\n", "background"},
		{"component overflow", "wire_color: 256,0,0\n", "wire_color"},
		{"negative smoothing", "smoothing: -1\n", "smoothing"},
		{"not yaml", "width: [\n", "yaml"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte("fps: 30\nshade: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.FPS != 30 || !c.Shade {
		t.Errorf("config = %+v", c)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    render.Color
		wantErr bool
	}{
		{"0,0,0", render.ColorBlack, false},
		{"255, 255, 255", render.ColorWhite, false},
		{" 30,30 ,40", render.RGB(30, 30, 40), false},
		{"1,2", render.Color{}, true},
		{"1,2,3,4", render.Color{}, true},
		{"a,b,c", render.Color{}, true},
		{"-1,0,0", render.Color{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseColor(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
