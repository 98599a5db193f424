package engine

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := New(cfg, models.Cube(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 64, 48
	return cfg
}

func TestNewRejectsBadInput(t *testing.T) {
	cfg := smallConfig()
	cfg.Width = 0
	if _, err := New(cfg, models.Cube(), nil); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := New(smallConfig(), nil, nil); err == nil {
		t.Error("expected error for a nil mesh")
	}
}

func TestUpdateMovesCamera(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		x, y, z float64
		yaw     float64
	}{
		{"up", Input{Up: true}, 0, 4, 0, 0},
		{"down", Input{Down: true}, 0, -4, 0, 0},
		{"left", Input{Left: true}, -4, 0, 0, 0},
		{"right", Input{Right: true}, 4, 0, 0, 0},
		{"forward", Input{Forward: true}, 0, 0, 4, 0},
		{"back", Input{Back: true}, 0, 0, -4, 0},
		{"turn left", Input{TurnLeft: true}, 0, 0, 0, -1},
		{"turn right", Input{TurnRight: true}, 0, 0, 0, 1},
		{"opposing keys cancel", Input{Up: true, Down: true, Left: true, Right: true}, 0, 0, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(t, smallConfig())
			e.Update(0.5, tc.in)

			pos := e.Camera().Position()
			if !approx(pos.X, tc.x) || !approx(pos.Y, tc.y) || !approx(pos.Z, tc.z) {
				t.Errorf("position = %v, want (%v, %v, %v)", pos, tc.x, tc.y, tc.z)
			}
			if !approx(e.Camera().Yaw(), tc.yaw) {
				t.Errorf("yaw = %v, want %v", e.Camera().Yaw(), tc.yaw)
			}
		})
	}
}

func TestForwardFollowsYaw(t *testing.T) {
	e := newTestEngine(t, smallConfig())
	e.Camera().SetYaw(math.Pi / 2)
	e.Update(0.25, Input{Forward: true})

	pos := e.Camera().Position()
	if !approx(pos.X, -2) || !approx(pos.Z, 0) {
		t.Errorf("position = %v, want (-2, 0, 0)", pos)
	}
}

func TestUpdateAdvancesAngle(t *testing.T) {
	e := newTestEngine(t, smallConfig())
	e.Update(0.25, Input{})
	e.Update(0.25, Input{})
	if !approx(e.Angle(), 0.5) {
		t.Errorf("angle = %v, want 0.5", e.Angle())
	}

	e.Update(0, Input{Up: true})
	e.Update(-1, Input{Up: true})
	if !approx(e.Angle(), 0.5) || e.Camera().Position().Y != 0 {
		t.Error("non-positive dt must not change state")
	}
}

func TestSmoothingEasesVelocity(t *testing.T) {
	cfg := smallConfig()
	cfg.Smoothing = 6
	e := newTestEngine(t, cfg)
	const dt = 1.0 / 60

	e.Update(dt, Input{Forward: true})
	first := e.Camera().Position().Z
	if first <= 0 || first >= cfg.MoveSpeed*dt {
		t.Errorf("first step = %v, want in (0, %v)", first, cfg.MoveSpeed*dt)
	}

	prev := first
	var step float64
	for range 600 {
		e.Update(dt, Input{Forward: true})
		z := e.Camera().Position().Z
		step = z - prev
		prev = z
	}
	if math.Abs(step-cfg.MoveSpeed*dt) > 1e-4 {
		t.Errorf("settled step = %v, want %v", step, cfg.MoveSpeed*dt)
	}
}

func TestDrawRendersMesh(t *testing.T) {
	cfg := smallConfig()
	cfg.Render.Background = render.ColorBlue
	e := newTestEngine(t, cfg)

	frame := make([]byte, cfg.Width*cfg.Height*4)
	e.Update(0.3, Input{})
	e.Draw(frame)

	stats := e.Stats()
	if stats.Submitted != 12 || stats.Rasterized == 0 {
		t.Errorf("stats = %+v, want the cube drawn", stats)
	}
	fb, err := render.WrapFramebuffer(frame, cfg.Width, cfg.Height)
	if err != nil {
		t.Fatal(err)
	}
	if fb.GetPixel(0, 0) != render.ColorBlue {
		t.Errorf("corner = %v, want the background", fb.GetPixel(0, 0))
	}
	drawn := 0
	for y := range fb.Height {
		for x := range fb.Width {
			if fb.GetPixel(x, y) != render.ColorBlue {
				drawn++
			}
		}
	}
	if drawn == 0 {
		t.Error("Draw wrote nothing into the caller's buffer")
	}
}

func TestDrawSkipsWrongSize(t *testing.T) {
	var buf bytes.Buffer
	render.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { render.SetLogger(nil) })

	e := newTestEngine(t, smallConfig())
	frame := bytes.Repeat([]byte{7}, 100)
	e.Draw(frame)

	for i, b := range frame {
		if b != 7 {
			t.Fatalf("byte %d changed in a mismatched buffer", i)
		}
	}
	if e.Stats() != (render.FrameStats{}) {
		t.Errorf("stats = %+v, want none", e.Stats())
	}
	if !bytes.Contains(buf.Bytes(), []byte("buffer size mismatch")) {
		t.Errorf("missing warning, log = %q", buf.String())
	}
}

func TestDrawFrameAndResize(t *testing.T) {
	e := newTestEngine(t, smallConfig())

	caller := make([]byte, 64*48*4)
	e.Draw(caller)
	fb := e.DrawFrame()
	if &fb.Pix[0] == &caller[0] {
		t.Error("DrawFrame rendered into the caller's buffer")
	}

	if err := e.Resize(32, 20); err != nil {
		t.Fatal(err)
	}
	if w, h := e.Size(); w != 32 || h != 20 {
		t.Errorf("Size = %dx%d, want 32x20", w, h)
	}
	fb = e.DrawFrame()
	if fb.Width != 32 || fb.Height != 20 || len(fb.Pix) != 32*20*4 {
		t.Errorf("framebuffer = %dx%d (%d bytes)", fb.Width, fb.Height, len(fb.Pix))
	}
	if err := e.Resize(0, 10); err == nil {
		t.Error("expected error for zero width")
	}
}

func BenchmarkFrame(b *testing.B) {
	e, err := New(DefaultConfig(), models.Cube(), render.NewCheckerTexture(64, 64, 8, render.ColorWhite, render.ColorRed))
	if err != nil {
		b.Fatal(err)
	}
	frame := make([]byte, 256*240*4)
	for b.Loop() {
		e.Update(1.0/60, Input{TurnLeft: true})
		e.Draw(frame)
	}
}
