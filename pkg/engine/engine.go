// Package engine sequences one frame of the scanline renderer: it consumes
// elapsed time and a snapshot of held keys to move the camera and advance
// the model animation, then draws the mesh into a caller-owned RGBA buffer.
package engine

import (
	"fmt"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// Config holds the frame size, the renderer options and the motion tuning.
type Config struct {
	Width  int
	Height int
	Render render.Options

	Distance  float64 // Model distance along +Z
	Spin      float64 // Animation speed in rad/s
	MoveSpeed float64 // Camera speed in units/s
	TurnSpeed float64 // Camera yaw speed in rad/s

	// Smoothing is the angular frequency of the springs easing camera
	// velocity toward the held keys. Zero moves at full speed immediately.
	Smoothing float64
}

// DefaultConfig returns a 256x240 frame with the default render options.
func DefaultConfig() Config {
	return Config{
		Width:     256,
		Height:    240,
		Render:    render.DefaultOptions(),
		Distance:  5,
		Spin:      1,
		MoveSpeed: 8,
		TurnSpeed: 2,
	}
}

// Input is the set of movement keys held during a frame.
type Input struct {
	Up, Down            bool
	Left, Right         bool
	Forward, Back       bool
	TurnLeft, TurnRight bool
}

// Engine owns the camera, the animation angle and the renderer for one mesh.
type Engine struct {
	cfg      Config
	mesh     *models.Mesh
	tex      render.Sampler
	cam      *render.Camera
	fb       *render.Framebuffer
	own      []byte
	renderer *render.Renderer
	motion   motion

	theta float64
	stats render.FrameStats
}

// New creates an engine drawing mesh. A nil tex draws every face in its lit
// color.
func New(cfg Config, mesh *models.Mesh, tex *render.Texture) (*Engine, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("frame size %dx%d must be positive", cfg.Width, cfg.Height)
	}
	if mesh == nil {
		return nil, fmt.Errorf("engine needs a mesh")
	}

	fb := render.NewFramebuffer(cfg.Width, cfg.Height)
	e := &Engine{
		cfg:      cfg,
		mesh:     mesh,
		cam:      render.NewCamera(),
		fb:       fb,
		own:      fb.Pix,
		renderer: render.NewRenderer(fb, cfg.Render),
		motion:   newMotion(cfg.Smoothing),
	}
	if tex != nil {
		e.tex = tex
	}

	render.Logger().Info("engine ready",
		"mesh", mesh.Name,
		"triangles", mesh.TriangleCount(),
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"mode", cfg.Render.Mode)
	return e, nil
}

// Camera returns the engine camera.
func (e *Engine) Camera() *render.Camera {
	return e.cam
}

// Stats returns the counters of the last drawn frame.
func (e *Engine) Stats() render.FrameStats {
	return e.stats
}

// Angle returns the current animation angle in radians.
func (e *Engine) Angle() float64 {
	return e.theta
}

// Size returns the frame size Draw expects.
func (e *Engine) Size() (int, int) {
	return e.cfg.Width, e.cfg.Height
}

// Resize changes the frame size. The projection follows the new aspect.
func (e *Engine) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("frame size %dx%d must be positive", width, height)
	}
	if width == e.cfg.Width && height == e.cfg.Height {
		return nil
	}
	e.cfg.Width, e.cfg.Height = width, height
	e.fb = render.NewFramebuffer(width, height)
	e.own = e.fb.Pix
	e.renderer.SetFramebuffer(e.fb)
	render.Logger().Info("engine resized", "width", width, "height", height)
	return nil
}

// Update advances the animation by dt seconds and moves the camera from
// the held keys. Up and Down move along Y, Left and Right along X, Forward
// and Back along the look direction; TurnLeft decreases the yaw.
func (e *Engine) Update(dt float64, in Input) {
	if dt <= 0 {
		return
	}

	move, turn := e.cfg.MoveSpeed, e.cfg.TurnSpeed
	target := velocity{
		x:       axis(in.Right, in.Left) * move,
		y:       axis(in.Up, in.Down) * move,
		forward: axis(in.Forward, in.Back) * move,
		yaw:     axis(in.TurnRight, in.TurnLeft) * turn,
	}
	v := e.motion.update(dt, target)

	e.cam.Turn(v.yaw * dt)
	d := math3d.Dir3(v.x*dt, v.y*dt, 0).Add(e.cam.LookDir().Scale(v.forward * dt))
	e.cam.Move(d)

	e.theta += e.cfg.Spin * dt
}

// axis maps a pair of opposing keys to +1, -1 or 0.
func axis(pos, neg bool) float64 {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	}
	return 0
}

// World returns the model matrix of the current animation angle:
// RotateZ(θ)·RotateX(θ/2)·Translate(0, 0, distance).
func (e *Engine) World() math3d.Mat4 {
	return math3d.RotateZ(e.theta).
		Mul(math3d.RotateX(e.theta * 0.5)).
		Mul(math3d.Translate(0, 0, e.cfg.Distance))
}

// Draw renders one frame into frame, which must hold exactly
// Width*Height*4 bytes of RGBA8. A buffer of any other size is left
// untouched and the frame is skipped.
func (e *Engine) Draw(frame []byte) {
	if want := e.cfg.Width * e.cfg.Height * 4; len(frame) != want {
		render.Logger().Warn("frame skipped: buffer size mismatch",
			"got", len(frame), "want", want)
		return
	}

	e.fb.Pix = frame
	e.stats = e.renderer.DrawMesh(e.mesh, e.World(), e.cam, e.tex)
}

// DrawFrame renders into the engine's own buffer and returns it. The
// result is valid until the next Draw, DrawFrame or Resize.
func (e *Engine) DrawFrame() *render.Framebuffer {
	e.fb.Pix = e.own
	e.stats = e.renderer.DrawMesh(e.mesh, e.World(), e.cam, e.tex)
	return e.fb
}
