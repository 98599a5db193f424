package render

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

// Mode selects how visibility is resolved between triangles.
type Mode int

const (
	// ModeTextured fills from a sampler and resolves visibility per pixel
	// with a 1/w depth buffer. Draw order does not matter.
	ModeTextured Mode = iota
	// ModeFlat fills with the lit face color and sorts triangles back to
	// front by average view-space depth (painter's algorithm). The sort is
	// an approximation: interpenetrating or cyclically overlapping
	// triangles can come out in the wrong order.
	ModeFlat
)

func (m Mode) String() string {
	switch m {
	case ModeTextured:
		return "textured"
	case ModeFlat:
		return "flat"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "textured" or "flat".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "textured":
		return ModeTextured, nil
	case "flat":
		return ModeFlat, nil
	default:
		return 0, fmt.Errorf("unknown render mode %q", s)
	}
}

// Options configure a Renderer.
type Options struct {
	FOV   float64     // Field of view in degrees
	Near  float64     // Near plane distance in view space
	Far   float64     // Far plane distance
	Light math3d.Vec3 // Direction towards the light, normalized on use

	Mode       Mode
	Shade      bool  // Modulate texels by the lit face color
	Wireframe  bool  // Outline every rasterized triangle
	WireColor  Color // Outline color
	Background Color // Clear color
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		FOV:        90,
		Near:       0.1,
		Far:        1000,
		Light:      math3d.Dir3(0, 1, -1),
		Mode:       ModeTextured,
		WireColor:  ColorBlack,
		Background: ColorBlack,
	}
}

// FrameStats counts what happened to the triangles of one frame.
type FrameStats struct {
	Rejected    int // Skipped with their mesh, whose bounds are outside the view
	Submitted   int // Triangles handed to Submit
	Culled      int // Facing away from the camera, or degenerate
	NearClipped int // Entirely in front of the near plane
	Projected   int // Pieces that survived the near plane
	Rasterized  int // Pieces that survived the screen edges and were filled
}

// queued is a projected triangle waiting to be rasterized, with the
// view-space depth used by the painter's sort.
type queued struct {
	tri   models.Triangle
	depth float64
}

// Renderer runs the transform, clip and fill pipeline into a framebuffer.
// It is single-threaded: one Begin, any number of Submit calls and one
// Flush make a frame.
type Renderer struct {
	opts  Options
	light math3d.Vec3
	near  Plane

	fb      *Framebuffer
	depth   *DepthBuffer
	proj    math3d.Mat4
	clipper *screenClipper

	queue  []queued
	pieces []models.Triangle
	stats  FrameStats
}

// NewRenderer creates a renderer drawing into fb.
func NewRenderer(fb *Framebuffer, opts Options) *Renderer {
	r := &Renderer{
		opts:  opts,
		light: opts.Light.Normalize(),
		near:  nearPlane(opts.Near),
		depth: NewDepthBuffer(fb.Width, fb.Height),
	}
	r.SetFramebuffer(fb)
	return r
}

// SetFramebuffer retargets the renderer. The projection and the screen
// clip planes follow the new size.
func (r *Renderer) SetFramebuffer(fb *Framebuffer) {
	r.fb = fb
	r.depth.resize(fb.Width, fb.Height)
	aspect := float64(fb.Height) / float64(fb.Width)
	r.proj = math3d.Projection(r.opts.FOV, aspect, r.opts.Near, r.opts.Far)
	r.clipper = newScreenClipper(fb.Width, fb.Height)
}

// Framebuffer returns the current target.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

// Depth returns the depth buffer of the textured mode.
func (r *Renderer) Depth() *DepthBuffer {
	return r.depth
}

// Options returns the renderer configuration.
func (r *Renderer) Options() Options {
	return r.opts
}

// Stats returns the counters of the last frame.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// Begin starts a frame: the framebuffer is cleared to the background, the
// depth buffer is reset to 0 and the counters restart.
func (r *Renderer) Begin() {
	r.fb.Clear(r.opts.Background)
	r.depth.Reset()
	r.queue = r.queue[:0]
	r.stats = FrameStats{}
}

// Submit carries one model-space triangle through world transform, back-face
// culling, lighting, view transform, near clipping and projection. The
// surviving pieces are queued for Flush.
func (r *Renderer) Submit(tri models.Triangle, world, view math3d.Mat4, camPos math3d.Vec3) {
	r.stats.Submitted++

	t := tri.Transform(world)

	cross := t.P[1].Sub(t.P[0]).Cross(t.P[2].Sub(t.P[0]))
	l := cross.Len()
	if l == 0 {
		r.stats.Culled++
		return
	}
	normal := cross.Div(l)
	if normal.Dot(t.P[0].Sub(camPos)) >= 0 {
		r.stats.Culled++
		return
	}

	intensity := max(r.light.Dot(normal), 0.1)
	t.Color = litColor(t.Color, intensity)

	t = t.Transform(view)

	n, pieces := ClipTriangle(r.near, t)
	if n == 0 {
		r.stats.NearClipped++
		return
	}
	for _, piece := range pieces[:n] {
		r.stats.Projected++
		r.queue = append(r.queue, queued{
			tri:   r.project(piece),
			depth: piece.AverageZ(),
		})
	}
}

// project maps a view-space triangle to pixel coordinates. Texture u and v
// are divided by the projected w and the texture w becomes 1/w.
func (r *Renderer) project(t models.Triangle) models.Triangle {
	width, height := float64(r.fb.Width), float64(r.fb.Height)
	for i := range 3 {
		p := r.proj.MulVec(t.P[i])
		if w := p.W; w != 0 {
			tc := t.T[i]
			t.T[i] = math3d.Vec2{U: tc.U / w, V: tc.V / w, W: 1 / w}
		}
		p = p.PerspectiveDivide()

		t.P[i] = math3d.V3(
			(1-p.X)*0.5*width,
			(1-p.Y)*0.5*height,
			p.Z,
		)
	}
	return t
}

// Flush rasterizes the queued triangles. In flat mode they are first sorted
// back to front; in textured mode tex is sampled (a nil tex paints each
// triangle with its lit color) under the depth test.
func (r *Renderer) Flush(tex Sampler) {
	if r.opts.Mode == ModeFlat {
		slices.SortStableFunc(r.queue, func(a, b queued) int {
			return cmp.Compare(b.depth, a.depth)
		})
	}

	for _, q := range r.queue {
		r.pieces = r.clipper.clip(q.tri, r.pieces[:0])
		for _, p := range r.pieces {
			r.stats.Rasterized++
			r.fill(p, tex)
			if r.opts.Wireframe {
				DrawTriangleOutline(r.fb, p, r.opts.WireColor)
			}
		}
	}
	r.queue = r.queue[:0]

	Logger().Debug("frame rendered",
		"mode", r.opts.Mode,
		"rejected", r.stats.Rejected,
		"submitted", r.stats.Submitted,
		"culled", r.stats.Culled,
		"near_clipped", r.stats.NearClipped,
		"projected", r.stats.Projected,
		"rasterized", r.stats.Rasterized)
}

func (r *Renderer) fill(p models.Triangle, tex Sampler) {
	if r.opts.Mode == ModeFlat {
		FillTriangle(r.fb, p, p.Color)
		return
	}

	if tex == nil {
		TexturedTriangle(r.fb, r.depth, p, Uniform{p.Color}, ColorWhite)
		return
	}
	tint := ColorWhite
	if r.opts.Shade {
		tint = p.Color
	}
	TexturedTriangle(r.fb, r.depth, p, tex, tint)
}

// Visible reports whether any part of mesh, placed by world, can be inside
// the view volume of view.
func (r *Renderer) Visible(mesh *models.Mesh, world, view math3d.Mat4) bool {
	if mesh.TriangleCount() == 0 {
		return false
	}
	frustum := NewFrustumFromMatrix(view.Mul(r.proj))
	return frustum.IntersectAABB(MeshBounds(mesh).Transform(world))
}

// DrawMesh renders one frame of mesh placed by world and seen from cam.
// A mesh whose bounds are entirely outside the view is skipped whole.
func (r *Renderer) DrawMesh(mesh *models.Mesh, world math3d.Mat4, cam *Camera, tex Sampler) FrameStats {
	r.Begin()
	view := cam.ViewMatrix()
	if !r.Visible(mesh, world, view) {
		r.stats.Rejected = mesh.TriangleCount()
	} else {
		pos := cam.Position()
		for i := range mesh.TriangleCount() {
			r.Submit(mesh.Triangle(i), world, view, pos)
		}
	}
	r.Flush(tex)
	return r.stats
}

// litColor shades a face color by a light intensity. White faces map onto
// the gray ramp; colored faces are scaled per channel.
func litColor(c Color, intensity float64) Color {
	if c == ColorWhite {
		return Gray(intensity)
	}
	return MultiplyColor(c, intensity)
}
