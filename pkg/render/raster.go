package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/models"
)

// scanVertex is a screen-space vertex: integer pixel position plus the
// perspective-encoded texture attributes (u/w, v/w, 1/w).
type scanVertex struct {
	x, y    int
	u, v, w float64
}

func scanVertices(tri models.Triangle) [3]scanVertex {
	var out [3]scanVertex
	for i := range 3 {
		out[i] = scanVertex{
			x: int(tri.P[i].X),
			y: int(tri.P[i].Y),
			u: tri.T[i].U,
			v: tri.T[i].V,
			w: tri.T[i].W,
		}
	}
	return out
}

// sortByY returns the vertices ordered by ascending y. Equal y keeps the
// input order.
func sortByY(in [3]scanVertex) [3]scanVertex {
	a, b, c := in[0], in[1], in[2]
	if b.y < a.y {
		a, b = b, a
	}
	if c.y < b.y {
		b, c = c, b
		if b.y < a.y {
			a, b = b, a
		}
	}
	return [3]scanVertex{a, b, c}
}

// edgeStep is the per-scanline increment of every attribute along an edge.
type edgeStep struct {
	x, u, v, w float64
}

func stepBetween(a, b scanVertex) edgeStep {
	dy := b.y - a.y
	if dy == 0 {
		return edgeStep{}
	}
	n := math.Abs(float64(dy))
	return edgeStep{
		x: float64(b.x-a.x) / n,
		u: (b.u - a.u) / n,
		v: (b.v - a.v) / n,
		w: (b.w - a.w) / n,
	}
}

// spanEnd is one end of a scanline span.
type spanEnd struct {
	x       int
	u, v, w float64
}

func (s edgeStep) at(origin scanVertex, y int) spanEnd {
	d := float64(y - origin.y)
	return spanEnd{
		x: int(float64(origin.x) + d*s.x),
		u: origin.u + d*s.u,
		v: origin.v + d*s.v,
		w: origin.w + d*s.w,
	}
}

// scanTriangle walks the triangle top to bottom in two halves, [y0,y1] and
// [y1,y2] of the y-sorted vertices, and calls span for every scanline with
// a <= b. The span covers pixels [a.x, b.x).
func scanTriangle(tri models.Triangle, span func(y int, a, b spanEnd)) {
	p := sortByY(scanVertices(tri))

	long := stepBetween(p[0], p[2])

	emit := func(y int, a, b spanEnd) {
		if a.x > b.x {
			a, b = b, a
		}
		span(y, a, b)
	}

	if p[1].y != p[0].y {
		upper := stepBetween(p[0], p[1])
		for y := p[0].y; y <= p[1].y; y++ {
			emit(y, upper.at(p[0], y), long.at(p[0], y))
		}
	}

	if p[2].y != p[1].y {
		lower := stepBetween(p[1], p[2])
		for y := p[1].y; y <= p[2].y; y++ {
			emit(y, lower.at(p[1], y), long.at(p[0], y))
		}
	}
}

// FillTriangle fills a screen-space triangle with a flat color.
// Pixels outside the framebuffer are skipped.
func FillTriangle(fb *Framebuffer, tri models.Triangle, c Color) {
	scanTriangle(tri, func(y int, a, b spanEnd) {
		if y < 0 || y >= fb.Height {
			return
		}
		for x := a.x; x < b.x; x++ {
			fb.SetPixel(x, y, c)
		}
	})
}

// TexturedTriangle fills a projected triangle from tex with
// perspective-correct texture coordinates. A pixel is written only when its
// interpolated 1/w is greater than the value in depth, which is then
// updated. Every texel is modulated by tint unless tint is opaque white.
func TexturedTriangle(fb *Framebuffer, depth *DepthBuffer, tri models.Triangle, tex Sampler, tint Color) {
	modulate := tint != ColorWhite

	scanTriangle(tri, func(y int, a, b spanEnd) {
		if y < 0 || y >= fb.Height || y >= depth.Height || b.x <= a.x {
			return
		}

		tstep := 1 / float64(b.x-a.x)
		t := 0.0
		for x := a.x; x < b.x; x, t = x+1, t+tstep {
			if x < 0 || x >= fb.Width || x >= depth.Width {
				continue
			}
			texW := (1-t)*a.w + t*b.w
			if !depth.test(x, y, texW) {
				continue
			}
			texU := (1-t)*a.u + t*b.u
			texV := (1-t)*a.v + t*b.v

			c := sample(tex, texU/texW, texV/texW)
			if modulate {
				c = ModulateColor(c, tint)
			}
			fb.SetPixel(x, y, c)
		}
	})
}
