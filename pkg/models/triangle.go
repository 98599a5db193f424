package models

import (
	"image/color"

	"github.com/taigrr/scanline/pkg/math3d"
)

// White is the default flat color of a new triangle.
var White = color.RGBA{255, 255, 255, 255}

// Triangle is a value type: three positions, three co-indexed texture
// coordinates and one flat color. Pipeline stages return new triangles
// instead of mutating their input.
type Triangle struct {
	P     [3]math3d.Vec3
	T     [3]math3d.Vec2
	Color color.RGBA
}

// NewTriangle creates an untextured white triangle.
func NewTriangle(p0, p1, p2 math3d.Vec3) Triangle {
	return Triangle{
		P:     [3]math3d.Vec3{p0, p1, p2},
		T:     [3]math3d.Vec2{math3d.V2(0, 0), math3d.V2(0, 0), math3d.V2(0, 0)},
		Color: White,
	}
}

// NewTexturedTriangle creates a white triangle with texture coordinates.
func NewTexturedTriangle(p0, p1, p2 math3d.Vec3, t0, t1, t2 math3d.Vec2) Triangle {
	return Triangle{
		P:     [3]math3d.Vec3{p0, p1, p2},
		T:     [3]math3d.Vec2{t0, t1, t2},
		Color: White,
	}
}

// Transform returns the triangle with every position multiplied by m.
func (t Triangle) Transform(m math3d.Mat4) Triangle {
	for i := range t.P {
		t.P[i] = m.MulVec(t.P[i])
	}
	return t
}

// Normal returns the unit face normal cross(p1-p0, p2-p0).
// Degenerate triangles have no normal; callers must not pass them.
func (t Triangle) Normal() math3d.Vec3 {
	line1 := t.P[1].Sub(t.P[0])
	line2 := t.P[2].Sub(t.P[0])
	return line1.Cross(line2).Normalize()
}

// AverageZ returns the mean Z of the three positions.
func (t Triangle) AverageZ() float64 {
	return (t.P[0].Z + t.P[1].Z + t.P[2].Z) / 3
}

// WithColor returns a copy of the triangle with a new flat color.
func (t Triangle) WithColor(c color.RGBA) Triangle {
	t.Color = c
	return t
}
