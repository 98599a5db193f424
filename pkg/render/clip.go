package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

// Plane is a clipping plane. Points with a non-negative signed distance are
// inside.
type Plane struct {
	Point  math3d.Vec3
	Normal math3d.Vec3
}

// NewPlane creates a plane with a normalized normal.
func NewPlane(point, normal math3d.Vec3) Plane {
	return Plane{Point: point, Normal: normal.Normalize()}
}

// Distance returns the signed distance of v from the plane.
// The normal must be unit length.
func (p Plane) Distance(v math3d.Vec3) float64 {
	return p.Normal.Dot(v) - p.Normal.Dot(p.Point)
}

// IntersectPlane returns where the segment start->end crosses the plane
// and the segment parameter t of that point. The normal must be unit length.
func IntersectPlane(p Plane, start, end math3d.Vec3) (math3d.Vec3, float64) {
	planeD := -p.Normal.Dot(p.Point)
	ad := start.Dot(p.Normal)
	bd := end.Dot(p.Normal)
	t := (-planeD - ad) / (bd - ad)
	return start.Lerp(end, t), t
}

// clipVertex pairs a position with its co-indexed texture coordinate.
type clipVertex struct {
	p math3d.Vec3
	t math3d.Vec2
}

// clipBucket is a fixed-capacity list of up to three vertices.
type clipBucket struct {
	n     int
	items [3]clipVertex
}

func (b *clipBucket) push(v clipVertex) {
	b.items[b.n] = v
	b.n++
}

// ClipTriangle clips tri against p and returns how many triangles survive
// (0, 1 or 2) together with them. A vertex on the plane counts as inside.
//
//	inside outside  result
//	0      3        nothing
//	3      0        tri unchanged
//	1      2        (in0, x(in0,out0), x(in0,out1))
//	2      1        (in0, in1, x(in0,out0)) and (in1, x(in0,out0), x(in1,out0))
//
// New vertices interpolate texture coordinates with the same t as their
// position. Outputs keep the color of tri.
func ClipTriangle(p Plane, tri models.Triangle) (int, [2]models.Triangle) {
	p.Normal = p.Normal.Normalize()

	var in, out clipBucket
	for i := range 3 {
		v := clipVertex{tri.P[i], tri.T[i]}
		if p.Distance(v.p) >= 0 {
			in.push(v)
		} else {
			out.push(v)
		}
	}

	var res [2]models.Triangle
	switch in.n {
	case 0:
		return 0, res

	case 3:
		res[0] = tri
		return 1, res

	case 1:
		a := in.items[0]
		b := intersect(p, a, out.items[0])
		c := intersect(p, a, out.items[1])
		res[0] = assemble(tri, a, b, c)
		return 1, res

	default:
		a, b := in.items[0], in.items[1]
		c := intersect(p, a, out.items[0])
		d := intersect(p, b, out.items[0])
		res[0] = assemble(tri, a, b, c)
		res[1] = assemble(tri, b, c, d)
		return 2, res
	}
}

func intersect(p Plane, in, out clipVertex) clipVertex {
	pos, t := IntersectPlane(p, in.p, out.p)
	return clipVertex{pos, in.t.Lerp(out.t, t)}
}

func assemble(src models.Triangle, a, b, c clipVertex) models.Triangle {
	return models.Triangle{
		P:     [3]math3d.Vec3{a.p, b.p, c.p},
		T:     [3]math3d.Vec2{a.t, b.t, c.t},
		Color: src.Color,
	}
}

// nearPlane returns the view-space near clipping plane at z = near.
func nearPlane(near float64) Plane {
	return Plane{Point: math3d.V3(0, 0, near), Normal: math3d.Dir3(0, 0, 1)}
}

// screenPlanes returns the four screen edges in clipping order: top row,
// bottom row, left column, right column.
func screenPlanes(width, height int) [4]Plane {
	w, h := float64(width-1), float64(height-1)
	return [4]Plane{
		{Point: math3d.V3(0, 0, 0), Normal: math3d.Dir3(0, 1, 0)},
		{Point: math3d.V3(0, h, 0), Normal: math3d.Dir3(0, -1, 0)},
		{Point: math3d.V3(0, 0, 0), Normal: math3d.Dir3(1, 0, 0)},
		{Point: math3d.V3(w, 0, 0), Normal: math3d.Dir3(-1, 0, 0)},
	}
}

// screenClipper clips projected triangles to the screen rectangle with a
// FIFO worklist. Its queue is reused across calls.
type screenClipper struct {
	planes [4]Plane
	queue  []models.Triangle
}

func newScreenClipper(width, height int) *screenClipper {
	return &screenClipper{planes: screenPlanes(width, height)}
}

// clip appends the pieces of tri that lie inside the screen to dst.
// Every triangle surviving plane k is processed before plane k+1.
func (c *screenClipper) clip(tri models.Triangle, dst []models.Triangle) []models.Triangle {
	c.queue = append(c.queue[:0], tri)
	for _, plane := range c.planes {
		// Drain exactly the triangles that entered this pass.
		for n := len(c.queue); n > 0; n-- {
			t := c.queue[0]
			c.queue = c.queue[1:]
			count, res := ClipTriangle(plane, t)
			c.queue = append(c.queue, res[:count]...)
		}
	}
	return append(dst, c.queue...)
}

// ClipToScreen returns the pieces of tri inside [0,width-1]x[0,height-1].
func ClipToScreen(tri models.Triangle, width, height int) []models.Triangle {
	return newScreenClipper(width, height).clip(tri, nil)
}
