package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

// Frustum is the view volume as inward-facing planes. Planes are ordered:
// Left, Right, Bottom, Top, Near. There is no far plane because the
// pipeline never clips against far.
type Frustum struct {
	Planes [5]Plane
}

// FrustumPlane indices for clarity.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
)

// NewFrustumFromMatrix extracts frustum planes from a combined
// view-projection matrix (Gribb/Hartmann). With row vectors, clip-space
// component j is the dot product of the point with column j, so each plane
// is a sum or difference of columns. The projection maps the near plane
// to clip z = 0.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	col := func(j int) [4]float64 {
		return [4]float64{m[0][j], m[1][j], m[2][j], m[3][j]}
	}
	x, y, z, w := col(0), col(1), col(2), col(3)

	var f Frustum
	f.Planes[FrustumLeft] = planeFromCoeffs(add4(w, x))
	f.Planes[FrustumRight] = planeFromCoeffs(sub4(w, x))
	f.Planes[FrustumBottom] = planeFromCoeffs(add4(w, y))
	f.Planes[FrustumTop] = planeFromCoeffs(sub4(w, y))
	f.Planes[FrustumNear] = planeFromCoeffs(z)
	return f
}

func add4(a, b [4]float64) [4]float64 {
	return [4]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func sub4(a, b [4]float64) [4]float64 {
	return [4]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

// planeFromCoeffs converts ax + by + cz + d >= 0 to point-normal form.
func planeFromCoeffs(c [4]float64) Plane {
	n := math3d.Dir3(c[0], c[1], c[2])
	l := n.Len()
	if l == 0 {
		return Plane{Point: math3d.Zero3(), Normal: math3d.Forward()}
	}
	n = n.Div(l)
	d := c[3] / l
	return Plane{Point: n.Scale(-d).AsPoint(), Normal: n}
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// MeshBounds returns the bounding box of a mesh in model space.
func MeshBounds(m *models.Mesh) AABB {
	lo, hi := m.Bounds()
	return AABB{Min: lo, Max: hi}
}

// Transform returns an AABB that bounds the original AABB after transformation.
// This computes a new AABB that contains all 8 transformed corners.
func (b AABB) Transform(m math3d.Mat4) AABB {
	corners := [8]math3d.Vec3{
		math3d.V3(b.Min.X, b.Min.Y, b.Min.Z),
		math3d.V3(b.Max.X, b.Min.Y, b.Min.Z),
		math3d.V3(b.Min.X, b.Max.Y, b.Min.Z),
		math3d.V3(b.Max.X, b.Max.Y, b.Min.Z),
		math3d.V3(b.Min.X, b.Min.Y, b.Max.Z),
		math3d.V3(b.Max.X, b.Min.Y, b.Max.Z),
		math3d.V3(b.Min.X, b.Max.Y, b.Max.Z),
		math3d.V3(b.Max.X, b.Max.Y, b.Max.Z),
	}

	first := m.MulVec(corners[0])
	out := AABB{Min: first, Max: first}
	for _, c := range corners[1:] {
		t := m.MulVec(c)
		out.Min = out.Min.Min(t)
		out.Max = out.Max.Max(t)
	}
	return out
}

// ContainsPoint returns true if the point is inside the AABB.
func (b AABB) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// IntersectAABB tests if the AABB intersects or is inside the frustum.
// Uses the "positive vertex" optimization for faster rejection.
func (f Frustum) IntersectAABB(box AABB) bool {
	for _, plane := range f.Planes {
		// The corner furthest along the normal; if it is outside, every corner is.
		pVertex := math3d.V3(
			selectComponent(plane.Normal.X >= 0, box.Max.X, box.Min.X),
			selectComponent(plane.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			selectComponent(plane.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)
		if plane.Distance(pVertex) < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint tests if a point is inside the frustum.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for _, plane := range f.Planes {
		if plane.Distance(p) < 0 {
			return false
		}
	}
	return true
}

func selectComponent(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
