// Package math3d provides the homogeneous vector and matrix primitives used by
// the scanline renderer.
//
// Vectors carry a W component. Points built with V3 have W=1 so that matrix
// multiplication applies translation; every arithmetic result (sum,
// difference, scale, cross product, normalization) is a direction with W=0.
package math3d

import "math"

// Vec3 represents a homogeneous 3D vector.
type Vec3 struct {
	X, Y, Z, W float64
}

// V3 creates a point (W=1).
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z, 1}
}

// Dir3 creates a direction (W=0).
func Dir3(x, y, z float64) Vec3 {
	return Vec3{x, y, z, 0}
}

// Zero3 returns the origin as a point.
func Zero3() Vec3 {
	return Vec3{W: 1}
}

// Up returns the world up direction (0, 1, 0).
func Up() Vec3 {
	return Vec3{0, 1, 0, 0}
}

// Forward returns the world forward direction (0, 0, 1).
// The renderer looks down +Z.
func Forward() Vec3 {
	return Vec3{0, 0, 1, 0}
}

// Add returns the vector sum a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z, 0}
}

// Sub returns the vector difference a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z, 0}
}

// Scale returns the scalar product a * s.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s, 0}
}

// Div returns the scalar division a / s.
func (a Vec3) Div(s float64) Vec3 {
	return Vec3{a.X / s, a.Y / s, a.Z / s, 0}
}

// Dot returns the dot product a · b of the XYZ parts.
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
		0,
	}
}

// Len returns the length of the XYZ part.
func (a Vec3) Len() float64 {
	return math.Sqrt(a.Dot(a))
}

// Normalize returns the unit direction of a.
// The caller guarantees a is not the zero vector.
func (a Vec3) Normalize() Vec3 {
	return a.Div(a.Len())
}

// AsPoint returns a copy of a with W=1.
func (a Vec3) AsPoint() Vec3 {
	a.W = 1
	return a
}

// Lerp interpolates all four components between a and b by t, so lerping
// two points yields a point.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	// Conversions stop the products fusing into FMA; plane intersections must land exactly.
	return Vec3{
		a.X + float64((b.X-a.X)*t),
		a.Y + float64((b.Y-a.Y)*t),
		a.Z + float64((b.Z-a.Z)*t),
		a.W + float64((b.W-a.W)*t),
	}
}

// PerspectiveDivide divides XYZ by W and returns a point.
// A zero W leaves the coordinates unscaled.
func (a Vec3) PerspectiveDivide() Vec3 {
	if a.W == 0 {
		return Vec3{a.X, a.Y, a.Z, 1}
	}
	return Vec3{a.X / a.W, a.Y / a.W, a.Z / a.W, 1}
}

// Min returns the component-wise minimum as a point.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z), 1}
}

// Max returns the component-wise maximum as a point.
func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z), 1}
}
