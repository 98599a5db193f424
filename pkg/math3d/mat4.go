package math3d

import "math"

// Mat4 is a 4x4 matrix indexed m[row][col] using the row-vector convention:
// a vector is transformed as v' = v × M, so translation lives in row 3.
//
// For an affine transform:
// | Xx Xy Xz 0 |   X,Y,Z = basis vectors (rotation/scale)
// | Yx Yy Yz 0 |   T = translation
// | Zx Zy Zz 0 |
// | Tx Ty Tz 1 |
//
// Factories leave every entry they do not set at 0.
type Mat4 [4][4]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	var m Mat4
	m[0][0] = 1
	m[1][1] = 1
	m[2][2] = 1
	m[3][3] = 1
	return m
}

// RotateX creates a rotation matrix around the X axis.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	var m Mat4
	m[0][0] = 1
	m[1][1] = c
	m[1][2] = s
	m[2][1] = -s
	m[2][2] = c
	m[3][3] = 1
	return m
}

// RotateY creates a rotation matrix around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	var m Mat4
	m[0][0] = c
	m[0][2] = s
	m[2][0] = -s
	m[1][1] = 1
	m[2][2] = c
	m[3][3] = 1
	return m
}

// RotateZ creates a rotation matrix around the Z axis.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	var m Mat4
	m[0][0] = c
	m[0][1] = s
	m[1][0] = -s
	m[1][1] = c
	m[2][2] = 1
	m[3][3] = 1
	return m
}

// Translate creates a translation matrix.
func Translate(x, y, z float64) Mat4 {
	m := Identity()
	m[3][0] = x
	m[3][1] = y
	m[3][2] = z
	return m
}

// Projection creates a left-handed perspective projection matrix.
// fovDeg is the field of view in degrees and aspect is height/width.
// The projected W carries the view-space depth.
func Projection(fovDeg, aspect, near, far float64) Mat4 {
	fovRad := 1.0 / math.Tan(fovDeg*0.5/180.0*math.Pi)
	var m Mat4
	m[0][0] = aspect * fovRad
	m[1][1] = fovRad
	m[2][2] = far / (far - near)
	m[3][2] = (-far * near) / (far - near)
	m[2][3] = 1
	m[3][3] = 0
	return m
}

// PointAt builds the camera basis matrix for an eye at pos looking at target.
// up is re-orthogonalized against the forward direction.
func PointAt(pos, target, up Vec3) Mat4 {
	forward := target.Sub(pos).Normalize()

	// Remove the forward component from up (Gram-Schmidt)
	a := forward.Scale(up.Dot(forward))
	newUp := up.Sub(a).Normalize()

	right := newUp.Cross(forward)

	return Mat4{
		{right.X, right.Y, right.Z, 0},
		{newUp.X, newUp.Y, newUp.Z, 0},
		{forward.X, forward.Y, forward.Z, 0},
		{pos.X, pos.Y, pos.Z, 1},
	}
}

// QuickInverse inverts a rotation+translation matrix by transposing the
// rotation block and back-projecting the translation. It is not a general
// inverse: scale, shear or projection terms give wrong results.
func (m Mat4) QuickInverse() Mat4 {
	var r Mat4
	r[0][0], r[0][1], r[0][2] = m[0][0], m[1][0], m[2][0]
	r[1][0], r[1][1], r[1][2] = m[0][1], m[1][1], m[2][1]
	r[2][0], r[2][1], r[2][2] = m[0][2], m[1][2], m[2][2]
	r[3][0] = -(m[3][0]*r[0][0] + m[3][1]*r[1][0] + m[3][2]*r[2][0])
	r[3][1] = -(m[3][0]*r[0][1] + m[3][1]*r[1][1] + m[3][2]*r[2][1])
	r[3][2] = -(m[3][0]*r[0][2] + m[3][1]*r[1][2] + m[3][2]*r[2][2])
	r[3][3] = 1
	return r
}

// Mul multiplies two matrices: a × b. With row vectors, v × (a × b)
// applies a first and then b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for row := range 4 {
		for col := range 4 {
			m[row][col] = a[row][0]*b[0][col] +
				a[row][1]*b[1][col] +
				a[row][2]*b[2][col] +
				a[row][3]*b[3][col]
		}
	}
	return m
}

// MulVec transforms v by m (v × m) using all four components.
// Points (W=1) pick up translation and directions (W=0) do not.
func (m Mat4) MulVec(v Vec3) Vec3 {
	return Vec3{
		X: v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0] + v.W*m[3][0],
		Y: v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1] + v.W*m[3][1],
		Z: v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2] + v.W*m[3][2],
		W: v.X*m[0][3] + v.Y*m[1][3] + v.Z*m[2][3] + v.W*m[3][3],
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for row := range 4 {
		for col := range 4 {
			t[row][col] = m[col][row]
		}
	}
	return t
}
