package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func nearVec(a, b Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z) && near(a.W, b.W)
}

func TestVectorOpsProduceDirections(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)

	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"add", a.Add(b), Dir3(5, 7, 9)},
		{"sub", b.Sub(a), Dir3(3, 3, 3)},
		{"scale", a.Scale(2), Dir3(2, 4, 6)},
		{"div", b.Div(2), Dir3(2, 2.5, 3)},
		{"cross", Dir3(1, 0, 0).Cross(Dir3(0, 1, 0)), Dir3(0, 0, 1)},
		{"normalize", Dir3(0, 3, 4).Normalize(), Dir3(0, 0.6, 0.8)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !nearVec(tc.got, tc.want) {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	if V3(1, 2, 3).W != 1 {
		t.Error("V3 should build a point with W=1")
	}
	if Dir3(1, 2, 3).W != 0 {
		t.Error("Dir3 should build a direction with W=0")
	}
	if V2(0.5, 0.25).W != 1 {
		t.Error("V2 should start with W=1")
	}
	if got := Dir3(1, 2, 3).AsPoint(); got.W != 1 || got.X != 1 {
		t.Errorf("AsPoint = %v", got)
	}
}

func TestDotAndLen(t *testing.T) {
	a := V3(1, 2, 3)
	if got := a.Dot(V3(4, -5, 6)); got != 12 {
		t.Errorf("Dot = %v, want 12", got)
	}
	if got := Dir3(3, 4, 0).Len(); got != 5 {
		t.Errorf("Len = %v, want 5", got)
	}
}

func TestLerpKeepsPoints(t *testing.T) {
	got := V3(0, 0, -1).Lerp(V3(0, 0, 1), 0.5)
	if got.Z != 0 || got.W != 1 {
		t.Errorf("Lerp midpoint = %v, want z=0 w=1", got)
	}

	uv := V2(0, 1).Lerp(Vec2{1, 0, 3}, 0.25)
	if !near(uv.U, 0.25) || !near(uv.V, 0.75) || !near(uv.W, 1.5) {
		t.Errorf("Vec2.Lerp = %v", uv)
	}
}

func TestPerspectiveDivide(t *testing.T) {
	got := Vec3{2, 4, 6, 2}.PerspectiveDivide()
	if !nearVec(got, V3(1, 2, 3)) {
		t.Errorf("PerspectiveDivide = %v", got)
	}

	zero := Vec3{2, 4, 6, 0}.PerspectiveDivide()
	if zero.X != 2 || zero.Y != 4 || zero.Z != 6 {
		t.Errorf("zero W should leave coordinates unscaled, got %v", zero)
	}
	if math.IsInf(zero.X, 0) || math.IsNaN(zero.X) {
		t.Error("zero W produced a non-finite value")
	}
}

func TestMulVecAffine(t *testing.T) {
	m := Translate(10, 20, 30)

	p := m.MulVec(V3(1, 2, 3))
	if !nearVec(p, V3(11, 22, 33)) {
		t.Errorf("translated point = %v", p)
	}

	d := m.MulVec(Dir3(1, 2, 3))
	if !nearVec(d, Dir3(1, 2, 3)) {
		t.Errorf("translated direction = %v, want unchanged", d)
	}
}

func TestRotations(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"x quarter", RotateX(math.Pi / 2), V3(0, 1, 0), V3(0, 0, 1)},
		{"y quarter", RotateY(math.Pi / 2), V3(0, 0, 1), V3(-1, 0, 0)},
		{"z quarter", RotateZ(math.Pi / 2), V3(1, 0, 0), V3(0, 1, 0)},
		{"identity", Identity(), V3(1, 2, 3), V3(1, 2, 3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.m.MulVec(tc.in)
			if !nearVec(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMulOrder(t *testing.T) {
	// Rotate first, then translate.
	m := RotateZ(math.Pi / 2).Mul(Translate(5, 0, 0))
	got := m.MulVec(V3(1, 0, 0))
	if !nearVec(got, V3(5, 1, 0)) {
		t.Errorf("got %v, want (5, 1, 0)", got)
	}

	if Identity().Mul(m) != m {
		t.Error("identity should be neutral on the left")
	}
}

func TestProjectionEntries(t *testing.T) {
	fov, aspect, zn, zf := 90.0, 0.75, 0.1, 1000.0
	m := Projection(fov, aspect, zn, zf)
	fovRad := 1 / math.Tan(fov*0.5/180*math.Pi)

	want := Mat4{}
	want[0][0] = aspect * fovRad
	want[1][1] = fovRad
	want[2][2] = zf / (zf - zn)
	want[3][2] = -zf * zn / (zf - zn)
	want[2][3] = 1

	for r := range 4 {
		for c := range 4 {
			if !near(m[r][c], want[r][c]) {
				t.Errorf("m[%d][%d] = %v, want %v", r, c, m[r][c], want[r][c])
			}
		}
	}

	// Projected W is the view depth.
	p := m.MulVec(V3(1, 1, 4))
	if !near(p.W, 4) {
		t.Errorf("projected W = %v, want 4", p.W)
	}
}

func TestPointAtQuickInverse(t *testing.T) {
	pos := V3(1, 2, 3)
	target := V3(4, 0, 8)
	cam := PointAt(pos, target, Up())

	got := cam.QuickInverse().Mul(cam)
	want := Identity()
	for r := range 4 {
		for c := range 4 {
			if !near(got[r][c], want[r][c]) {
				t.Fatalf("inverse*cam[%d][%d] = %v, want %v", r, c, got[r][c], want[r][c])
			}
		}
	}

	// The view matrix puts the target straight ahead on +Z.
	view := cam.QuickInverse()
	v := view.MulVec(target)
	if !near(v.X, 0) || !near(v.Y, 0) || v.Z <= 0 {
		t.Errorf("target in view space = %v, want on +Z axis", v)
	}
	if origin := view.MulVec(pos); !nearVec(origin, V3(0, 0, 0)) {
		t.Errorf("eye in view space = %v, want origin", origin)
	}
}

func TestTranspose(t *testing.T) {
	m := Translate(1, 2, 3)
	tr := m.Transpose()
	if tr[0][3] != 1 || tr[1][3] != 2 || tr[2][3] != 3 {
		t.Errorf("Transpose = %v", tr)
	}
	if tr.Transpose() != m {
		t.Error("double transpose should be identity")
	}
}
