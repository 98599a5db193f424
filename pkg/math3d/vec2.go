package math3d

// Vec2 is a texture coordinate with a perspective weight.
// W starts at 1 and becomes 1/z_view once the owning vertex is projected.
type Vec2 struct {
	U, V, W float64
}

// V2 creates a texture coordinate with W=1.
func V2(u, v float64) Vec2 {
	return Vec2{u, v, 1}
}

// Lerp interpolates U, V and W independently by t.
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{
		a.U + float64((b.U-a.U)*t),
		a.V + float64((b.V-a.V)*t),
		a.W + float64((b.W-a.W)*t),
	}
}
