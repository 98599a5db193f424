package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
)

// Camera is a first-person camera: a world position and a yaw around the
// Y axis. It looks down +Z at yaw 0.
type Camera struct {
	position math3d.Vec3
	yaw      float64

	// Cached view matrix (computed on demand)
	view      math3d.Mat4
	viewDirty bool
}

// NewCamera creates a camera at the origin looking down +Z.
func NewCamera() *Camera {
	return &Camera{
		position:  math3d.Zero3(),
		viewDirty: true,
	}
}

// Position returns the camera position.
func (c *Camera) Position() math3d.Vec3 {
	return c.position
}

// Yaw returns the rotation around Y in radians.
func (c *Camera) Yaw() float64 {
	return c.yaw
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.position = pos.AsPoint()
	c.viewDirty = true
}

// SetYaw sets the rotation around Y in radians.
func (c *Camera) SetYaw(yaw float64) {
	c.yaw = yaw
	c.viewDirty = true
}

// Move translates the camera by d.
func (c *Camera) Move(d math3d.Vec3) {
	c.SetPosition(c.position.Add(d))
}

// Turn adds delta radians to the yaw.
func (c *Camera) Turn(delta float64) {
	c.SetYaw(c.yaw + delta)
}

// LookDir returns the unit view direction, RotateY(yaw) applied to +Z.
func (c *Camera) LookDir() math3d.Vec3 {
	return math3d.RotateY(c.yaw).MulVec(math3d.Forward())
}

// ViewMatrix returns the world-to-camera matrix, the quick inverse of the
// point-at matrix for the current position and look direction.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		target := c.position.Add(c.LookDir()).AsPoint()
		c.view = math3d.PointAt(c.position, target, math3d.Up()).QuickInverse()
		c.viewDirty = false
	}
	return c.view
}
