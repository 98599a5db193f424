package engine

import "github.com/charmbracelet/harmonica"

// velocity is the camera motion for one frame: x and y in world units/s,
// forward along the look direction, yaw in rad/s.
type velocity struct {
	x, y, forward, yaw float64
}

// springAxis eases one velocity component toward its target.
type springAxis struct {
	value float64
	accel float64 // spring velocity of value
}

// motion smooths camera velocities with critically damped springs.
// A zero frequency disables smoothing.
type motion struct {
	freq float64

	x, y, forward, yaw springAxis

	// spring is rebuilt when the frame time changes.
	spring harmonica.Spring
	dt     float64
}

func newMotion(freq float64) motion {
	return motion{freq: freq}
}

// update moves every axis one step of dt seconds toward target and returns
// the resulting velocity.
func (m *motion) update(dt float64, target velocity) velocity {
	if m.freq <= 0 {
		return target
	}
	if dt != m.dt {
		// Damping 1.0 = critically damped (no overshoot)
		m.spring = harmonica.NewSpring(dt, m.freq, 1.0)
		m.dt = dt
	}

	m.x.step(m.spring, target.x)
	m.y.step(m.spring, target.y)
	m.forward.step(m.spring, target.forward)
	m.yaw.step(m.spring, target.yaw)
	return velocity{x: m.x.value, y: m.y.value, forward: m.forward.value, yaw: m.yaw.value}
}

func (a *springAxis) step(s harmonica.Spring, target float64) {
	a.value, a.accel = s.Update(a.value, a.accel, target)
}
