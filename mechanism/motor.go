package mechanism

import (
	"math"

	"github.com/katalvlaran/linkage/geom"
)

// Profile describes how a motor angle evolves over time.
//
//	continuous: angle(t) = Shift + Speed·t
//	servo:      angle(t) = ServoStart + (ServoEnd−ServoStart)·(1 − cos(Speed·t + Shift))/2
type Profile struct {
	Servo      bool
	Speed      float64
	Shift      float64
	ServoStart float64
	ServoEnd   float64
}

// DefaultProfile is a continuous drive at one radian per time unit.
// Its servo range is half a turn.
func DefaultProfile() Profile {
	return Profile{Speed: 1, ServoEnd: math.Pi}
}

// Motor drives an Angular constraint between two links about a revolute joint.
// The motor keeps its own angle; SetAngle feeds Angle − InitAngle into the drive.
type Motor struct {
	name      string
	joint     *Coaxial
	drive     *Angular
	angle     float64
	initAngle float64
	profile   Profile
}

// NewMotor returns a motor turning target relative to base about joint.
// The drive constraint starts at the current relative angle, which is also the
// initial motor angle.
func NewMotor(name string, joint *Coaxial, base, target *Link) *Motor {
	m := &Motor{
		name:    name,
		joint:   joint,
		drive:   NewAngular(name, base, target),
		profile: DefaultProfile(),
	}
	m.angle = m.drive.Angle()

	return m
}

func (m *Motor) element() {}

// Name returns the motor name.
func (m *Motor) Name() string { return m.name }

// SetName renames the motor.
func (m *Motor) SetName(name string) { m.name = name }

func (m *Motor) String() string { return m.name }

// DOF is 0; the motor's freedom budget is carried by its drive constraint.
func (m *Motor) DOF() int { return 0 }

// Joint returns the revolute joint the motor sits on.
func (m *Motor) Joint() *Coaxial { return m.joint }

// SetJoint moves the motor to another joint.
func (m *Motor) SetJoint(c *Coaxial) { m.joint = c }

// Drive returns the owned angular constraint.
func (m *Motor) Drive() *Angular { return m.drive }

// BaseLink returns the drive's reference link.
func (m *Motor) BaseLink() *Link { return m.drive.Base() }

// TargetLink returns the driven link.
func (m *Motor) TargetLink() *Link { return m.drive.Target() }

// Pivot returns the global position of the joint's first endpoint.
func (m *Motor) Pivot() geom.Point {
	if m.joint == nil || m.joint.Len() == 0 {
		return geom.Origin
	}

	return m.joint.GlobalPoint(0)
}

// Angle returns the motor angle.
func (m *Motor) Angle() float64 { return m.angle }

// SetAngle sets the motor angle and updates the drive constraint.
func (m *Motor) SetAngle(a float64) {
	m.angle = a
	m.drive.SetAngle(a - m.initAngle)
}

// InitAngle returns the motor angle that corresponds to a zero drive angle.
func (m *Motor) InitAngle() float64 { return m.initAngle }

// SetInitAngle changes the zero offset and re-applies the current angle.
func (m *Motor) SetInitAngle(a float64) {
	m.initAngle = a
	m.SetAngle(m.angle)
}

// Profile returns the drive profile.
func (m *Motor) Profile() Profile { return m.profile }

// SetProfile replaces the drive profile.
func (m *Motor) SetProfile(p Profile) { m.profile = p }

// AngleAt evaluates the drive profile at time t.
func (m *Motor) AngleAt(t float64) float64 {
	p := m.profile
	if p.Servo {
		return p.ServoStart + (p.ServoEnd-p.ServoStart)*(1-math.Cos(p.Speed*t+p.Shift))/2
	}

	return p.Shift + p.Speed*t
}
