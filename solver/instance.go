package solver

import (
	"github.com/katalvlaran/linkage/geom"
	"github.com/katalvlaran/linkage/mechanism"
)

// coaxialInstance is a directional view of a revolute joint: endpoint base is
// already placed, endpoint target is being solved for. Instances are built
// fresh for every pass and never stored on the model.
type coaxialInstance struct {
	c      *mechanism.Coaxial
	base   int
	target int
}

func (ci coaxialInstance) inverse() coaxialInstance {
	return coaxialInstance{c: ci.c, base: ci.target, target: ci.base}
}

func (ci coaxialInstance) baseLink() *mechanism.Link   { return ci.c.Link(ci.base) }
func (ci coaxialInstance) targetLink() *mechanism.Link { return ci.c.Link(ci.target) }
func (ci coaxialInstance) basePoint() geom.Point       { return ci.c.Point(ci.base) }
func (ci coaxialInstance) targetPoint() geom.Point     { return ci.c.Point(ci.target) }

// angularInstance is a directional view of an angular constraint.
type angularInstance struct {
	c      *mechanism.Angular
	base   int
	target int
}

func (ai angularInstance) baseLink() *mechanism.Link   { return ai.c.Link(ai.base) }
func (ai angularInstance) targetLink() *mechanism.Link { return ai.c.Link(ai.target) }

// relativeAngle returns the rotation that brings the target link, as currently
// stored in its group frame, to the constrained angle relative to the base link.
func (ai angularInstance) relativeAngle() float64 {
	sign := 1.0
	if ai.target != mechanism.Target {
		sign = -1
	}

	return ai.baseLink().Angle() - ai.targetLink().Angle() + sign*ai.c.Angle()
}
