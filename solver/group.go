package solver

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/linkage/geom"
	"github.com/katalvlaran/linkage/mechanism"
)

// rigidGroup is a set of links whose relative poses are already fixed. Link
// poses of members are expressed in the group's own frame. relPos and relAngle
// are scratch values describing where the group lands in the frame of the
// group it is about to merge into.
type rigidGroup struct {
	links    []*mechanism.Link
	members  map[*mechanism.Link]struct{}
	relPos   geom.Point
	relAngle float64
}

func newGroup(l *mechanism.Link) *rigidGroup {
	return &rigidGroup{
		links:   []*mechanism.Link{l},
		members: map[*mechanism.Link]struct{}{l: {}},
	}
}

func (g *rigidGroup) has(l *mechanism.Link) bool {
	_, ok := g.members[l]

	return ok
}

// isBase reports whether the group contains the anchor.
func (g *rigidGroup) isBase() bool {
	for _, l := range g.links {
		if l.IsAnchor() {
			return true
		}
	}

	return false
}

// name identifies the group by its first link.
func (g *rigidGroup) name() string { return g.links[0].Name() }

// localPositionOf maps point p, local to member l, into the group frame.
func (g *rigidGroup) localPositionOf(l *mechanism.Link, p geom.Point) geom.Point {
	return l.GlobalPosition(p)
}

// zeroToPoint translates the group frame so that p becomes its origin.
func (g *rigidGroup) zeroToPoint(p geom.Point) {
	for _, l := range g.links {
		l.SetOrigin(r2.Sub(l.Origin(), p))
	}
}

// place maps every member through the pending rotation and translation.
func (g *rigidGroup) place() {
	for _, l := range g.links {
		l.SetOrigin(geom.Transform(l.Origin(), g.relAngle, g.relPos))
		l.SetAngle(l.Angle() + g.relAngle)
	}
	g.relPos, g.relAngle = geom.Origin, 0
}

// absorb places other into g's frame and takes over its links.
func (g *rigidGroup) absorb(other *rigidGroup) {
	other.place()
	for _, l := range other.links {
		g.links = append(g.links, l)
		g.members[l] = struct{}{}
	}
	other.links, other.members = nil, nil
}

// backToZero re-expresses the group in the anchor frame. The anchor ends
// exactly at the origin with angle 0.
func (g *rigidGroup) backToZero() {
	var anchor *mechanism.Link
	for _, l := range g.links {
		if l.IsAnchor() {
			anchor = l
			break
		}
	}
	if anchor == nil {
		return
	}

	zero, turn := anchor.Origin(), anchor.Angle()
	for _, l := range g.links {
		l.SetOrigin(geom.Inverse(l.Origin(), turn, zero))
		l.SetAngle(l.Angle() - turn)
	}
	anchor.SetPose(mechanism.Pose{Origin: geom.Origin, Angle: 0})
}

// outgoingCoaxial returns one instance per (joint, external group) pair for
// every joint with an endpoint inside g. The first in-group endpoint is the
// instance base; external groups are listed in first-seen order.
func (g *rigidGroup) outgoingCoaxial(cs []*mechanism.Coaxial, gl *groupList) []coaxialInstance {
	var out []coaxialInstance
	for _, c := range cs {
		base := -1
		for i := 0; i < c.Len(); i++ {
			if g.has(c.Link(i)) {
				base = i
				break
			}
		}
		if base < 0 {
			continue
		}

		seen := make(map[*rigidGroup]bool)
		for j := 0; j < c.Len(); j++ {
			l := c.Link(j)
			if j == base || g.has(l) {
				continue
			}
			tg := gl.find(l)
			if tg == nil || seen[tg] {
				continue
			}
			seen[tg] = true
			out = append(out, coaxialInstance{c: c, base: base, target: j})
		}
	}

	return out
}

// outgoingAngular returns the angular constraints with exactly one link in g,
// directed from that link.
func (g *rigidGroup) outgoingAngular(as []*mechanism.Angular) []angularInstance {
	var out []angularInstance
	for _, a := range as {
		inBase, inTarget := g.has(a.Base()), g.has(a.Target())
		switch {
		case inBase && !inTarget:
			out = append(out, angularInstance{c: a, base: mechanism.Base, target: mechanism.Target})
		case inTarget && !inBase:
			out = append(out, angularInstance{c: a, base: mechanism.Target, target: mechanism.Base})
		}
	}

	return out
}

// outgoingSliders returns the sliders whose rail link is in g and whose slide
// link is not.
func (g *rigidGroup) outgoingSliders(ss []*mechanism.Slider) []*mechanism.Slider {
	var out []*mechanism.Slider
	for _, s := range ss {
		if g.has(s.Base()) && !g.has(s.Target()) {
			out = append(out, s)
		}
	}

	return out
}

// groupList is the ordered list of groups of one pass. Index 0 always holds
// the anchor's group.
type groupList struct {
	groups []*rigidGroup
}

func newGroupList(anchor *mechanism.Link, links []*mechanism.Link) *groupList {
	gl := &groupList{groups: make([]*rigidGroup, 0, len(links))}
	gl.groups = append(gl.groups, newGroup(anchor))
	for _, l := range links {
		if l != anchor {
			gl.groups = append(gl.groups, newGroup(l))
		}
	}

	return gl
}

func (gl *groupList) len() int { return len(gl.groups) }

func (gl *groupList) find(l *mechanism.Link) *rigidGroup {
	for _, g := range gl.groups {
		if g.has(l) {
			return g
		}
	}

	return nil
}

func (gl *groupList) indexOf(g *rigidGroup) int {
	for i, h := range gl.groups {
		if h == g {
			return i
		}
	}

	return -1
}

// merge absorbs other into into and drops other from the list. If other held
// index 0, into takes its slot so that the anchor's group stays first.
func (gl *groupList) merge(into, other *rigidGroup) {
	oi := gl.indexOf(other)
	into.absorb(other)
	if oi < 0 {
		return
	}
	gl.groups = append(gl.groups[:oi], gl.groups[oi+1:]...)
	if oi == 0 {
		ii := gl.indexOf(into)
		copy(gl.groups[1:ii+1], gl.groups[:ii])
		gl.groups[0] = into
	}
}
