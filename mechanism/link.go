package mechanism

import (
	"fmt"

	"github.com/katalvlaran/linkage/geom"
)

// AnchorName is the name given to anchors created by NewAnchor.
const AnchorName = "Anchor"

// Link is a rigid body: a local frame placed at Origin with rotation Angle,
// and an ordered list of marker points expressed in that frame.
type Link struct {
	name    string
	kind    Kind
	origin  geom.Point
	angle   float64
	markers []geom.Point
}

// NewLink returns a plain link posed at origin/angle. Marker 0 is its local origin.
// An empty name is filled in by the assembly's naming policy on AddLink.
func NewLink(name string, origin geom.Point, angle float64) *Link {
	return &Link{
		name:    name,
		kind:    KindLink,
		origin:  origin,
		angle:   angle,
		markers: []geom.Point{geom.Origin},
	}
}

// NewAnchor returns the ground link: origin (0,0), angle 0, no markers.
func NewAnchor() *Link {
	return &Link{name: AnchorName, kind: KindAnchor}
}

func (l *Link) element() {}

// Name returns the link name.
func (l *Link) Name() string { return l.name }

// SetName renames the link.
func (l *Link) SetName(name string) { l.name = name }

func (l *Link) String() string { return l.name }

// Kind reports whether l is a plain link or the anchor.
func (l *Link) Kind() Kind { return l.kind }

// IsAnchor reports whether l is the anchor.
func (l *Link) IsAnchor() bool { return l.kind == KindAnchor }

// DOF is 3 for a free link and 0 for the anchor.
func (l *Link) DOF() int {
	if l.kind == KindAnchor {
		return 0
	}

	return 3
}

// Origin returns the position of the link frame.
func (l *Link) Origin() geom.Point { return l.origin }

// SetOrigin moves the link frame.
func (l *Link) SetOrigin(p geom.Point) { l.origin = p }

// Angle returns the rotation of the link frame.
func (l *Link) Angle() float64 { return l.angle }

// SetAngle rotates the link frame.
func (l *Link) SetAngle(a float64) { l.angle = a }

// Pose returns origin and angle together.
func (l *Link) Pose() Pose { return Pose{Origin: l.origin, Angle: l.angle} }

// SetPose sets origin and angle together.
func (l *Link) SetPose(p Pose) {
	l.origin = p.Origin
	l.angle = p.Angle
}

// MarkerCount returns the number of markers.
func (l *Link) MarkerCount() int { return len(l.markers) }

// HasMarker reports whether i addresses an existing marker.
func (l *Link) HasMarker(i int) bool { return i >= 0 && i < len(l.markers) }

// Marker returns marker i in local coordinates. It panics if i is out of range;
// Assembly validation reports bad indices before any solver touches them.
func (l *Link) Marker(i int) geom.Point {
	if !l.HasMarker(i) {
		panic(fmt.Sprintf("mechanism: %s has no marker %d", l.name, i))
	}

	return l.markers[i]
}

// Markers returns a copy of the local marker list.
func (l *Link) Markers() []geom.Point {
	out := make([]geom.Point, len(l.markers))
	copy(out, l.markers)

	return out
}

// GlobalMarker returns marker i mapped through the link pose.
func (l *Link) GlobalMarker(i int) geom.Point {
	return l.GlobalPosition(l.Marker(i))
}

// GlobalPosition maps a local point through the link pose.
func (l *Link) GlobalPosition(p geom.Point) geom.Point {
	return geom.Transform(p, l.angle, l.origin)
}

// LocalPosition maps a global point into the link frame.
func (l *Link) LocalPosition(p geom.Point) geom.Point {
	return geom.Inverse(p, l.angle, l.origin)
}

// AddLocalMarker appends a marker given in local coordinates and returns its index.
func (l *Link) AddLocalMarker(p geom.Point) int {
	l.markers = append(l.markers, p)

	return len(l.markers) - 1
}

// AddGlobalMarker appends a marker given in global coordinates at the current pose
// and returns its index.
func (l *Link) AddGlobalMarker(p geom.Point) int {
	return l.AddLocalMarker(l.LocalPosition(p))
}

func (l *Link) clone() *Link {
	c := *l
	c.markers = l.Markers()

	return &c
}
