package mechanism

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/linkage/geom"
)

// Endpoint roles of a two-sided constraint.
const (
	Base   = 0
	Target = 1
)

// Constraint is the closed set {*Coaxial, *Angular, *Slider}.
// Consumers switch on the concrete type; no other implementations exist.
type Constraint interface {
	// Name identifies the constraint within its assembly.
	Name() string
	// DOF is the (negative) degree-of-freedom contribution.
	DOF() int
	// Links lists the constrained links in endpoint order.
	Links() []*Link
	constraint()
}

// Coaxial is a revolute joint: every endpoint marker occupies the same global point.
type Coaxial struct {
	name      string
	endpoints []Endpoint
}

// NewCoaxial returns a coaxial constraint over the given endpoints.
func NewCoaxial(name string, endpoints ...Endpoint) *Coaxial {
	c := &Coaxial{name: name}
	c.endpoints = append(c.endpoints, endpoints...)

	return c
}

func (c *Coaxial) constraint() {}

// Name returns the constraint name.
func (c *Coaxial) Name() string { return c.name }

func (c *Coaxial) String() string { return c.name }

// DOF is −2: two translational freedoms removed.
func (c *Coaxial) DOF() int { return -2 }

// Len returns the number of endpoints.
func (c *Coaxial) Len() int { return len(c.endpoints) }

// Endpoint returns endpoint i.
func (c *Coaxial) Endpoint(i int) Endpoint { return c.endpoints[i] }

// Endpoints returns a copy of the endpoint list.
func (c *Coaxial) Endpoints() []Endpoint {
	out := make([]Endpoint, len(c.endpoints))
	copy(out, c.endpoints)

	return out
}

// Link returns the link of endpoint i.
func (c *Coaxial) Link(i int) *Link { return c.endpoints[i].Link }

// Point returns the local marker position of endpoint i.
func (c *Coaxial) Point(i int) geom.Point { return c.endpoints[i].Local() }

// GlobalPoint returns the global position of endpoint i at the current pose.
func (c *Coaxial) GlobalPoint(i int) geom.Point { return c.endpoints[i].Global() }

// Links lists the endpoint links in order; a link appears once per endpoint.
func (c *Coaxial) Links() []*Link {
	out := make([]*Link, len(c.endpoints))
	for i, e := range c.endpoints {
		out[i] = e.Link
	}

	return out
}

// AddEndpoint appends another coincident marker.
func (c *Coaxial) AddEndpoint(l *Link, marker int) {
	c.endpoints = append(c.endpoints, Endpoint{Link: l, Marker: marker})
}

// RemoveEndpoint drops the first endpoint equal to (l, marker) and reports
// whether one was found.
func (c *Coaxial) RemoveEndpoint(l *Link, marker int) bool {
	for i, e := range c.endpoints {
		if e.Link == l && e.Marker == marker {
			c.endpoints = append(c.endpoints[:i], c.endpoints[i+1:]...)
			return true
		}
	}

	return false
}

// Angular fixes the relative rotation target.Angle − base.Angle.
type Angular struct {
	name  string
	links [2]*Link
	angle float64
}

// NewAngular returns an angular constraint holding the current relative angle
// of target with respect to base.
func NewAngular(name string, base, target *Link) *Angular {
	a := &Angular{name: name, links: [2]*Link{base, target}}
	if base != nil && target != nil {
		a.SetAngle(target.Angle() - base.Angle())
	}

	return a
}

func (a *Angular) constraint() {}

// Name returns the constraint name.
func (a *Angular) Name() string { return a.name }

func (a *Angular) String() string { return a.name }

// DOF is −1: one rotational freedom removed.
func (a *Angular) DOF() int { return -1 }

// Link returns the link at role i (Base or Target).
func (a *Angular) Link(i int) *Link { return a.links[i] }

// Base returns the reference link.
func (a *Angular) Base() *Link { return a.links[Base] }

// Target returns the driven link.
func (a *Angular) Target() *Link { return a.links[Target] }

// Links returns base and target.
func (a *Angular) Links() []*Link { return []*Link{a.links[Base], a.links[Target]} }

// Angle returns the fixed relative angle in [0, 2π).
func (a *Angular) Angle() float64 { return a.angle }

// SetAngle stores a normalized into [0, 2π).
func (a *Angular) SetAngle(angle float64) { a.angle = geom.NormalizeAngle(angle) }

// Slider is a prismatic joint. The target's slide marker must lie on the
// segment between the base's two rail markers, and target.Angle − base.Angle is
// fixed.
type Slider struct {
	name   string
	base   *Link
	target *Link
	rail   [2]int
	slide  int
	angle  float64
}

// NewSlider returns a slider whose rail runs from base marker rail0 to rail1 and
// whose carriage is target marker slide. The relative angle is taken from the
// current poses.
func NewSlider(name string, base *Link, rail0, rail1 int, target *Link, slide int) *Slider {
	s := &Slider{name: name, base: base, target: target, rail: [2]int{rail0, rail1}, slide: slide}
	if base != nil && target != nil {
		s.SetAngle(target.Angle() - base.Angle())
	}

	return s
}

func (s *Slider) constraint() {}

// Name returns the constraint name.
func (s *Slider) Name() string { return s.name }

func (s *Slider) String() string { return s.name }

// DOF is −2: one translation and the rotation removed.
func (s *Slider) DOF() int { return -2 }

// Link returns the link at role i (Base or Target).
func (s *Slider) Link(i int) *Link {
	if i == Base {
		return s.base
	}

	return s.target
}

// Base returns the link carrying the rail.
func (s *Slider) Base() *Link { return s.base }

// Target returns the link carrying the slide marker.
func (s *Slider) Target() *Link { return s.target }

// Links returns base and target.
func (s *Slider) Links() []*Link { return []*Link{s.base, s.target} }

// RailMarkers returns the base marker indices bounding the rail.
func (s *Slider) RailMarkers() (int, int) { return s.rail[0], s.rail[1] }

// SlideMarker returns the target marker index riding on the rail.
func (s *Slider) SlideMarker() int { return s.slide }

// Rail returns the rail end points in the base link's local frame.
func (s *Slider) Rail() (geom.Point, geom.Point) {
	return s.base.Marker(s.rail[0]), s.base.Marker(s.rail[1])
}

// Slide returns the slide marker in the target link's local frame.
func (s *Slider) Slide() geom.Point { return s.target.Marker(s.slide) }

// Angle returns the fixed relative angle in [0, 2π).
func (s *Slider) Angle() float64 { return s.angle }

// SetAngle stores angle normalized into [0, 2π).
func (s *Slider) SetAngle(angle float64) { s.angle = geom.NormalizeAngle(angle) }

// RailPoint returns the base-local point at parameter t along the rail.
func (s *Slider) RailPoint(t float64) geom.Point {
	p0, p1 := s.Rail()

	return r2.Add(p0, r2.Scale(t, r2.Sub(p1, p0)))
}

// Parameter projects the slide marker onto the rail at the current poses and
// returns its parameter (0 at rail0, 1 at rail1). It returns 0 for a zero-length rail.
func (s *Slider) Parameter() float64 {
	p0, p1 := s.Rail()
	dir := r2.Sub(p1, p0)
	n2 := r2.Norm2(dir)
	if n2 == 0 {
		return 0
	}
	slide := s.base.LocalPosition(s.target.GlobalMarker(s.slide))

	return r2.Dot(r2.Sub(slide, p0), dir) / n2
}
