package mechanism

import (
	"fmt"

	"github.com/katalvlaran/linkage/geom"
)

// Assembly owns the links, constraints and motors of one mechanism, plus the
// bucket of links whose pose could not be determined by the last solve.
//
// Every structural change (adding or removing a link, constraint or motor)
// bumps Revision, which lets solvers know when precomputed data is stale.
// Setting poses or motor angles does not.
type Assembly struct {
	anchor      *Link
	links       []*Link
	constraints []Constraint
	motors      []*Motor
	unspecified []*Link

	names    NamePolicy
	seq      map[Role]int
	revision uint64
}

// NewAssembly returns an empty assembly using SequentialNames unless overridden.
func NewAssembly(opts ...Option) *Assembly {
	a := &Assembly{
		names: SequentialNames,
		seq:   make(map[Role]int),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Revision returns the structural revision counter.
func (a *Assembly) Revision() uint64 { return a.revision }

// Anchor returns the anchor link, or nil if none was added.
func (a *Assembly) Anchor() *Link { return a.anchor }

// AddAnchor adds l as the ground link. l becomes KindAnchor.
func (a *Assembly) AddAnchor(l *Link) error {
	if l == nil {
		return fmt.Errorf("AddAnchor: %w", ErrNilLink)
	}
	if a.anchor != nil {
		return fmt.Errorf("AddAnchor(%s): %w", l.name, ErrDuplicateAnchor)
	}
	if a.HasLink(l) {
		return fmt.Errorf("AddAnchor(%s): %w", l.name, ErrDuplicateLink)
	}
	l.kind = KindAnchor
	if l.name == "" {
		l.name = AnchorName
	}
	a.anchor = l
	a.links = append(a.links, l)
	a.revision++

	return nil
}

// NewAnchor creates the anchor and adds it.
func (a *Assembly) NewAnchor() (*Link, error) {
	l := NewAnchor()
	if err := a.AddAnchor(l); err != nil {
		return nil, err
	}

	return l, nil
}

// AddLink adds l. Anchors are routed through AddAnchor; an empty name is
// filled in from the naming policy.
func (a *Assembly) AddLink(l *Link) error {
	if l == nil {
		return fmt.Errorf("AddLink: %w", ErrNilLink)
	}
	if l.IsAnchor() {
		return a.AddAnchor(l)
	}
	if a.HasLink(l) {
		return fmt.Errorf("AddLink(%s): %w", l.name, ErrDuplicateLink)
	}
	if l.name == "" {
		l.name = a.nextName(RoleLink)
	}
	a.links = append(a.links, l)
	a.revision++

	return nil
}

// NewLink creates a plain link posed at origin/angle and adds it. It cannot
// fail: AddLink only rejects nil links, anchors and links already present, and
// the link is fresh and plain. Names are not required to be unique; Validate
// warns about duplicates.
func (a *Assembly) NewLink(name string, origin geom.Point, angle float64) *Link {
	l := NewLink(name, origin, angle)
	if err := a.AddLink(l); err != nil {
		panic("mechanism: NewLink: " + err.Error())
	}

	return l
}

// RemoveLink removes l and reports whether it was present. Constraints that
// still reference l are left in place; Validate reports them.
func (a *Assembly) RemoveLink(l *Link) bool {
	i := indexOf(a.links, l)
	if i < 0 {
		return false
	}
	a.links = append(a.links[:i], a.links[i+1:]...)
	if j := indexOf(a.unspecified, l); j >= 0 {
		a.unspecified = append(a.unspecified[:j], a.unspecified[j+1:]...)
	}
	if a.anchor == l {
		a.anchor = nil
	}
	a.revision++

	return true
}

// HasLink reports whether l belongs to the assembly.
func (a *Assembly) HasLink(l *Link) bool { return indexOf(a.links, l) >= 0 }

// Links returns the links in insertion order.
func (a *Assembly) Links() []*Link {
	out := make([]*Link, len(a.links))
	copy(out, a.links)

	return out
}

// Link finds a link by name.
func (a *Assembly) Link(name string) *Link {
	for _, l := range a.links {
		if l.name == name {
			return l
		}
	}

	return nil
}

// AddConstraint checks that c only references member links and existing
// markers, names it if needed and adds it.
func (a *Assembly) AddConstraint(c Constraint) error {
	if err := a.checkConstraint(c); err != nil {
		return fmt.Errorf("AddConstraint: %w", err)
	}
	switch c := c.(type) {
	case *Coaxial:
		if c.name == "" {
			c.name = a.nextName(RoleCoaxial)
		}
	case *Angular:
		if c.name == "" {
			c.name = a.nextName(RoleAngular)
		}
	case *Slider:
		if c.name == "" {
			c.name = a.nextName(RoleSlider)
		}
	}
	a.constraints = append(a.constraints, c)
	a.revision++

	return nil
}

// Join adds a revolute joint between marker ma of la and marker mb of lb.
func (a *Assembly) Join(la *Link, ma int, lb *Link, mb int) (*Coaxial, error) {
	c := NewCoaxial("", Endpoint{Link: la, Marker: ma}, Endpoint{Link: lb, Marker: mb})
	if err := a.AddConstraint(c); err != nil {
		return nil, err
	}

	return c, nil
}

// Fix adds an angular constraint freezing the current relative angle of target to base.
func (a *Assembly) Fix(base, target *Link) (*Angular, error) {
	c := NewAngular("", base, target)
	if err := a.AddConstraint(c); err != nil {
		return nil, err
	}

	return c, nil
}

// Slide adds a slider carrying target marker slide on the base rail rail0→rail1.
func (a *Assembly) Slide(base *Link, rail0, rail1 int, target *Link, slide int) (*Slider, error) {
	c := NewSlider("", base, rail0, rail1, target, slide)
	if err := a.AddConstraint(c); err != nil {
		return nil, err
	}

	return c, nil
}

// RemoveConstraint removes c and reports whether it was present.
func (a *Assembly) RemoveConstraint(c Constraint) bool {
	for i, x := range a.constraints {
		if x == c {
			a.constraints = append(a.constraints[:i], a.constraints[i+1:]...)
			a.revision++
			return true
		}
	}

	return false
}

// Constraints returns all constraints, motor drives included, in insertion order.
func (a *Assembly) Constraints() []Constraint {
	out := make([]Constraint, len(a.constraints))
	copy(out, a.constraints)

	return out
}

// Coaxials returns the revolute joints in insertion order.
func (a *Assembly) Coaxials() []*Coaxial {
	var out []*Coaxial
	for _, c := range a.constraints {
		if cc, ok := c.(*Coaxial); ok {
			out = append(out, cc)
		}
	}

	return out
}

// Constraint finds a constraint by name.
func (a *Assembly) Constraint(name string) Constraint {
	for _, c := range a.constraints {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// AddMotor adds m and attaches its drive constraint.
func (a *Assembly) AddMotor(m *Motor) error {
	if m == nil {
		return fmt.Errorf("AddMotor: %w", ErrNilMotor)
	}
	if m.joint != nil {
		if err := a.checkConstraint(m.joint); err != nil {
			return fmt.Errorf("AddMotor(%s): %w", m.name, err)
		}
	}
	if m.name == "" {
		m.name = a.nextName(RoleMotor)
	}
	if m.drive.name == "" {
		m.drive.name = m.name
	}
	if err := a.AddConstraint(m.drive); err != nil {
		return fmt.Errorf("AddMotor(%s): %w", m.name, err)
	}
	a.motors = append(a.motors, m)

	return nil
}

// Drive creates a motor turning target relative to base about joint and adds it.
func (a *Assembly) Drive(joint *Coaxial, base, target *Link) (*Motor, error) {
	m := NewMotor("", joint, base, target)
	if err := a.AddMotor(m); err != nil {
		return nil, err
	}

	return m, nil
}

// RemoveMotor removes m, detaching its drive constraint.
func (a *Assembly) RemoveMotor(m *Motor) bool {
	i := indexOf(a.motors, m)
	if i < 0 {
		return false
	}
	a.motors = append(a.motors[:i], a.motors[i+1:]...)
	a.RemoveConstraint(m.drive)
	a.revision++

	return true
}

// Motors returns the motors in insertion order.
func (a *Assembly) Motors() []*Motor {
	out := make([]*Motor, len(a.motors))
	copy(out, a.motors)

	return out
}

// Motor finds a motor by name.
func (a *Assembly) Motor(name string) *Motor {
	for _, m := range a.motors {
		if m.name == name {
			return m
		}
	}

	return nil
}

// Elements returns links followed by motors.
func (a *Assembly) Elements() []Element {
	out := make([]Element, 0, len(a.links)+len(a.motors))
	for _, l := range a.links {
		out = append(out, l)
	}
	for _, m := range a.motors {
		out = append(out, m)
	}

	return out
}

// DOF returns Σ element DOF + Σ constraint DOF. It is a diagnostic only:
// redundant constraints make it undercount the real mobility.
func (a *Assembly) DOF() int {
	dof := 0
	for _, e := range a.Elements() {
		dof += e.DOF()
	}
	for _, c := range a.constraints {
		dof += c.DOF()
	}

	return dof
}

// Unspecified returns the links whose pose the last solve could not determine.
func (a *Assembly) Unspecified() []*Link {
	out := make([]*Link, len(a.unspecified))
	copy(out, a.unspecified)

	return out
}

// ClearUnspecified empties the unspecified bucket.
func (a *Assembly) ClearUnspecified() { a.unspecified = a.unspecified[:0] }

// MarkUnspecified adds links to the unspecified bucket, skipping duplicates.
func (a *Assembly) MarkUnspecified(ls ...*Link) {
	for _, l := range ls {
		if l != nil && indexOf(a.unspecified, l) < 0 {
			a.unspecified = append(a.unspecified, l)
		}
	}
}

// IsUnspecified reports whether l is in the unspecified bucket.
func (a *Assembly) IsUnspecified(l *Link) bool { return indexOf(a.unspecified, l) >= 0 }

// checkConstraint verifies c references member links and existing markers.
func (a *Assembly) checkConstraint(c Constraint) error {
	if isNilConstraint(c) {
		return ErrNilConstraint
	}
	check := func(l *Link, markers ...int) error {
		if l == nil {
			return fmt.Errorf("%s: %w", c.Name(), ErrNilLink)
		}
		if !a.HasLink(l) {
			return fmt.Errorf("%s: %s: %w", c.Name(), l.name, ErrForeignLink)
		}
		for _, m := range markers {
			if !l.HasMarker(m) {
				return fmt.Errorf("%s: %s[%d]: %w", c.Name(), l.name, m, ErrMarkerRange)
			}
		}
		return nil
	}

	switch c := c.(type) {
	case *Coaxial:
		if len(c.endpoints) < 2 {
			return fmt.Errorf("%s: %w", c.name, ErrEndpointCount)
		}
		for _, e := range c.endpoints {
			if err := check(e.Link, e.Marker); err != nil {
				return err
			}
		}
	case *Angular:
		for _, l := range c.links {
			if err := check(l); err != nil {
				return err
			}
		}
	case *Slider:
		if err := check(c.base, c.rail[0], c.rail[1]); err != nil {
			return err
		}
		if err := check(c.target, c.slide); err != nil {
			return err
		}
		p0, p1 := c.Rail()
		if p0 == p1 {
			return fmt.Errorf("%s: %w", c.name, ErrDegenerateRail)
		}
	}

	return nil
}

func isNilConstraint(c Constraint) bool {
	switch c := c.(type) {
	case nil:
		return true
	case *Coaxial:
		return c == nil
	case *Angular:
		return c == nil
	case *Slider:
		return c == nil
	}

	return false
}

func indexOf[T comparable](xs []T, x T) int {
	for i, y := range xs {
		if y == x {
			return i
		}
	}

	return -1
}
