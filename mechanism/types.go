package mechanism

import (
	"errors"

	"github.com/katalvlaran/linkage/geom"
)

// Sentinel errors for mechanism construction and validation.
var (
	// ErrNilLink indicates a nil *Link argument.
	ErrNilLink = errors.New("mechanism: link is nil")

	// ErrNilConstraint indicates a nil Constraint argument.
	ErrNilConstraint = errors.New("mechanism: constraint is nil")

	// ErrNilMotor indicates a nil *Motor argument.
	ErrNilMotor = errors.New("mechanism: motor is nil")

	// ErrDuplicateAnchor indicates an attempt to add a second anchor.
	ErrDuplicateAnchor = errors.New("mechanism: assembly already has an anchor")

	// ErrDuplicateLink indicates the same link was added twice.
	ErrDuplicateLink = errors.New("mechanism: link already in assembly")

	// ErrNoAnchor indicates the assembly has no anchor link.
	ErrNoAnchor = errors.New("mechanism: assembly has no anchor")

	// ErrForeignLink indicates a reference to a link that is not part of the assembly.
	ErrForeignLink = errors.New("mechanism: link not in assembly")

	// ErrMarkerRange indicates a marker index outside the link's marker list.
	ErrMarkerRange = errors.New("mechanism: marker index out of range")

	// ErrEndpointCount indicates a coaxial constraint with fewer than two endpoints.
	ErrEndpointCount = errors.New("mechanism: coaxial constraint needs at least two endpoints")

	// ErrDegenerateRail indicates a slider whose rail markers coincide.
	ErrDegenerateRail = errors.New("mechanism: slider rail has zero length")

	// ErrDetachedMotor indicates a motor whose drive constraint was removed from the assembly.
	ErrDetachedMotor = errors.New("mechanism: motor drive is not attached")
)

// Kind distinguishes a plain link from the anchor.
type Kind int

const (
	// KindLink is a free rigid body with 3 planar degrees of freedom.
	KindLink Kind = iota
	// KindAnchor is the fixed ground link defining the output frame.
	KindAnchor
)

func (k Kind) String() string {
	switch k {
	case KindLink:
		return "link"
	case KindAnchor:
		return "anchor"
	default:
		return "unknown"
	}
}

// Pose is the placement of a link's local frame in its parent frame.
type Pose struct {
	Origin geom.Point
	Angle  float64
}

// Endpoint addresses one marker of one link.
type Endpoint struct {
	Link   *Link
	Marker int
}

// Local returns the marker position in the link's own frame.
func (e Endpoint) Local() geom.Point {
	return e.Link.Marker(e.Marker)
}

// Global returns the marker position in the frame the link pose is expressed in.
func (e Endpoint) Global() geom.Point {
	return e.Link.GlobalMarker(e.Marker)
}

// Element is the closed set of assembly members carrying their own state:
// *Link (plain or anchor) and *Motor.
type Element interface {
	Name() string
	DOF() int
	element()
}
