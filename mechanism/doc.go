// Package mechanism defines the data model of a planar linkage: rigid links
// with local marker points, the constraints tying them together, the motors
// driving them, and the Assembly that owns them all.
//
// The model is deliberately passive. It stores poses and constraint values and
// exposes enumeration accessors; the pose reconstruction itself lives in the
// solver package, which only reads constraints and writes link poses.
//
// Elements (closed set):
//
//	– *Link   a rigid body with an origin, an angle and ordered marker points.
//	          A link of KindAnchor is the ground: origin (0,0), angle 0,
//	          at most one per Assembly.
//	– *Motor  drives an Angular constraint between two links.
//
// Constraints (closed set, exhaustively switched on by consumers):
//
//	– *Coaxial  revolute joint; all endpoints coincide globally.   DOF −2
//	– *Angular  fixed relative angle target − base in [0, 2π).      DOF −1
//	– *Slider   prismatic joint; a marker of the target link stays
//	            on a rail between two markers of the base link,
//	            with a fixed relative angle.                         DOF −2
//
// Markers are addressed by index. Indices never change once assigned: markers
// can be appended but not removed. A plain link is created with marker 0 at
// its local origin; the anchor starts with no markers.
//
// Pose backup:
//
//	snap := asm.Snapshot()   // copy of every link pose and motor angle
//	m.SetAngle(θ)            // perturb
//	... solve ...
//	asm.Restore(snap)        // put everything back
//
// For concurrent evaluation use Clone, which deep-copies links, constraints and
// motors; an Assembly itself is not safe for concurrent mutation.
//
// Errors:
//
//	ErrNilLink, ErrNilConstraint, ErrNilMotor – nil argument.
//	ErrDuplicateAnchor  – a second anchor was added.
//	ErrDuplicateLink    – the same *Link was added twice.
//	ErrNoAnchor         – validation found no anchor.
//	ErrForeignLink      – a constraint or motor references a link outside the assembly.
//	ErrMarkerRange      – a marker index is out of range for its link.
//	ErrEndpointCount    – a coaxial constraint has fewer than two endpoints.
//	ErrDegenerateRail   – a slider rail has zero length.
//	ErrDetachedMotor    – a motor's drive constraint is not part of the assembly.
package mechanism
