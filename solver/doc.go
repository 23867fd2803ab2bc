// Package solver reconstructs the pose of every link of a planar mechanism in
// closed form.
//
// Instead of iterating numerically, the solver exploits the topology of the
// constraint graph. It starts with one rigid group per link and merges groups
// whenever their relative pose is fully determined:
//
//  1. Direct propagation: a group reached from a base group by exactly one
//     revolute joint and exactly one angular constraint is placed by rotating it
//     onto the angle and translating it onto the joint.
//  2. Triangles: when propagation stalls, a closed loop of three groups is
//     solved at once.
//     XXX: three revolute joints; law-of-cosines closure.
//     XSX: two revolute joints and a slider; quadratic closure along the rail.
//  3. Steps 1–2 repeat until the number of groups stops decreasing.
//  4. Groups left over are reported as unspecified, then attached position-only
//     wherever a revolute joint reaches the main group.
//  5. The main group is re-expressed in the anchor frame: the anchor ends at
//     (0,0) with angle 0.
//
// Each triangle has two mirror-image solutions. The branch is fixed by the
// chirality sign μ of the three joints, computed once at the input pose by
// Prepare, so a motor sweep never flips the mechanism from elbow-up to
// elbow-down. Slider roots are cached the same way.
//
// Degenerate geometry is an expected operating condition, not an error:
//
//	– triangle inequality violated → folded placement, Result.Cost = +Inf
//	– slider quadratic without real root → loop left open, Result.Cost = +Inf
//	– slider parameter outside [0,1] → clamped, both slider links unspecified
//	– disconnected links → unspecified
//	– redundant constraint paths → skipped, listed in Result.Redundant
//
// Malformed input (no anchor, constraints on foreign links, bad marker
// indices) makes Prepare and Solve return an error before any pose is touched.
//
// A Solver is single-threaded and keeps per-assembly state (chirality map,
// slider roots). Use one Solver per assembly and clone assemblies for
// concurrent evaluation.
//
// Example:
//
//	s := solver.New()
//	m.SetAngle(θ)
//	res, err := s.Solve(asm)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res.Degenerate {
//	    // at or beyond a singular position
//	}
package solver
