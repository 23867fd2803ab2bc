// Package linkage reconstructs the pose of every link of a planar mechanism
// in closed form, one motor setting at a time.
//
// What is inside?
//
//	A small stack of packages, each usable on its own:
//		• geom:      points, rotations and angle helpers on gonum r2
//		• mechanism: links, markers, revolute joints, angular constraints,
//		             sliders, motors and the Assembly that owns them
//		• topology:  the constraint graph, components, loops and DOF
//		• solver:    rigid-group propagation, closed triangles (three
//		             revolute joints, or two plus a slider) and branch
//		             selection by the chirality of the assembled pose
//		• sweep:     motor sweeps, sequential or split over workers
//		• builder:   YAML mechanism files and canonical constructors
//		• cmd/linkage: a command line front end over all of the above
//
// How does a solve work?
//
//  1. Every link starts as its own rigid group; the anchor's group is first.
//  2. A group pulls in every neighbour reached by exactly one revolute joint
//     plus one angular constraint, or by a slider, until nothing changes.
//  3. Three groups joined pairwise by single joints form a triangle whose
//     shape is fixed by its side lengths; it is closed with the law of
//     cosines on the branch recorded when the solver was prepared.
//  4. What is left after the loop could not be determined and is reported
//     as unspecified; the anchor is moved back to the origin.
//
// Singular or over-constrained mechanisms are never solved numerically: they
// show up as an infinite Result.Cost, unspecified links or redundant pairs.
//
// Quick start:
//
//	a, _ := builder.Load("fourbar.yaml")
//	s := solver.New()
//	a.Motor("M").SetAngle(math.Pi / 3)
//	res, err := s.Solve(a)
package linkage
