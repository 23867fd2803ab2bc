// Package geom provides the planar point and angle primitives used by the
// mechanism model and the pose reconstruction engine.
//
// A Point is a gonum r2.Vec: an immutable (x, y) value. Everything here is a
// pure function of its arguments, so values can be shared freely between
// links, constraints and solver passes.
//
// Conventions:
//
//	– Angles are radians, counter-clockwise positive.
//	– Transform(p, a, t) rotates p about the origin by a and then translates by t,
//	  which is exactly how a link maps a local marker into its parent frame.
//	– NormalizeAngle folds any angle into [0, 2π).
package geom
