// Package sweep evaluates a mechanism over a sequence of motor angles.
//
// Run drives one motor through a list of angles and records a Frame per angle:
// the solve cost, the degenerate flag, every link pose and the unspecified
// links. The assembly is restored to its starting poses when Run returns.
//
// Branch choices (triangle chirality, slider roots) are fixed once at the
// starting pose, so the frames do not depend on the order of evaluation. That
// is what makes WithWorkers safe: the angle list is split into contiguous
// chunks, each chunk runs on its own clone of the assembly under an errgroup,
// and the frames come back in input order, identical to a sequential run.
//
// Angles and Timeline build the angle list, either evenly spaced or from the
// motor's drive profile.
package sweep
