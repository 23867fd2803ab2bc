package solver

import (
	"errors"
	"math"

	"github.com/npillmayer/schuko/tracing"

	"github.com/katalvlaran/linkage/mechanism"
)

// tracer writes to trace with key 'linkage.solver'
func tracer() tracing.Trace {
	return tracing.Select("linkage.solver")
}

// Sentinel errors returned by the solver.
var (
	// ErrNilAssembly indicates a nil *mechanism.Assembly was passed.
	ErrNilAssembly = errors.New("solver: assembly is nil")

	// ErrInvalidAssembly indicates the assembly failed validation; the joined
	// validation issues are wrapped alongside it.
	ErrInvalidAssembly = errors.New("solver: assembly is not valid")
)

// Result describes the outcome of one solve pass.
type Result struct {
	// Cost is the worst triangle cost 3(dmin+dmid)/(dmin+dmid−dmax) of the pass:
	// 0 without triangles, growing towards +Inf as a loop approaches a singular
	// (stretched or folded) position, +Inf if any loop could not be closed.
	Cost float64

	// Degenerate is true when Cost is +Inf.
	Degenerate bool

	// Groups is the number of rigid groups left when the reconstruction loop
	// converged; 1 means every link was placed relative to the anchor.
	Groups int

	// Unspecified lists links whose pose could not be determined.
	Unspecified []*mechanism.Link

	// Redundant lists group pairs skipped because more than one constraint path
	// connected them.
	Redundant []Redundancy
}

// Solved reports whether every link was placed and no loop failed to close.
func (r Result) Solved() bool {
	return r.Groups <= 1 && !r.Degenerate && len(r.Unspecified) == 0
}

// Redundancy records an over-constrained pair of groups, each named by its
// first link.
type Redundancy struct {
	Base    string
	Target  string
	Coaxial int // revolute joints between the groups
	Angular int // angular constraints between the groups
}

// Options configures a Solver.
//
// CollinearTolerance – |cross| at or below this value counts as collinear
//
//	when computing chirality signs. Must be ≥ 0. Default 0.
//
// SecondaryMerge – attach leftover groups position-only after the main loop.
//
//	Default true.
type Options struct {
	CollinearTolerance float64
	SecondaryMerge     bool
}

// Option is a functional option for New.
type Option func(*Options)

// DefaultOptions returns exact chirality signs and secondary merging enabled.
func DefaultOptions() Options {
	return Options{
		CollinearTolerance: 0,
		SecondaryMerge:     true,
	}
}

// WithCollinearTolerance sets the chirality collinearity tolerance.
// Panics on a negative or NaN value.
func WithCollinearTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) {
		panic("solver: WithCollinearTolerance must be non-negative")
	}
	return func(o *Options) {
		o.CollinearTolerance = tol
	}
}

// WithSecondaryMerge enables or disables the position-only attachment of
// leftover groups.
func WithSecondaryMerge(enabled bool) Option {
	return func(o *Options) {
		o.SecondaryMerge = enabled
	}
}
