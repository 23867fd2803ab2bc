package sweep

import (
	"context"
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/linkage/mechanism"
	"github.com/katalvlaran/linkage/solver"
)

// tracer writes to trace with key 'linkage.sweep'
func tracer() tracing.Trace {
	return tracing.Select("linkage.sweep")
}

// Sentinel errors returned by Run.
var (
	ErrNilMotor     = errors.New("sweep: motor is nil")
	ErrForeignMotor = errors.New("sweep: motor is not part of the assembly")
)

// Frame is the state of the mechanism at one motor angle.
type Frame struct {
	Index       int
	Angle       float64
	Cost        float64
	Degenerate  bool
	Poses       map[string]mechanism.Pose
	Unspecified []string
}

// Options configures Run.
type Options struct {
	Workers int
	Solver  []solver.Option
}

// Option is a functional option for Run.
type Option func(*Options)

// DefaultOptions evaluates sequentially with a default solver.
func DefaultOptions() Options {
	return Options{Workers: 1}
}

// WithWorkers splits the sweep over n goroutines. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("sweep: WithWorkers requires n >= 1")
	}
	return func(o *Options) {
		o.Workers = n
	}
}

// WithSolverOptions passes opts to every solver the sweep creates.
func WithSolverOptions(opts ...solver.Option) Option {
	return func(o *Options) {
		o.Solver = append(o.Solver, opts...)
	}
}

// Run sets motor to each angle in turn, solves a, and returns one frame per
// angle in input order. a is restored to its starting poses and motor angles
// before Run returns. Cancelling ctx stops the sweep with ctx.Err().
func Run(ctx context.Context, a *mechanism.Assembly, motor *mechanism.Motor, angles []float64, opts ...Option) ([]Frame, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// 1) Validate inputs.
	if a == nil {
		return nil, fmt.Errorf("Run: %w", solver.ErrNilAssembly)
	}
	if motor == nil {
		return nil, fmt.Errorf("Run: %w", ErrNilMotor)
	}
	mi := motorIndex(a, motor)
	if mi < 0 {
		return nil, fmt.Errorf("Run(%s): %w", motor.Name(), ErrForeignMotor)
	}
	if err := solver.New(o.Solver...).Prepare(a); err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}

	frames := make([]Frame, len(angles))
	workers := o.Workers
	if workers > len(angles) {
		workers = len(angles)
	}
	tracer().Debugf("sweep: %d angles on %d worker(s)", len(angles), workers)

	// 2) Sequential: evaluate in place, restore afterwards.
	if workers <= 1 {
		snap := a.Snapshot()
		defer a.Restore(snap)

		return frames, evaluate(ctx, a, motor, angles, frames, 0, o.Solver)
	}

	// 3) Parallel: contiguous chunks on clones taken at the starting pose.
	g, gctx := errgroup.WithContext(ctx)
	chunk := (len(angles) + workers - 1) / workers
	for lo := 0; lo < len(angles); lo += chunk {
		lo := lo
		hi := min(lo+chunk, len(angles))
		c := a.Clone()
		cm := c.Motors()[mi]
		g.Go(func() error {
			return evaluate(gctx, c, cm, angles[lo:hi], frames[lo:hi], lo, o.Solver)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return frames, nil
}

// evaluate fills out[i] for angles[i] on a. The first solve at the current
// motor angle fixes the slider roots before the sweep moves away.
func evaluate(ctx context.Context, a *mechanism.Assembly, motor *mechanism.Motor, angles []float64, out []Frame, offset int, opts []solver.Option) error {
	s := solver.New(opts...)
	if _, err := s.Solve(a); err != nil {
		return fmt.Errorf("Run: %w", err)
	}

	for i, theta := range angles {
		if err := ctx.Err(); err != nil {
			return err
		}
		motor.SetAngle(theta)
		res, err := s.Solve(a)
		if err != nil {
			return fmt.Errorf("Run(%d): %w", offset+i, err)
		}
		out[i] = newFrame(a, offset+i, theta, res)
		if res.Degenerate {
			tracer().Infof("sweep: degenerate at #%d (angle %.6g)", offset+i, theta)
		}
	}

	return nil
}

func newFrame(a *mechanism.Assembly, index int, angle float64, res solver.Result) Frame {
	f := Frame{
		Index:      index,
		Angle:      angle,
		Cost:       res.Cost,
		Degenerate: res.Degenerate,
		Poses:      make(map[string]mechanism.Pose, len(a.Links())),
	}
	for _, l := range a.Links() {
		f.Poses[l.Name()] = l.Pose()
	}
	for _, l := range res.Unspecified {
		f.Unspecified = append(f.Unspecified, l.Name())
	}

	return f
}

func motorIndex(a *mechanism.Assembly, m *mechanism.Motor) int {
	for i, x := range a.Motors() {
		if x == m {
			return i
		}
	}

	return -1
}
