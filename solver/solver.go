package solver

import (
	"fmt"
	"math"

	"github.com/katalvlaran/linkage/mechanism"
	"github.com/katalvlaran/linkage/topology"
)

// Solver reconstructs link poses for one assembly at a time. It caches the
// chirality map and slider roots of the last prepared assembly and re-prepares
// automatically when a different assembly, or a structurally edited one, is
// passed to Solve.
type Solver struct {
	opts Options

	asm       *mechanism.Assembly
	revision  uint64
	chirality chirality
	initial   map[*mechanism.Slider]float64 // rail parameters at prepare time
	roots     map[*mechanism.Slider]float64 // chosen root sign per slider
	report    topology.Report
}

// New returns a Solver configured by opts.
func New(opts ...Option) *Solver {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Solver{opts: o}
}

// Options returns the solver configuration.
func (s *Solver) Options() Options { return s.opts }

// Topology returns the topology report of the prepared assembly.
func (s *Solver) Topology() topology.Report { return s.report }

// Prepare validates a and records the branch choices at its current pose: the
// chirality sign of every joint triple and the rail parameter of every slider.
// Poses are not modified.
func (s *Solver) Prepare(a *mechanism.Assembly) error {
	if a == nil {
		return fmt.Errorf("Prepare: %w", ErrNilAssembly)
	}
	if res := a.Validate(); !res.OK() {
		tracer().Errorf("solver: %d validation error(s)", len(res.Errors))
		return fmt.Errorf("Prepare: %w: %w", ErrInvalidAssembly, res.Err())
	}

	coaxials, _, sliders := split(a)
	s.chirality = newChirality(coaxials, s.opts.CollinearTolerance)
	s.initial = make(map[*mechanism.Slider]float64, len(sliders))
	s.roots = make(map[*mechanism.Slider]float64, len(sliders))
	for _, sl := range sliders {
		s.initial[sl] = sl.Parameter()
	}
	s.report = topology.Analyze(a)
	s.asm, s.revision = a, a.Revision()

	tracer().Debugf("solver: prepared %d links, %d joints, %d loops, DOF %d",
		s.report.Links, len(coaxials), s.report.Loops, s.report.DOF)
	if len(s.report.Detached) > 0 {
		tracer().Infof("solver: detached links %v", s.report.Detached)
	}

	return nil
}

// Solve rewrites the pose of every link of a so that all constraints hold,
// with the anchor at the origin and angle 0. Links that cannot be placed are
// recorded in a.Unspecified() and in the result. Solve prepares a first when it
// is not the assembly last prepared or when it was edited since.
func (s *Solver) Solve(a *mechanism.Assembly) (Result, error) {
	if a == nil {
		return Result{}, fmt.Errorf("Solve: %w", ErrNilAssembly)
	}
	if a != s.asm || a.Revision() != s.revision {
		if err := s.Prepare(a); err != nil {
			return Result{}, fmt.Errorf("Solve: %w", err)
		}
	}

	p := newPass(s, a)
	p.run()

	return p.result(), nil
}

// pass holds the working state of one Solve call.
type pass struct {
	s        *Solver
	asm      *mechanism.Assembly
	groups   *groupList
	coaxials []*mechanism.Coaxial
	angulars []*mechanism.Angular
	sliders  []*mechanism.Slider

	cost       float64
	loopGroups int
	failed     map[*mechanism.Slider]bool
	redundant  []Redundancy
	seen       map[[2]string]bool
}

func newPass(s *Solver, a *mechanism.Assembly) *pass {
	p := &pass{
		s:      s,
		asm:    a,
		groups: newGroupList(a.Anchor(), a.Links()),
		failed: make(map[*mechanism.Slider]bool),
		seen:   make(map[[2]string]bool),
	}
	p.coaxials, p.angulars, p.sliders = split(a)

	return p
}

// raise lifts the pass cost to c if it is larger.
func (p *pass) raise(c float64) {
	if c > p.cost {
		p.cost = c
	}
}

// run executes the reconstruction loop.
func (p *pass) run() {
	p.asm.ClearUnspecified()

	// 1) Merge until the number of groups stops decreasing.
	last := math.MaxInt
	for p.groups.len() > 1 && last > p.groups.len() {
		last = p.groups.len()
		for bi := 0; bi < p.groups.len(); bi++ {
			base := p.groups.groups[bi]
			p.propagate(base)
			base = p.closeTriangles(base)
			bi = p.groups.indexOf(base)
		}
	}
	p.loopGroups = p.groups.len()

	// 2) Leftovers are unspecified.
	for _, g := range p.groups.groups[1:] {
		p.asm.MarkUnspecified(g.links...)
	}

	// 3) Position-only attachment of leftovers.
	if p.s.opts.SecondaryMerge {
		p.secondaryMerge()
	}

	// 4) Anchor frame.
	p.groups.groups[0].backToZero()
}

// propagate attaches every later group reached from base by exactly one
// revolute joint and one angular constraint.
func (p *pass) propagate(base *rigidGroup) {
	bi := p.groups.indexOf(base)
	outC := base.outgoingCoaxial(p.coaxials, p.groups)
	outA := base.outgoingAngular(p.angulars)

	for ti := bi + 1; ti < p.groups.len(); {
		tg := p.groups.groups[ti]

		var acs []angularInstance
		for _, ai := range outA {
			if tg.has(ai.targetLink()) {
				acs = append(acs, ai)
			}
		}
		var ccs []coaxialInstance
		for _, ci := range outC {
			if tg.has(ci.targetLink()) {
				ccs = append(ccs, ci)
			}
		}

		switch {
		case len(acs) == 1 && len(ccs) == 1:
			ac, cc := acs[0], ccs[0]
			tg.zeroToPoint(tg.localPositionOf(cc.targetLink(), cc.targetPoint()))
			tg.relPos = base.localPositionOf(cc.baseLink(), cc.basePoint())
			tg.relAngle = ac.relativeAngle()
			tracer().Debugf("solver: attach %s → %s via %s/%s", tg.name(), base.name(), cc.c.Name(), ac.c.Name())
			p.groups.merge(base, tg)
			outC = base.outgoingCoaxial(p.coaxials, p.groups)
			outA = base.outgoingAngular(p.angulars)
			continue
		case len(acs)+len(ccs) >= 2:
			p.overConstrained(base, tg, len(ccs), len(acs))
		}
		ti++
	}
}

// closeTriangles resolves triangles rooted at base until none is left and
// returns the group that now holds base's links.
func (p *pass) closeTriangles(base *rigidGroup) *rigidGroup {
	for {
		out := base.outgoingCoaxial(p.coaxials, p.groups)
		if t := p.findXXX(base, out); t != nil {
			p.resolveXXX(t)
			base = t.base
			continue
		}
		if t := p.findXSX(base, out); t != nil {
			if p.resolveXSX(t) {
				base = t.a
			}
			continue
		}

		return base
	}
}

func (p *pass) overConstrained(base, target *rigidGroup, coaxial, angular int) {
	key := [2]string{base.name(), target.name()}
	if p.seen[key] {
		return
	}
	p.seen[key] = true
	p.redundant = append(p.redundant, Redundancy{
		Base:    base.name(),
		Target:  target.name(),
		Coaxial: coaxial,
		Angular: angular,
	})
	tracer().Infof("solver: over-constrained %s → %s (%d joints, %d angles)",
		base.name(), target.name(), coaxial, angular)
}

// secondaryMerge attaches, translation only, every leftover group that has a
// revolute joint into the anchor's group. It repeats until nothing changes.
func (p *pass) secondaryMerge() {
	root := p.groups.groups[0]
	for changed := true; changed; {
		changed = false
		for _, g := range p.groups.groups[1:] {
			for _, ci := range g.outgoingCoaxial(p.coaxials, p.groups) {
				if !root.has(ci.targetLink()) {
					continue
				}
				g.zeroToPoint(g.localPositionOf(ci.baseLink(), ci.basePoint()))
				g.relPos = root.localPositionOf(ci.targetLink(), ci.targetPoint())
				g.relAngle = 0
				tracer().Debugf("solver: secondary attach %s → %s", g.name(), root.name())
				p.groups.merge(root, g)
				changed = true
				break
			}
			if changed {
				break
			}
		}
	}
}

func (p *pass) result() Result {
	r := Result{
		Cost:        p.cost,
		Degenerate:  math.IsInf(p.cost, 1),
		Groups:      p.loopGroups,
		Unspecified: p.asm.Unspecified(),
		Redundant:   p.redundant,
	}

	return r
}

// split sorts the constraints of a by kind, preserving order.
func split(a *mechanism.Assembly) ([]*mechanism.Coaxial, []*mechanism.Angular, []*mechanism.Slider) {
	var (
		cs []*mechanism.Coaxial
		as []*mechanism.Angular
		ss []*mechanism.Slider
	)
	for _, c := range a.Constraints() {
		switch c := c.(type) {
		case *mechanism.Coaxial:
			cs = append(cs, c)
		case *mechanism.Angular:
			as = append(as, c)
		case *mechanism.Slider:
			ss = append(ss, c)
		}
	}

	return cs, as, ss
}
