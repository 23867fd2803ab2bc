package solver

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/linkage/geom"
)

// xxxTriangle is a loop of three groups joined pairwise by revolute joints.
// b2f, b2o and f2o are directed base→floating, base→output and
// floating→output.
type xxxTriangle struct {
	base, floating, output *rigidGroup
	b2f, b2o, f2o          coaxialInstance
}

// connectedGroups returns the groups reached by exactly one of the outgoing
// instances, in first-seen order. Groups reached more than once are dropped.
func connectedGroups(gl *groupList, out []coaxialInstance) ([]*rigidGroup, map[*rigidGroup]coaxialInstance) {
	var groups []*rigidGroup
	via := make(map[*rigidGroup]coaxialInstance)
	dup := make(map[*rigidGroup]bool)
	for _, ci := range out {
		tg := gl.find(ci.targetLink())
		if tg == nil || dup[tg] {
			continue
		}
		if _, ok := via[tg]; ok {
			dup[tg] = true
			delete(via, tg)
			continue
		}
		via[tg] = ci
		groups = append(groups, tg)
	}

	kept := groups[:0]
	for _, g := range groups {
		if !dup[g] {
			kept = append(kept, g)
		}
	}

	return kept, via
}

// findXXX looks for a revolute triangle rooted at base. When the floating or
// output group holds the anchor, roles are rotated so that the anchor's group
// is the triangle base.
func (p *pass) findXXX(base *rigidGroup, out []coaxialInstance) *xxxTriangle {
	// 1) Candidate groups reached by exactly one joint.
	connected, via := connectedGroups(p.groups, out)
	if len(connected) < 2 {
		return nil
	}

	// 2) Pairs (floating, output) with exactly one joint between them.
	for i := 0; i < len(connected)-1; i++ {
		f := connected[i]
		fOut := f.outgoingCoaxial(p.coaxials, p.groups)
		for j := i + 1; j < len(connected); j++ {
			o := connected[j]

			var f2o coaxialInstance
			count := 0
			for _, ci := range fOut {
				if o.has(ci.targetLink()) {
					f2o = ci
					count++
				}
			}
			if count != 1 {
				continue
			}

			b2f, b2o := via[f], via[o]
			if b2f.c == b2o.c || b2f.c == f2o.c || b2o.c == f2o.c {
				continue
			}

			// 3) Keep the anchor's group at the base.
			t := &xxxTriangle{base: base, floating: f, output: o, b2f: b2f, b2o: b2o, f2o: f2o}
			if !base.isBase() {
				switch {
				case f.isBase():
					t.base, t.floating = f, base
					t.b2f = b2f.inverse()
					t.b2o, t.f2o = f2o, b2o
				case o.isBase():
					t.base, t.output = o, base
					t.b2o = b2o.inverse()
					t.b2f, t.f2o = f2o.inverse(), b2f.inverse()
				}
			}

			return t
		}
	}

	return nil
}

// resolveXXX closes the triangle with the law of cosines and merges floating
// and output into base.
func (p *pass) resolveXXX(t *xxxTriangle) {
	b, f, o := t.base, t.floating, t.output

	// 1) Joint positions, each in the frame of the group owning the endpoint.
	pBF := b.localPositionOf(t.b2f.baseLink(), t.b2f.basePoint())
	pBO := b.localPositionOf(t.b2o.baseLink(), t.b2o.basePoint())
	pFB := f.localPositionOf(t.b2f.targetLink(), t.b2f.targetPoint())
	pFO := f.localPositionOf(t.f2o.baseLink(), t.f2o.basePoint())
	pOB := o.localPositionOf(t.b2o.targetLink(), t.b2o.targetPoint())
	pOF := o.localPositionOf(t.f2o.targetLink(), t.f2o.targetPoint())

	r1 := r2.Sub(pBO, pBF)
	r2v := r2.Sub(pFO, pFB)
	r3 := r2.Sub(pOF, pOB)
	d1, d2, d3 := geom.Length(r1), geom.Length(r2v), geom.Length(r3)

	// 2) Interior angles at the base joints.
	a1, a2, ok := closeTriangle(d1, d2, d3)
	if ok {
		p.raise(triangleCost(d1, d2, d3))
	} else {
		p.raise(math.Inf(1))
		tracer().Infof("solver: triangle %s/%s/%s cannot close (d=%.6g,%.6g,%.6g)",
			t.b2f.c.Name(), t.b2o.c.Name(), t.f2o.c.Name(), d1, d2, d3)
	}

	// 3) Branch from the chirality recorded at prepare time. Collinear triples
	// have no recorded side; they take the counter-clockwise one.
	mu := float64(p.s.chirality.sign(t.b2f.c, t.b2o.c, t.f2o.c))
	if mu == 0 {
		mu = 1
	}

	thetaF := geom.Heading(r1) + mu*a1 - geom.Heading(r2v)
	thetaO := geom.Heading(r2.Scale(-1, r1)) - mu*a2 - geom.Heading(r3)

	// 4) Place and merge.
	f.zeroToPoint(pFB)
	f.relPos, f.relAngle = pBF, thetaF
	o.zeroToPoint(pOB)
	o.relPos, o.relAngle = pBO, thetaO

	tracer().Debugf("solver: XXX %s + %s → %s", f.name(), o.name(), b.name())
	p.groups.merge(b, f)
	p.groups.merge(b, o)
}

// closeTriangle returns the interior angles at the two ends of side d1 for a
// triangle with sides d1, d2 (adjacent at the first end) and d3 (adjacent at
// the second end). When the sides violate the triangle inequality it returns
// the folded placement and ok=false:
//
//	d1 = 0 or d1 ≥ d2+d3 → (0, 0)
//	d2 ≥ d1+d3          → (0, π)
//	d3 ≥ d1+d2          → (π, 0)
func closeTriangle(d1, d2, d3 float64) (a1, a2 float64, ok bool) {
	switch {
	case d1 == 0 || d1 >= d2+d3:
		return 0, 0, false
	case d2 >= d1+d3:
		return 0, math.Pi, false
	case d3 >= d1+d2:
		return math.Pi, 0, false
	}

	a1 = math.Acos(clampUnit((d1*d1 + d2*d2 - d3*d3) / (2 * d1 * d2)))
	a2 = math.Acos(clampUnit((d1*d1 + d3*d3 - d2*d2) / (2 * d1 * d3)))

	return a1, a2, true
}

// triangleCost is 3(dmin+dmid)/(dmin+dmid−dmax): 6 for an equilateral
// triangle, +Inf for a flat or impossible one.
func triangleCost(d1, d2, d3 float64) float64 {
	d := []float64{d1, d2, d3}
	sort.Float64s(d)
	slack := d[0] + d[1] - d[2]
	if slack <= 0 {
		return math.Inf(1)
	}

	return 3 * (d[0] + d[1]) / slack
}

func clampUnit(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
