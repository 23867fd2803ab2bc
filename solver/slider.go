package solver

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/linkage/geom"
	"github.com/katalvlaran/linkage/mechanism"
)

// xsxTriangle is a loop where group a holds revolute joints to b and c, and a
// slider runs from a rail on b to a slide marker on c.
type xsxTriangle struct {
	a, b, c  *rigidGroup
	a2b, a2c coaxialInstance
	slider   *mechanism.Slider
}

// findXSX looks for a joint–slider–joint loop rooted at base.
func (p *pass) findXSX(base *rigidGroup, out []coaxialInstance) *xsxTriangle {
	connected, via := connectedGroups(p.groups, out)
	if len(connected) < 2 {
		return nil
	}

	for i, b := range connected {
		var rails []*mechanism.Slider
		for _, s := range b.outgoingSliders(p.sliders) {
			if !p.failed[s] {
				rails = append(rails, s)
			}
		}
		if len(rails) == 0 {
			continue
		}
		for j, c := range connected {
			if i == j {
				continue
			}
			var hit *mechanism.Slider
			count := 0
			for _, s := range rails {
				if c.has(s.Target()) {
					hit = s
					count++
				}
			}
			if count != 1 {
				continue
			}
			a2b, a2c := via[b], via[c]
			if a2b.c == a2c.c {
				continue
			}

			return &xsxTriangle{a: base, b: b, c: c, a2b: a2b, a2c: a2c, slider: hit}
		}
	}

	return nil
}

// resolveXSX solves |VA + t·VB| = L for the rail parameter t, where L is the
// distance between the two joints on a, and merges c into b and b into a. It
// returns false when the quadratic has no real root; the slider is then
// skipped for the rest of the pass.
func (p *pass) resolveXSX(t *xsxTriangle) bool {
	a, b, c, s := t.a, t.b, t.c, t.slider

	// 1) Joint separation on a.
	jAB := a.localPositionOf(t.a2b.baseLink(), t.a2b.basePoint())
	jAC := a.localPositionOf(t.a2c.baseLink(), t.a2c.basePoint())
	vp := r2.Sub(jAC, jAB)
	l2 := r2.Norm2(vp)

	// 2) Rail in b's frame; c rotated into b's frame by the slider angle.
	jB := b.localPositionOf(t.a2b.targetLink(), t.a2b.targetPoint())
	r0l, r1l := s.Rail()
	rail0 := b.localPositionOf(s.Base(), r0l)
	rail1 := b.localPositionOf(s.Base(), r1l)
	slide := c.localPositionOf(s.Target(), s.Slide())
	jC := c.localPositionOf(t.a2c.targetLink(), t.a2c.targetPoint())
	psi := s.Base().Angle() + s.Angle() - s.Target().Angle()

	va := r2.Add(r2.Sub(rail0, jB), geom.Rotate(r2.Sub(jC, slide), psi))
	vb := r2.Sub(rail1, rail0)
	vb2 := r2.Norm2(vb)
	ab := r2.Dot(va, vb)

	// 3) Quadratic vb2·t² + 2ab·t + (|va|² − L²) = 0.
	det := ab*ab - vb2*(r2.Norm2(va)-l2)
	if det < 0 || vb2 == 0 {
		p.raise(math.Inf(1))
		p.failed[s] = true
		tracer().Infof("solver: slider %s cannot close (det=%.6g)", s.Name(), det)

		return false
	}
	sq := math.Sqrt(det)
	mu := p.s.sliderRoot(s, ab, sq, vb2)
	u := (-ab + mu*sq) / vb2

	// 4) Out-of-range parameters are clamped and flagged.
	if u < 0 || u > 1 {
		tracer().Infof("solver: slider %s out of range (t=%.6g)", s.Name(), u)
		u = math.Max(0, math.Min(1, u))
		p.asm.MarkUnspecified(s.Base(), s.Target())
	}

	// 5) c onto the rail, b onto a.
	des := r2.Add(va, r2.Scale(u, vb))
	tracer().Debugf("solver: XSX %s + %s → %s (t=%.6g)", b.name(), c.name(), a.name(), u)
	c.zeroToPoint(slide)
	c.relPos, c.relAngle = r2.Add(rail0, r2.Scale(u, vb)), psi
	p.groups.merge(b, c)

	b.zeroToPoint(jB)
	b.relPos, b.relAngle = jAB, geom.Heading(vp)-geom.Heading(des)
	p.groups.merge(a, b)

	return true
}

// sliderRoot returns the cached root sign for s. On first use it picks the
// root closest to the rail parameter recorded at prepare time.
func (s *Solver) sliderRoot(sl *mechanism.Slider, ab, sq, vb2 float64) float64 {
	if mu, ok := s.roots[sl]; ok {
		return mu
	}
	t0, ok := s.initial[sl]
	if !ok {
		t0 = sl.Parameter()
	}
	plus := (-ab + sq) / vb2
	minus := (-ab - sq) / vb2
	mu := 1.0
	if math.Abs(minus-t0) < math.Abs(plus-t0) {
		mu = -1
	}
	s.roots[sl] = mu

	return mu
}
