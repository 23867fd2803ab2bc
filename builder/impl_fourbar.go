// SPDX-License-Identifier: MIT
// Package: linkage/builder
//
// impl_fourbar.go - implementation of the FourBar(ground, crank, coupler, rocker) constructor.
//
// Contract:
//   • All lengths > 0 and the coupler/rocker circles must meet at crank angle 0
//     (else ErrBadDimensions).
//   • Adds two anchor markers O2=(0,0), O4=(ground,0), then links crank,
//     coupler and rocker in that order, each with marker 1 at its far end.
//   • Joints O2, A, B, O4 in that order; a motor on O2 turns the crank.
//   • The coupler–rocker joint B starts above the ground line.
//
// Complexity: O(1).

package builder

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/linkage/geom"
	"github.com/katalvlaran/linkage/mechanism"
)

const methodFourBar = "FourBar"

// FourBar returns a Constructor for a planar four-bar with the crank along +x.
func FourBar(ground, crank, coupler, rocker float64) Constructor {
	return func(a *mechanism.Assembly, cfg builderConfig) error {
		for _, v := range []float64{ground, crank, coupler, rocker} {
			if !(v > 0) || math.IsInf(v, 0) {
				return fmt.Errorf("%s: length %v: %w", methodFourBar, v, ErrBadDimensions)
			}
		}

		// 1) Coupler–rocker joint at crank angle 0.
		pa, o4 := geom.Pt(crank, 0), geom.Pt(ground, 0)
		b, ok := circleMeet(pa, coupler, o4, rocker)
		if !ok {
			return fmt.Errorf("%s: %v/%v/%v/%v does not close: %w",
				methodFourBar, ground, crank, coupler, rocker, ErrBadDimensions)
		}

		// 2) Anchor pivots and bars.
		g := a.Anchor()
		m2 := g.AddLocalMarker(geom.Origin)
		m4 := g.AddLocalMarker(o4)
		cr := bar(a, cfg, "crank", geom.Origin, pa)
		cp := bar(a, cfg, "coupler", pa, b)
		rk := bar(a, cfg, "rocker", o4, b)

		// 3) Joints and motor.
		pivot := mechanism.NewCoaxial("O2",
			mechanism.Endpoint{Link: g, Marker: m2}, mechanism.Endpoint{Link: cr, Marker: 0})
		joints := []*mechanism.Coaxial{
			pivot,
			mechanism.NewCoaxial("A", mechanism.Endpoint{Link: cr, Marker: 1}, mechanism.Endpoint{Link: cp, Marker: 0}),
			mechanism.NewCoaxial("B", mechanism.Endpoint{Link: cp, Marker: 1}, mechanism.Endpoint{Link: rk, Marker: 1}),
			mechanism.NewCoaxial("O4", mechanism.Endpoint{Link: g, Marker: m4}, mechanism.Endpoint{Link: rk, Marker: 0}),
		}
		for _, j := range joints {
			if err := a.AddConstraint(j); err != nil {
				return fmt.Errorf("%s: %w", methodFourBar, err)
			}
		}
		if err := a.AddMotor(mechanism.NewMotor("", pivot, g, cr)); err != nil {
			return fmt.Errorf("%s: %w", methodFourBar, err)
		}

		return nil
	}
}

// bar adds a link from p to q: origin at p, angle along q−p, marker 1 at q.
func bar(a *mechanism.Assembly, cfg builderConfig, fallback string, p, q geom.Point) *mechanism.Link {
	l := a.NewLink(linkName(a, cfg, fallback), p, geom.Heading(r2.Sub(q, p)))
	l.AddLocalMarker(geom.Pt(geom.Distance(p, q), 0))

	return l
}

// circleMeet returns the intersection of circle(c1, r1) and circle(c2, rad2)
// with the larger y, or false when the circles do not meet.
func circleMeet(c1 geom.Point, r1 float64, c2 geom.Point, rad2 float64) (geom.Point, bool) {
	d := geom.Distance(c1, c2)
	if d == 0 || d > r1+rad2 || d < math.Abs(r1-rad2) {
		return geom.Point{}, false
	}
	along := (r1*r1 - rad2*rad2 + d*d) / (2 * d)
	h := math.Sqrt(math.Max(0, r1*r1-along*along))
	u := r2.Scale(1/d, r2.Sub(c2, c1))
	base := r2.Add(c1, r2.Scale(along, u))
	p := r2.Add(base, r2.Scale(h, geom.Pt(-u.Y, u.X)))
	q := r2.Add(base, r2.Scale(h, geom.Pt(u.Y, -u.X)))
	if q.Y > p.Y {
		p = q
	}

	return p, true
}
