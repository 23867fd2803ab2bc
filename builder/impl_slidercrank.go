// SPDX-License-Identifier: MIT
// Package: linkage/builder
//
// impl_slidercrank.go - implementation of the SliderCrank(crank, rod) constructor.
//
// Contract:
//   • 0 < crank < rod (else ErrBadDimensions).
//   • Adds anchor markers O=(0,0) and the rail ends (rod−crank, 0) and
//     (rod+crank, 0), which bound the full piston stroke.
//   • Links crank, rod and piston; joints O, A, P; slider "rail" carrying
//     piston marker 0; a motor on O turns the crank.
//
// Complexity: O(1).

package builder

import (
	"fmt"
	"math"

	"github.com/katalvlaran/linkage/geom"
	"github.com/katalvlaran/linkage/mechanism"
)

const methodSliderCrank = "SliderCrank"

// SliderCrank returns a Constructor for an in-line slider-crank with the crank
// along +x and the piston at (crank+rod, 0).
func SliderCrank(crank, rod float64) Constructor {
	return func(a *mechanism.Assembly, cfg builderConfig) error {
		if !(crank > 0) || !(rod > crank) || math.IsInf(rod, 0) {
			return fmt.Errorf("%s: crank %v, rod %v: %w", methodSliderCrank, crank, rod, ErrBadDimensions)
		}

		// 1) Anchor pivot and rail.
		g := a.Anchor()
		mo := g.AddLocalMarker(geom.Origin)
		r0 := g.AddLocalMarker(geom.Pt(rod-crank, 0))
		r1 := g.AddLocalMarker(geom.Pt(rod+crank, 0))

		// 2) Bars.
		pa, pp := geom.Pt(crank, 0), geom.Pt(crank+rod, 0)
		cr := bar(a, cfg, "crank", geom.Origin, pa)
		rd := bar(a, cfg, "rod", pa, pp)
		ps := a.NewLink(linkName(a, cfg, "piston"), pp, 0)

		// 3) Joints, slider and motor.
		pivot := mechanism.NewCoaxial("O",
			mechanism.Endpoint{Link: g, Marker: mo}, mechanism.Endpoint{Link: cr, Marker: 0})
		cs := []mechanism.Constraint{
			pivot,
			mechanism.NewCoaxial("A", mechanism.Endpoint{Link: cr, Marker: 1}, mechanism.Endpoint{Link: rd, Marker: 0}),
			mechanism.NewCoaxial("P", mechanism.Endpoint{Link: rd, Marker: 1}, mechanism.Endpoint{Link: ps, Marker: 0}),
			mechanism.NewSlider("rail", g, r0, r1, ps, 0),
		}
		for _, c := range cs {
			if err := a.AddConstraint(c); err != nil {
				return fmt.Errorf("%s: %w", methodSliderCrank, err)
			}
		}
		if err := a.AddMotor(mechanism.NewMotor("", pivot, g, cr)); err != nil {
			return fmt.Errorf("%s: %w", methodSliderCrank, err)
		}

		return nil
	}
}
