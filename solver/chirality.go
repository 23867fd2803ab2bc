package solver

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/linkage/geom"
	"github.com/katalvlaran/linkage/mechanism"
)

// chirality maps an ordered triple of revolute joints to the orientation sign
// of the triangle they form at the pose the map was built from.
type chirality map[[3]*mechanism.Coaxial]int

// newChirality records μ = sign(cross(p2−p1, p3−p1)) for every ordered triple
// of distinct joints, with pi the global position of joint i's first endpoint.
func newChirality(cs []*mechanism.Coaxial, tol float64) chirality {
	m := make(chirality, len(cs)*len(cs)*len(cs))
	pts := make([]geom.Point, len(cs))
	for i, c := range cs {
		if c.Len() > 0 {
			pts[i] = c.GlobalPoint(0)
		}
	}

	for i, c1 := range cs {
		for j, c2 := range cs {
			if j == i {
				continue
			}
			for k, c3 := range cs {
				if k == i || k == j {
					continue
				}
				v := geom.Cross(r2.Sub(pts[j], pts[i]), r2.Sub(pts[k], pts[i]))
				m[[3]*mechanism.Coaxial{c1, c2, c3}] = geom.Sign(v, tol)
			}
		}
	}

	return m
}

// sign returns μ for the triple, or 0 when the triple is unknown.
func (m chirality) sign(c1, c2, c3 *mechanism.Coaxial) int {
	return m[[3]*mechanism.Coaxial{c1, c2, c3}]
}
