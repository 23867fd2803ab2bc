package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// Point is a position or displacement in the plane.
type Point = r2.Vec

// Origin is the point (0, 0).
var Origin = Point{}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Distance returns the Euclidean distance between p and q.
// It is translation invariant: Distance(p+t, q+t) == Distance(p, q).
func Distance(p, q Point) float64 {
	return r2.Norm(r2.Sub(p, q))
}

// Length returns |p|.
func Length(p Point) float64 {
	return r2.Norm(p)
}

// Rotate returns p rotated about the origin by angle.
func Rotate(p Point, angle float64) Point {
	return r2.Rotate(p, angle, Origin)
}

// Transform rotates p about the origin by angle, then translates it by offset.
func Transform(p Point, angle float64, offset Point) Point {
	return r2.Add(Rotate(p, angle), offset)
}

// Inverse undoes Transform: it translates p by -offset, then rotates by -angle.
func Inverse(p Point, angle float64, offset Point) Point {
	return Rotate(r2.Sub(p, offset), -angle)
}

// Heading returns the direction of p, atan2(y, x).
func Heading(p Point) float64 {
	return math.Atan2(p.Y, p.X)
}

// Cross returns the z component of the cross product p × q.
func Cross(p, q Point) float64 {
	return r2.Cross(p, q)
}

// Sign returns -1, 0 or +1 for v, treating |v| <= tol as zero.
func Sign(v, tol float64) int {
	switch {
	case v > tol:
		return 1
	case v < -tol:
		return -1
	default:
		return 0
	}
}

// NormalizeAngle folds a into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// math.Mod of values just below zero can round up to exactly 2π.
	if a >= TwoPi {
		a = 0
	}

	return a
}

// AngleDiff returns a-b wrapped into (-π, π].
func AngleDiff(a, b float64) float64 {
	d := NormalizeAngle(a - b)
	if d > math.Pi {
		d -= TwoPi
	}

	return d
}
