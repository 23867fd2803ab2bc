// File: solver/example_test.go
package solver_test

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/linkage/geom"
	"github.com/katalvlaran/linkage/mechanism"
	"github.com/katalvlaran/linkage/solver"
)

////////////////////////////////////////////////////////////////////////////////
// Example: four-bar crank-rocker
////////////////////////////////////////////////////////////////////////////////

// ExampleSolver_Solve drives a crank-rocker to θ=π.
// Scenario:
//
//   - Ground pivots O2=(0,0), O4=(4,0); crank 1, coupler 4, rocker 3
//   - Assembled at θ=0 with the coupler–rocker joint B above the ground line
//   - At θ=π the crank points left, A=(-1,0), and A–O4–B is a 3-4-5 triangle
//
// The chirality recorded at the assembly pose keeps B above the line.
func ExampleSolver_Solve() {
	a := mechanism.NewAssembly()
	ground, _ := a.NewAnchor()
	o2 := ground.AddLocalMarker(geom.Pt(0, 0))
	o4 := ground.AddLocalMarker(geom.Pt(4, 0))

	b := geom.Pt(11.0/3, math.Sqrt(80.0/9))
	crank := a.NewLink("crank", geom.Origin, 0)
	ca := crank.AddLocalMarker(geom.Pt(1, 0))
	coupler := a.NewLink("coupler", geom.Pt(1, 0), 0)
	cb := coupler.AddGlobalMarker(b)
	rocker := a.NewLink("rocker", geom.Pt(4, 0), 0)
	rb := rocker.AddGlobalMarker(b)

	pivot, _ := a.Join(ground, o2, crank, 0)
	_, _ = a.Join(crank, ca, coupler, 0)
	_, _ = a.Join(ground, o4, rocker, 0)
	_, _ = a.Join(coupler, cb, rocker, rb)
	motor, _ := a.Drive(pivot, ground, crank)

	s := solver.New()
	motor.SetAngle(math.Pi)
	res, err := s.Solve(a)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	p := rocker.GlobalMarker(rb)
	swing := geom.Heading(r2.Sub(p, ground.GlobalMarker(o4))) * 180 / math.Pi
	fmt.Println("solved:", res.Solved())
	fmt.Printf("B = (%.3f, %.3f)\n", p.X, p.Y)
	fmt.Printf("rocker at %.2f°\n", swing)
	fmt.Printf("cost %.1f\n", res.Cost)

	// Output:
	// solved: true
	// B = (2.200, 2.400)
	// rocker at 126.87°
	// cost 10.5
}
