package solver_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linkage/geom"
	"github.com/katalvlaran/linkage/mechanism"
)

// fourBar is a Grashof crank-rocker: ground 4, crank 1, coupler 4, rocker 3.
type fourBar struct {
	asm                     *mechanism.Assembly
	ground                  *mechanism.Link
	crank, coupler, rocker  *mechanism.Link
	motor                   *mechanism.Motor
	o2, o4, crankA, coupleB int
	rockerB                 int
}

// newFourBar assembles the crank-rocker at crank angle 0, with the
// coupler–rocker joint above the ground line, or below it when mirror is set.
func newFourBar(t testing.TB, mirror bool) *fourBar {
	t.Helper()
	fb := &fourBar{asm: mechanism.NewAssembly()}

	var err error
	fb.ground, err = fb.asm.NewAnchor()
	require.NoError(t, err)
	fb.o2 = fb.ground.AddLocalMarker(geom.Pt(0, 0))
	fb.o4 = fb.ground.AddLocalMarker(geom.Pt(4, 0))

	by := math.Sqrt(80.0 / 9)
	if mirror {
		by = -by
	}
	b := geom.Pt(11.0/3, by)

	fb.crank = fb.asm.NewLink("crank", geom.Origin, 0)
	fb.crankA = fb.crank.AddLocalMarker(geom.Pt(1, 0))
	fb.coupler = fb.asm.NewLink("coupler", geom.Pt(1, 0), 0)
	fb.coupleB = fb.coupler.AddGlobalMarker(b)
	fb.rocker = fb.asm.NewLink("rocker", geom.Pt(4, 0), 0)
	fb.rockerB = fb.rocker.AddGlobalMarker(b)

	pivot, err := fb.asm.Join(fb.ground, fb.o2, fb.crank, 0)
	require.NoError(t, err)
	_, err = fb.asm.Join(fb.crank, fb.crankA, fb.coupler, 0)
	require.NoError(t, err)
	_, err = fb.asm.Join(fb.ground, fb.o4, fb.rocker, 0)
	require.NoError(t, err)
	_, err = fb.asm.Join(fb.coupler, fb.coupleB, fb.rocker, fb.rockerB)
	require.NoError(t, err)
	fb.motor, err = fb.asm.Drive(pivot, fb.ground, fb.crank)
	require.NoError(t, err)

	return fb
}

// requireClosed checks every joint of the four-bar coincides.
func (fb *fourBar) requireClosed(t testing.TB, tol float64) {
	t.Helper()
	requireNear(t, fb.ground.GlobalMarker(fb.o2), fb.crank.GlobalMarker(0), tol)
	requireNear(t, fb.crank.GlobalMarker(fb.crankA), fb.coupler.GlobalMarker(0), tol)
	requireNear(t, fb.ground.GlobalMarker(fb.o4), fb.rocker.GlobalMarker(0), tol)
	requireNear(t, fb.coupler.GlobalMarker(fb.coupleB), fb.rocker.GlobalMarker(fb.rockerB), tol)
}

// jointB returns the coupler–rocker joint position.
func (fb *fourBar) jointB() geom.Point { return fb.rocker.GlobalMarker(fb.rockerB) }

// sliderCrank is crank 1, rod 3 and a piston sliding on a ground rail.
type sliderCrank struct {
	asm          *mechanism.Assembly
	ground       *mechanism.Link
	crank, rod   *mechanism.Link
	piston       *mechanism.Link
	slider       *mechanism.Slider
	motor        *mechanism.Motor
	crankA, rodP int
}

// newSliderCrank assembles the slider-crank at crank angle 0 with the piston at
// (4,0) and the rail running from rail0 to rail1 on the ground.
func newSliderCrank(t testing.TB, rail0, rail1 geom.Point) *sliderCrank {
	t.Helper()
	sc := &sliderCrank{asm: mechanism.NewAssembly()}

	var err error
	sc.ground, err = sc.asm.NewAnchor()
	require.NoError(t, err)
	o := sc.ground.AddLocalMarker(geom.Pt(0, 0))
	r0 := sc.ground.AddLocalMarker(rail0)
	r1 := sc.ground.AddLocalMarker(rail1)

	sc.crank = sc.asm.NewLink("crank", geom.Origin, 0)
	sc.crankA = sc.crank.AddLocalMarker(geom.Pt(1, 0))
	sc.rod = sc.asm.NewLink("rod", geom.Pt(1, 0), 0)
	sc.rodP = sc.rod.AddLocalMarker(geom.Pt(3, 0))
	sc.piston = sc.asm.NewLink("piston", geom.Pt(4, 0), 0)

	pivot, err := sc.asm.Join(sc.ground, o, sc.crank, 0)
	require.NoError(t, err)
	_, err = sc.asm.Join(sc.crank, sc.crankA, sc.rod, 0)
	require.NoError(t, err)
	_, err = sc.asm.Join(sc.rod, sc.rodP, sc.piston, 0)
	require.NoError(t, err)
	sc.slider, err = sc.asm.Slide(sc.ground, r0, r1, sc.piston, 0)
	require.NoError(t, err)
	sc.motor, err = sc.asm.Drive(pivot, sc.ground, sc.crank)
	require.NoError(t, err)

	return sc
}

// pistonX is the exact piston position for crank angle θ.
func pistonX(theta float64) float64 {
	s := math.Sin(theta)
	return math.Cos(theta) + math.Sqrt(9-s*s)
}

// triangle is three links on a ground with two pivots: floating hangs from
// pivot 1, output from pivot 2, and floating joins output.
type triangle struct {
	asm              *mechanism.Assembly
	ground           *mechanism.Link
	floating, output *mechanism.Link
	pivot1           int
}

// newTriangle builds a zero-DOF triangle with ground side d1, floating side d2
// and output side d3. The floating link starts along +x from the origin; the
// output starts at (d1,0) with angle outAngle.
func newTriangle(t testing.TB, d1, d2, d3, outAngle float64) *triangle {
	t.Helper()
	tr := &triangle{asm: mechanism.NewAssembly()}

	var err error
	tr.ground, err = tr.asm.NewAnchor()
	require.NoError(t, err)
	p1 := tr.ground.AddLocalMarker(geom.Pt(0, 0))
	tr.pivot1 = p1
	p2 := tr.ground.AddLocalMarker(geom.Pt(d1, 0))

	tr.floating = tr.asm.NewLink("floating", geom.Origin, 0)
	fo := tr.floating.AddLocalMarker(geom.Pt(d2, 0))
	tr.output = tr.asm.NewLink("output", geom.Pt(d1, 0), outAngle)
	of := tr.output.AddLocalMarker(geom.Pt(d3, 0))

	_, err = tr.asm.Join(tr.ground, p1, tr.floating, 0)
	require.NoError(t, err)
	_, err = tr.asm.Join(tr.ground, p2, tr.output, 0)
	require.NoError(t, err)
	_, err = tr.asm.Join(tr.floating, fo, tr.output, of)
	require.NoError(t, err)

	return tr
}

// splitTriangle is the 3-4-5 triangle with ground pivots (0,0) and (4,0) and
// apex (0,3). Its long side is two links, right and pin, held together by a
// joint and a fixed angle, so the loop through the anchor only appears once
// pin has been attached to right.
type splitTriangle struct {
	asm                 *mechanism.Assembly
	ground              *mechanism.Link
	left, right, pin    *mechanism.Link
	leftApex, rightApex int
}

// newSplitTriangle assembles the triangle at its closed pose. With anchorFirst
// the ground–pin joint is declared before the left–right apex joint.
func newSplitTriangle(t testing.TB, anchorFirst bool) *splitTriangle {
	t.Helper()
	st := &splitTriangle{asm: mechanism.NewAssembly()}

	var err error
	st.ground, err = st.asm.NewAnchor()
	require.NoError(t, err)
	a0 := st.ground.AddLocalMarker(geom.Pt(0, 0))
	a1 := st.ground.AddLocalMarker(geom.Pt(4, 0))

	apex := geom.Pt(0, 3)
	st.left = st.asm.NewLink("left", geom.Origin, 0)
	st.leftApex = st.left.AddGlobalMarker(apex)
	st.right = st.asm.NewLink("right", geom.Pt(4, 0), 0)
	st.rightApex = st.right.AddGlobalMarker(apex)
	st.pin = st.asm.NewLink("pin", geom.Pt(4, 0), 0)

	join := func(la *mechanism.Link, ma int, lb *mechanism.Link, mb int) {
		_, err := st.asm.Join(la, ma, lb, mb)
		require.NoError(t, err)
	}
	join(st.ground, a0, st.left, 0)
	if anchorFirst {
		join(st.ground, a1, st.pin, 0)
		join(st.right, 0, st.pin, 0)
		join(st.left, st.leftApex, st.right, st.rightApex)
	} else {
		join(st.left, st.leftApex, st.right, st.rightApex)
		join(st.ground, a1, st.pin, 0)
		join(st.right, 0, st.pin, 0)
	}
	_, err = st.asm.Fix(st.right, st.pin)
	require.NoError(t, err)

	return st
}

func requireNear(t testing.TB, want, got geom.Point, tol float64) {
	t.Helper()
	require.InDeltaf(t, want.X, got.X, tol, "x: want %v, got %v", want, got)
	require.InDeltaf(t, want.Y, got.Y, tol, "y: want %v, got %v", want, got)
}

func requireAngle(t testing.TB, want, got, tol float64) {
	t.Helper()
	require.InDeltaf(t, 0, geom.AngleDiff(got, want), tol, "angle: want %v, got %v", want, got)
}
