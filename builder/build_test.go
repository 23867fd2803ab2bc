// File: builder/build_test.go
// Role: Parse/Load/Build/Encode behavior over YAML mechanism documents.
package builder_test

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/linkage/builder"
	"github.com/katalvlaran/linkage/geom"
	"github.com/katalvlaran/linkage/mechanism"
	"github.com/katalvlaran/linkage/solver"
)

// fourBarYAML is the crank-rocker with ground 4, crank 1, coupler 4, rocker 3,
// assembled at crank angle 0 and driven to 180°.
const fourBarYAML = `
units: deg
anchor:
  markers: [[0, 0], [4, 0]]
links:
  - name: crank
    origin: [0, 0]
    markers: [[1, 0]]
  - name: coupler
    origin: [1, 0]
    global: true
    markers: [[3.6666666666666665, 2.9814239699997196]]
  - name: rocker
    origin: [4, 0]
    global: true
    markers: [[3.6666666666666665, 2.9814239699997196]]
joints:
  - name: O2
    ends: [{link: Anchor, marker: 0}, {link: crank, marker: 0}]
  - name: A
    ends: [{link: crank, marker: 1}, {link: coupler, marker: 0}]
  - name: B
    ends: [{link: coupler, marker: 1}, {link: rocker, marker: 1}]
  - name: O4
    ends: [{link: Anchor, marker: 1}, {link: rocker, marker: 0}]
motors:
  - {name: M, joint: O2, base: Anchor, target: crank, angle: 180}
`

// BuildSuite exercises document decoding and assembly construction.
type BuildSuite struct {
	suite.Suite
}

func TestBuildSuite(t *testing.T) {
	suite.Run(t, new(BuildSuite))
}

// TestFourBar builds the document and solves it at the motor angle.
func (s *BuildSuite) TestFourBar() {
	a, err := builder.Parse(strings.NewReader(fourBarYAML))
	s.Require().NoError(err)

	s.Require().Len(a.Links(), 4)
	s.Require().Len(a.Coaxials(), 4)
	s.Require().Len(a.Motors(), 1)
	s.Require().Equal(0, a.DOF())

	m := a.Motor("M")
	s.Require().NotNil(m)
	s.Require().InDelta(math.Pi, m.Angle(), 1e-12)
	s.Require().Equal("O2", m.Joint().Name())

	res, err := solver.New().Solve(a)
	s.Require().NoError(err)
	s.Require().True(res.Solved())

	b := a.Link("rocker").GlobalMarker(1)
	s.Require().InDelta(2.2, b.X, 1e-9)
	s.Require().InDelta(2.4, b.Y, 1e-9)
}

// TestRadians checks that radian documents are not converted.
func (s *BuildSuite) TestRadians() {
	doc := strings.Replace(fourBarYAML, "units: deg", "units: rad", 1)
	doc = strings.Replace(doc, "angle: 180", "angle: 3.141592653589793", 1)
	a, err := builder.Parse(strings.NewReader(doc))
	s.Require().NoError(err)
	s.Require().InDelta(math.Pi, a.Motor("M").Angle(), 1e-15)
}

// TestDefaultUnits checks WithUnits applies when the document has no units key.
func (s *BuildSuite) TestDefaultUnits() {
	doc := strings.Replace(fourBarYAML, "units: deg\n", "", 1)
	doc = strings.Replace(doc, "angle: 180", "angle: 1.5", 1)
	a, err := builder.Parse(strings.NewReader(doc), builder.WithUnits(builder.UnitsRadians))
	s.Require().NoError(err)
	s.Require().InDelta(1.5, a.Motor("M").Angle(), 1e-15)
}

// TestFrozenAngle checks an angle without a value holds the current one.
func (s *BuildSuite) TestFrozenAngle() {
	a, err := builder.Parse(strings.NewReader(`
anchor: {}
links:
  - {name: p, origin: [0, 0], angle: 30}
  - {name: q, origin: [1, 0], angle: 75}
angles:
  - {name: free, base: p, target: q}
  - {name: set, base: p, target: q, angle: 10}
`))
	s.Require().NoError(err)

	free, ok := a.Constraint("free").(*mechanism.Angular)
	s.Require().True(ok)
	s.Require().InDelta(math.Pi/4, free.Angle(), 1e-12)
	set, ok := a.Constraint("set").(*mechanism.Angular)
	s.Require().True(ok)
	s.Require().InDelta(math.Pi/18, set.Angle(), 1e-12)
}

// TestSlider builds a slider and checks rail and slide markers.
func (s *BuildSuite) TestSlider() {
	a, err := builder.Parse(strings.NewReader(`
anchor:
  markers: [[0, 0], [5, 0]]
links:
  - {name: piston, origin: [2, 0]}
sliders:
  - {name: rail, base: Anchor, rail: [0, 1], target: piston, slide: 0}
`))
	s.Require().NoError(err)

	sl, ok := a.Constraint("rail").(*mechanism.Slider)
	s.Require().True(ok)
	r0, r1 := sl.RailMarkers()
	s.Require().Equal([2]int{0, 1}, [2]int{r0, r1})
	s.Require().InDelta(0.4, sl.Parameter(), 1e-12)
}

// TestMotorProfile checks profile fields are converted to radians.
func (s *BuildSuite) TestMotorProfile() {
	doc := strings.Replace(fourBarYAML,
		"angle: 180}",
		"init: 90, speed: 360, shift: 45, servo: true, servo_start: 10, servo_end: 20}", 1)
	a, err := builder.Parse(strings.NewReader(doc))
	s.Require().NoError(err)

	m := a.Motor("M")
	p := m.Profile()
	s.Require().True(p.Servo)
	s.Require().InDelta(2*math.Pi, p.Speed, 1e-12)
	s.Require().InDelta(math.Pi/4, p.Shift, 1e-12)
	s.Require().InDelta(math.Pi/18, p.ServoStart, 1e-12)
	s.Require().InDelta(math.Pi/9, p.ServoEnd, 1e-12)
	s.Require().InDelta(math.Pi/2, m.InitAngle(), 1e-12)
	s.Require().InDelta(geom.NormalizeAngle(-math.Pi/2), m.Drive().Angle(), 1e-12)
}

// TestUnnamedLinks checks the ID scheme and the assembly policy name links.
func (s *BuildSuite) TestUnnamedLinks() {
	const doc = `
anchor: {}
links:
  - {origin: [0, 0]}
  - {origin: [1, 0]}
joints:
  - ends: [{link: B, marker: 0}, {link: A, marker: 0}]
`
	a, err := builder.Parse(strings.NewReader(doc), builder.WithLetterIDs())
	s.Require().NoError(err)
	s.Require().NotNil(a.Link("A"))
	s.Require().NotNil(a.Link("B"))
	s.Require().Equal("CC1", a.Coaxials()[0].Name())

	_, err = builder.Parse(strings.NewReader(doc))
	s.Require().ErrorIs(err, builder.ErrUnknownLink)

	a, err = builder.Parse(strings.NewReader(strings.NewReplacer("B,", "Link2,", "A,", "Link1,").Replace(doc)))
	s.Require().NoError(err)
	s.Require().NotNil(a.Link("Link1"))
}

// TestRoundTrip encodes an assembly and builds it again.
func (s *BuildSuite) TestRoundTrip() {
	a, err := builder.Parse(strings.NewReader(fourBarYAML))
	s.Require().NoError(err)
	_, err = a.Fix(a.Link("coupler"), a.Link("rocker"))
	s.Require().NoError(err)

	for _, units := range []string{builder.UnitsDegrees, builder.UnitsRadians} {
		var buf bytes.Buffer
		s.Require().NoError(builder.Encode(&buf, a, builder.WithUnits(units)))

		b, err := builder.Parse(&buf)
		s.Require().NoError(err, units)
		s.Require().Len(b.Links(), len(a.Links()))
		s.Require().Len(b.Constraints(), len(a.Constraints()))
		for i, l := range a.Links() {
			m := b.Links()[i]
			s.Require().Equal(l.Name(), m.Name())
			s.Require().Equal(l.MarkerCount(), m.MarkerCount())
			s.Require().InDelta(l.Angle(), m.Angle(), 1e-12)
			for j := 0; j < l.MarkerCount(); j++ {
				s.Require().InDelta(0, geom.Distance(l.GlobalMarker(j), m.GlobalMarker(j)), 1e-12)
			}
		}
		s.Require().ElementsMatch(constraintNames(a), constraintNames(b))
		s.Require().InDelta(a.Motor("M").Angle(), b.Motor("M").Angle(), 1e-12)
	}
}

// TestLoad reads a document from disk.
func (s *BuildSuite) TestLoad() {
	path := filepath.Join(s.T().TempDir(), "fourbar.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(fourBarYAML), 0o600))

	a, err := builder.Load(path)
	s.Require().NoError(err)
	s.Require().NotNil(a.Link("coupler"))

	_, err = builder.Load(filepath.Join(s.T().TempDir(), "missing.yaml"))
	s.Require().ErrorIs(err, os.ErrNotExist)
}

// TestErrors covers every rejection path with its sentinel.
func TestErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		doc  string
		opts []builder.BuilderOption
		want error
	}{
		{"Syntax", "anchor: [", nil, builder.ErrBadDocument},
		{"UnknownKey", "anchor: {}\nbogus: 1\n", nil, builder.ErrBadDocument},
		{"Units", "units: grad\nanchor: {}\n", nil, builder.ErrBadUnits},
		{"UnknownLink", "anchor: {}\njoints:\n  - ends: [{link: x, marker: 0}, {link: Anchor, marker: 0}]\n", nil, builder.ErrUnknownLink},
		{"UnknownJoint", "anchor: {}\nlinks: [{name: c, origin: [0, 0]}]\nmotors: [{joint: J, base: Anchor, target: c}]\n", nil, builder.ErrUnknownJoint},
		{"DuplicateLink", "anchor: {}\nlinks: [{name: c, origin: [0, 0]}, {name: c, origin: [1, 0]}]\n", nil, builder.ErrDuplicateName},
		{"AnchorNameClash", "anchor: {name: c}\nlinks: [{name: c, origin: [0, 0]}]\n", nil, builder.ErrDuplicateName},
		{"DuplicateConstraint", "anchor: {}\nlinks: [{name: c, origin: [0, 0]}]\nangles: [{name: k, base: Anchor, target: c}, {name: k, base: Anchor, target: c}]\n", nil, builder.ErrDuplicateName},
		{"PolicyNameClash", "anchor: {markers: [[0, 0]]}\nlinks: [{name: c, origin: [0, 0]}]\njoints:\n  - {name: CC1, ends: [{link: c, marker: 0}, {link: Anchor, marker: 0}]}\n  - {ends: [{link: Anchor, marker: 0}, {link: c, marker: 0}]}\n", nil, builder.ErrDuplicateName},
		{"PolicyMotorClash", "anchor: {}\nlinks: [{name: c, origin: [0, 0]}, {name: d, origin: [1, 0]}]\nmotors: [{name: Motor1, base: Anchor, target: c}, {base: Anchor, target: d}]\n", nil, builder.ErrDuplicateName},
		{"NegativeMarker", "anchor: {markers: [[0, 0]]}\nlinks: [{name: c, origin: [0, 0]}]\njoints:\n  - ends: [{link: c, marker: -1}, {link: Anchor, marker: 0}]\n", nil, builder.ErrBadDocument},
		{"MarkerRange", "anchor: {}\nlinks: [{name: c, origin: [0, 0]}]\njoints:\n  - ends: [{link: c, marker: 0}, {link: Anchor, marker: 0}]\n", nil, mechanism.ErrMarkerRange},
		{"EndpointCount", "anchor: {}\nlinks: [{name: c, origin: [0, 0]}]\njoints:\n  - ends: [{link: c, marker: 0}]\n", nil, mechanism.ErrEndpointCount},
		{"DegenerateRail", "anchor: {markers: [[1, 1], [1, 1]]}\nlinks: [{name: c, origin: [0, 0]}]\nsliders: [{base: Anchor, rail: [0, 1], target: c, slide: 0}]\n", nil, mechanism.ErrDegenerateRail},
		{"NotFinite", "anchor: {}\nlinks: [{name: c, origin: [.nan, 0]}]\n", nil, builder.ErrBadDocument},
		{"Strict", "anchor: {}\nlinks: [{name: c, origin: [0, 0]}]\nangles: [{base: c, target: c}]\n", []builder.BuilderOption{builder.WithStrict()}, builder.ErrStrict},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a, err := builder.Parse(strings.NewReader(tc.doc), tc.opts...)
			require.ErrorIs(t, err, tc.want)
			require.Nil(t, a)
		})
	}
}

// TestWarningsWithoutStrict checks warnings alone do not fail a build.
func TestWarningsWithoutStrict(t *testing.T) {
	a, err := builder.Parse(strings.NewReader("anchor: {}\nlinks: [{name: c, origin: [0, 0]}]\nangles: [{base: c, target: c}]\n"))
	require.NoError(t, err)
	require.NotEmpty(t, a.Validate().Warnings)
}

// TestExportUnits checks Export rejects unknown units.
func TestExportUnits(t *testing.T) {
	_, err := builder.Export(mechanism.NewAssembly(), "grad")
	require.ErrorIs(t, err, builder.ErrBadUnits)
}

func constraintNames(a *mechanism.Assembly) []string {
	var out []string
	for _, c := range a.Constraints() {
		out = append(out, c.Name())
	}

	return out
}

// TestExampleFiles builds and solves every mechanism file shipped in examples/.
func TestExampleFiles(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "examples", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		a, err := builder.Load(path, builder.WithStrict())
		require.NoError(t, err, path)
		require.Equal(t, 0, a.DOF(), path)

		res, err := solver.New().Solve(a)
		require.NoError(t, err, path)
		require.True(t, res.Solved(), path)
	}
}
