package mechanism_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/linkage/geom"
	"github.com/katalvlaran/linkage/mechanism"
)

// AssemblySuite exercises assembly bookkeeping.
type AssemblySuite struct {
	suite.Suite
	asm    *mechanism.Assembly
	anchor *mechanism.Link
	crank  *mechanism.Link
}

func (s *AssemblySuite) SetupTest() {
	s.asm = mechanism.NewAssembly()
	var err error
	s.anchor, err = s.asm.NewAnchor()
	require.NoError(s.T(), err)
	s.anchor.AddLocalMarker(geom.Pt(0, 0))
	s.crank = s.asm.NewLink("", geom.Pt(0, 0), 0)
	s.crank.AddLocalMarker(geom.Pt(1, 0))
}

// TestDefaultNames checks the per-assembly sequential naming policy.
func (s *AssemblySuite) TestDefaultNames() {
	require.Equal(s.T(), "Anchor", s.anchor.Name())
	require.Equal(s.T(), "Link1", s.crank.Name())

	j, err := s.asm.Join(s.anchor, 0, s.crank, 0)
	require.NoError(s.T(), err)
	require.Equal(s.T(), "CC1", j.Name())

	m, err := s.asm.Drive(j, s.anchor, s.crank)
	require.NoError(s.T(), err)
	require.Equal(s.T(), "Motor1", m.Name())
	require.Equal(s.T(), "Motor1", m.Drive().Name())

	// A second assembly starts its own sequence.
	other := mechanism.NewAssembly()
	require.Equal(s.T(), "Link1", other.NewLink("", geom.Origin, 0).Name())
}

// TestDuplicateAnchor rejects a second ground link.
func (s *AssemblySuite) TestDuplicateAnchor() {
	_, err := s.asm.NewAnchor()
	require.ErrorIs(s.T(), err, mechanism.ErrDuplicateAnchor)
	require.ErrorIs(s.T(), s.asm.AddLink(s.crank), mechanism.ErrDuplicateLink)
	require.ErrorIs(s.T(), s.asm.AddLink(nil), mechanism.ErrNilLink)
}

// TestNewLinkAlwaysAdds adds every fresh link, even under a name already in
// use, and leaves the clash to Validate.
func (s *AssemblySuite) TestNewLinkAlwaysAdds() {
	rev := s.asm.Revision()
	l := s.asm.NewLink("Link1", geom.Pt(2, 0), 0)
	require.True(s.T(), s.asm.HasLink(l))
	require.Equal(s.T(), rev+1, s.asm.Revision())
	require.Len(s.T(), s.asm.Links(), 3)

	res := s.asm.Validate()
	require.True(s.T(), res.OK())
	require.NotEmpty(s.T(), res.Warnings)
}

// TestForeignLinkAndMarkers rejects constraints on unknown links or markers.
func (s *AssemblySuite) TestForeignLinkAndMarkers() {
	stray := mechanism.NewLink("stray", geom.Origin, 0)
	_, err := s.asm.Join(s.anchor, 0, stray, 0)
	require.ErrorIs(s.T(), err, mechanism.ErrForeignLink)

	_, err = s.asm.Join(s.anchor, 0, s.crank, 7)
	require.ErrorIs(s.T(), err, mechanism.ErrMarkerRange)

	require.ErrorIs(s.T(), s.asm.AddConstraint(nil), mechanism.ErrNilConstraint)
	var nilCoaxial *mechanism.Coaxial
	require.ErrorIs(s.T(), s.asm.AddConstraint(nilCoaxial), mechanism.ErrNilConstraint)
	require.ErrorIs(s.T(), s.asm.AddConstraint(mechanism.NewCoaxial("lonely", mechanism.Endpoint{Link: s.crank})), mechanism.ErrEndpointCount)
}

// TestDOF sums element and constraint contributions.
func (s *AssemblySuite) TestDOF() {
	require.Equal(s.T(), 3, s.asm.DOF())
	j, err := s.asm.Join(s.anchor, 0, s.crank, 0)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, s.asm.DOF())
	_, err = s.asm.Drive(j, s.anchor, s.crank)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 0, s.asm.DOF())
}

// TestMotorAttachDetach keeps the drive constraint in sync with the motor list.
func (s *AssemblySuite) TestMotorAttachDetach() {
	j, err := s.asm.Join(s.anchor, 0, s.crank, 0)
	require.NoError(s.T(), err)
	m, err := s.asm.Drive(j, s.anchor, s.crank)
	require.NoError(s.T(), err)
	require.Len(s.T(), s.asm.Constraints(), 2)

	rev := s.asm.Revision()
	require.True(s.T(), s.asm.RemoveMotor(m))
	require.Len(s.T(), s.asm.Constraints(), 1)
	require.Empty(s.T(), s.asm.Motors())
	require.Greater(s.T(), s.asm.Revision(), rev)
}

// TestMotorSetAngle feeds angle − init into the drive, normalized.
func (s *AssemblySuite) TestMotorSetAngle() {
	j, _ := s.asm.Join(s.anchor, 0, s.crank, 0)
	m, _ := s.asm.Drive(j, s.anchor, s.crank)

	m.SetAngle(-math.Pi / 2)
	require.InDelta(s.T(), 3*math.Pi/2, m.Drive().Angle(), 1e-12)

	m.SetInitAngle(math.Pi / 2)
	require.InDelta(s.T(), math.Pi, m.Drive().Angle(), 1e-12)
	require.InDelta(s.T(), -math.Pi/2, m.Angle(), 1e-12)
}

// TestSnapshotRestore puts poses and motor angles back.
func (s *AssemblySuite) TestSnapshotRestore() {
	j, _ := s.asm.Join(s.anchor, 0, s.crank, 0)
	m, _ := s.asm.Drive(j, s.anchor, s.crank)
	m.SetAngle(0.5)
	s.crank.SetPose(mechanism.Pose{Origin: geom.Pt(1, 2), Angle: 0.5})

	snap := s.asm.Snapshot()
	m.SetAngle(2)
	s.crank.SetPose(mechanism.Pose{Origin: geom.Pt(-3, 4), Angle: 2})

	s.asm.Restore(snap)
	require.Equal(s.T(), geom.Pt(1, 2), s.crank.Origin())
	require.Equal(s.T(), 0.5, s.crank.Angle())
	require.Equal(s.T(), 0.5, m.Angle())
	require.InDelta(s.T(), 0.5, m.Drive().Angle(), 1e-12)
}

// TestCloneIndependence checks the clone shares nothing mutable.
func (s *AssemblySuite) TestCloneIndependence() {
	j, _ := s.asm.Join(s.anchor, 0, s.crank, 0)
	m, _ := s.asm.Drive(j, s.anchor, s.crank)
	s.asm.MarkUnspecified(s.crank)

	c := s.asm.Clone()
	require.Equal(s.T(), s.asm.Revision(), c.Revision())
	require.NotSame(s.T(), s.crank, c.Link("Link1"))
	require.Same(s.T(), c.Anchor(), c.Links()[0])

	cm := c.Motor(m.Name())
	require.NotNil(s.T(), cm)
	require.Same(s.T(), c.Constraints()[1], mechanism.Constraint(cm.Drive()))
	require.Same(s.T(), c.Constraints()[0], mechanism.Constraint(cm.Joint()))
	require.Same(s.T(), c.Link("Link1"), cm.TargetLink())
	require.Same(s.T(), c.Link("Link1"), c.Unspecified()[0])

	cm.SetAngle(1)
	c.Link("Link1").SetAngle(1)
	require.NotEqual(s.T(), 1.0, m.Angle())
	require.Equal(s.T(), 0.0, s.crank.Angle())

	// Naming continues from the source counters.
	require.Equal(s.T(), "Link2", c.NewLink("", geom.Origin, 0).Name())
}

// TestValidate reports blocking errors and warnings.
func (s *AssemblySuite) TestValidate() {
	j, _ := s.asm.Join(s.anchor, 0, s.crank, 0)
	_, _ = s.asm.Drive(j, s.anchor, s.crank)
	require.True(s.T(), s.asm.Validate().OK())

	// Removing a link leaves dangling references behind.
	require.True(s.T(), s.asm.RemoveLink(s.crank))
	res := s.asm.Validate()
	require.False(s.T(), res.OK())
	require.ErrorIs(s.T(), res.Err(), mechanism.ErrForeignLink)

	empty := mechanism.NewAssembly()
	require.True(s.T(), errors.Is(empty.Validate().Err(), mechanism.ErrNoAnchor))
}

// TestValidateWarnings flags self constraints and detached motor joints.
func (s *AssemblySuite) TestValidateWarnings() {
	s.crank.AddLocalMarker(geom.Pt(2, 0))
	_, err := s.asm.Join(s.crank, 1, s.crank, 2)
	require.NoError(s.T(), err)
	res := s.asm.Validate()
	require.True(s.T(), res.OK())
	require.Len(s.T(), res.Warnings, 1)
	require.Equal(s.T(), mechanism.SeverityWarning, res.Warnings[0].Severity)
}

// TestUnspecifiedBucket deduplicates and clears.
func (s *AssemblySuite) TestUnspecifiedBucket() {
	s.asm.MarkUnspecified(s.crank, s.crank, nil)
	require.Len(s.T(), s.asm.Unspecified(), 1)
	require.True(s.T(), s.asm.IsUnspecified(s.crank))
	s.asm.ClearUnspecified()
	require.Empty(s.T(), s.asm.Unspecified())
}

func TestAssemblySuite(t *testing.T) {
	suite.Run(t, new(AssemblySuite))
}

func TestUUIDNames(t *testing.T) {
	a := mechanism.NewAssembly(mechanism.WithNamePolicy(mechanism.UUIDNames))
	l1 := a.NewLink("", geom.Origin, 0)
	l2 := a.NewLink("", geom.Origin, 0)
	require.Regexp(t, `^Link-[0-9a-f-]{36}$`, l1.Name())
	require.NotEqual(t, l1.Name(), l2.Name())
	require.Equal(t, "explicit", a.NewLink("explicit", geom.Origin, 0).Name())
}

func TestWithNamePolicyNilPanics(t *testing.T) {
	require.Panics(t, func() { mechanism.WithNamePolicy(nil) })
}
