package builder

import "github.com/katalvlaran/linkage/geom"

// Vec is a point written as a two-element YAML sequence: [x, y].
type Vec [2]float64

// Point converts v to a geom.Point.
func (v Vec) Point() geom.Point { return geom.Pt(v[0], v[1]) }

// VecOf converts p to a Vec.
func VecOf(p geom.Point) Vec { return Vec{p.X, p.Y} }

// Document is the YAML form of an assembly.
type Document struct {
	Units   string      `yaml:"units,omitempty"`
	Anchor  AnchorDoc   `yaml:"anchor"`
	Links   []LinkDoc   `yaml:"links,omitempty"`
	Joints  []JointDoc  `yaml:"joints,omitempty"`
	Angles  []AngleDoc  `yaml:"angles,omitempty"`
	Sliders []SliderDoc `yaml:"sliders,omitempty"`
	Motors  []MotorDoc  `yaml:"motors,omitempty"`
}

// AnchorDoc describes the ground link. Its markers are given in the anchor
// frame, which is the global frame.
type AnchorDoc struct {
	Name    string `yaml:"name,omitempty"`
	Markers []Vec  `yaml:"markers,omitempty,flow"`
}

// LinkDoc describes a plain link. Marker 0 is always the link origin; Markers
// are appended from index 1, in local coordinates unless Global is set.
type LinkDoc struct {
	Name    string  `yaml:"name,omitempty"`
	Origin  Vec     `yaml:"origin,flow"`
	Angle   float64 `yaml:"angle,omitempty"`
	Markers []Vec   `yaml:"markers,omitempty,flow"`
	Global  bool    `yaml:"global,omitempty"`
}

// EndDoc references marker Marker of link Link.
type EndDoc struct {
	Link   string `yaml:"link"`
	Marker int    `yaml:"marker"`
}

// JointDoc describes a revolute joint with two or more ends.
type JointDoc struct {
	Name string   `yaml:"name,omitempty"`
	Ends []EndDoc `yaml:"ends,flow"`
}

// AngleDoc describes an angular constraint. A nil Angle freezes the current
// relative angle of the two links.
type AngleDoc struct {
	Name   string   `yaml:"name,omitempty"`
	Base   string   `yaml:"base"`
	Target string   `yaml:"target"`
	Angle  *float64 `yaml:"angle,omitempty"`
}

// SliderDoc describes a slider: Rail holds the two base markers bounding the
// rail, Slide the target marker riding on it.
type SliderDoc struct {
	Name   string   `yaml:"name,omitempty"`
	Base   string   `yaml:"base"`
	Rail   [2]int   `yaml:"rail,flow"`
	Target string   `yaml:"target"`
	Slide  int      `yaml:"slide"`
	Angle  *float64 `yaml:"angle,omitempty"`
}

// MotorDoc describes a motor and its drive profile. Joint is optional.
type MotorDoc struct {
	Name       string   `yaml:"name,omitempty"`
	Joint      string   `yaml:"joint,omitempty"`
	Base       string   `yaml:"base"`
	Target     string   `yaml:"target"`
	Angle      *float64 `yaml:"angle,omitempty"`
	Init       *float64 `yaml:"init,omitempty"`
	Speed      *float64 `yaml:"speed,omitempty"`
	Shift      float64  `yaml:"shift,omitempty"`
	Servo      bool     `yaml:"servo,omitempty"`
	ServoStart float64  `yaml:"servo_start,omitempty"`
	ServoEnd   *float64 `yaml:"servo_end,omitempty"`
}
