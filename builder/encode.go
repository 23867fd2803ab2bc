// SPDX-License-Identifier: MIT
// Package: linkage/builder
//
// encode.go - Export and Encode: the inverse of Build.
//
// Export walks an assembly in insertion order, so Build(Export(a)) yields an
// assembly with the same names, markers and poses. Constraints keep their order
// within each kind. Motor drive constraints are not listed under angles; they
// are rebuilt from motors.

package builder

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/linkage/geom"
	"github.com/katalvlaran/linkage/mechanism"
)

// Export converts a into a Document with angles in the given units.
func Export(a *mechanism.Assembly, units string) (Document, error) {
	scale, err := unitScale(units)
	if err != nil {
		return Document{}, builderErrorf(MethodEncode, "", err)
	}
	out := func(rad float64) float64 { return rad / scale }
	ptr := func(rad float64) *float64 {
		v := out(rad)
		return &v
	}

	doc := Document{Units: units}

	// 1) Links.
	for _, l := range a.Links() {
		if l.IsAnchor() {
			doc.Anchor = AnchorDoc{Name: l.Name(), Markers: vecs(l.Markers())}
			continue
		}
		doc.Links = append(doc.Links, LinkDoc{
			Name:    l.Name(),
			Origin:  VecOf(l.Origin()),
			Angle:   out(l.Angle()),
			Markers: vecs(l.Markers()[1:]),
		})
	}

	// 2) Constraints, skipping motor drives.
	drives := make(map[*mechanism.Angular]bool, len(a.Motors()))
	for _, m := range a.Motors() {
		drives[m.Drive()] = true
	}
	for _, c := range a.Constraints() {
		switch c := c.(type) {
		case *mechanism.Coaxial:
			jd := JointDoc{Name: c.Name()}
			for _, e := range c.Endpoints() {
				jd.Ends = append(jd.Ends, EndDoc{Link: e.Link.Name(), Marker: e.Marker})
			}
			doc.Joints = append(doc.Joints, jd)
		case *mechanism.Angular:
			if drives[c] {
				continue
			}
			doc.Angles = append(doc.Angles, AngleDoc{
				Name:   c.Name(),
				Base:   c.Base().Name(),
				Target: c.Target().Name(),
				Angle:  ptr(c.Angle()),
			})
		case *mechanism.Slider:
			r0, r1 := c.RailMarkers()
			doc.Sliders = append(doc.Sliders, SliderDoc{
				Name:   c.Name(),
				Base:   c.Base().Name(),
				Rail:   [2]int{r0, r1},
				Target: c.Target().Name(),
				Slide:  c.SlideMarker(),
				Angle:  ptr(c.Angle()),
			})
		}
	}

	// 3) Motors.
	for _, m := range a.Motors() {
		p := m.Profile()
		md := MotorDoc{
			Name:       m.Name(),
			Base:       m.BaseLink().Name(),
			Target:     m.TargetLink().Name(),
			Angle:      ptr(m.Angle()),
			Init:       ptr(m.InitAngle()),
			Speed:      ptr(p.Speed),
			Shift:      out(p.Shift),
			Servo:      p.Servo,
			ServoStart: out(p.ServoStart),
			ServoEnd:   ptr(p.ServoEnd),
		}
		if j := m.Joint(); j != nil {
			md.Joint = j.Name()
		}
		doc.Motors = append(doc.Motors, md)
	}

	return doc, nil
}

// Encode writes a as YAML to w. Angles use the units set by WithUnits
// (degrees by default).
func Encode(w io.Writer, a *mechanism.Assembly, opts ...BuilderOption) error {
	cfg := newBuilderConfig(opts...)
	doc, err := Export(a, cfg.units)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return builderErrorf(MethodEncode, "", err)
	}
	if err := enc.Close(); err != nil {
		return builderErrorf(MethodEncode, "", err)
	}

	return nil
}

func vecs(ps []geom.Point) []Vec {
	if len(ps) == 0 {
		return nil
	}
	out := make([]Vec, len(ps))
	for i, p := range ps {
		out[i] = VecOf(p)
	}

	return out
}
