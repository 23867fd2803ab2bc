// SPDX-License-Identifier: MIT
// Package: linkage/builder
//
// build.go - public entry points: Parse, Load, Build.
//
// Build order is fixed: anchor, links, joints, angles, sliders, motors, then
// validation. Every stage resolves names through one table, so a reference can
// only point at something declared earlier in that order.

package builder

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/linkage/mechanism"
)

// tracer writes to trace with key 'linkage.builder'
func tracer() tracing.Trace {
	return tracing.Select("linkage.builder")
}

// Parse decodes a YAML document from r and builds it.
func Parse(r io.Reader, opts ...BuilderOption) (*mechanism.Assembly, error) {
	doc, err := Decode(r)
	if err != nil {
		return nil, err
	}

	return Build(doc, opts...)
}

// Load reads and builds the YAML document at path.
func Load(path string, opts ...BuilderOption) (*mechanism.Assembly, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, builderErrorf(MethodLoad, path, err)
	}
	a, err := Parse(bytes.NewReader(data), opts...)
	if err != nil {
		return nil, builderErrorf(MethodLoad, path, err)
	}

	return a, nil
}

// Decode reads a Document from r. Unknown keys are rejected.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Document{}, builderErrorf(MethodParse, "", fmt.Errorf("%w: %v", ErrBadDocument, err))
	}

	return doc, nil
}

// Build turns doc into an assembly. The result has passed Validate.
func Build(doc Document, opts ...BuilderOption) (*mechanism.Assembly, error) {
	cfg := newBuilderConfig(opts...)
	b := &build{
		cfg:    cfg,
		asm:    mechanism.NewAssembly(cfg.assemblyOptions()...),
		links:  make(map[string]*mechanism.Link),
		joints: make(map[string]*mechanism.Coaxial),
		names:  make(map[string]bool),
	}

	// 1) Units.
	units := doc.Units
	if units == "" {
		units = cfg.units
	}
	scale, err := unitScale(units)
	if err != nil {
		return nil, err
	}
	b.scale = scale

	// 2) Stages in dependency order.
	stages := []func(Document) error{b.anchor, b.plainLinks, b.coaxials, b.angulars, b.sliders, b.motors}
	for _, stage := range stages {
		if err := stage(doc); err != nil {
			return nil, err
		}
	}

	// 3) Validation.
	res := b.asm.Validate()
	if !res.OK() {
		return nil, builderErrorf(MethodValidate, "", res.Err())
	}
	for _, w := range res.Warnings {
		tracer().Infof("builder: %v", w)
	}
	if cfg.strict && len(res.Warnings) > 0 {
		return nil, builderErrorf(MethodValidate, res.Warnings[0].Subject, fmt.Errorf("%w: %v", ErrStrict, res.Warnings[0]))
	}
	tracer().Debugf("builder: %d links, %d constraints, %d motors",
		len(b.asm.Links()), len(b.asm.Constraints()), len(b.asm.Motors()))

	return b.asm, nil
}

// build holds the state of one Build call.
type build struct {
	cfg    builderConfig
	asm    *mechanism.Assembly
	scale  float64 // document angle unit → radians
	links  map[string]*mechanism.Link
	joints map[string]*mechanism.Coaxial
	names  map[string]bool // constraint names in use
}

func (b *build) anchor(doc Document) error {
	l := mechanism.NewAnchor()
	if doc.Anchor.Name != "" {
		l.SetName(doc.Anchor.Name)
	}
	if err := validateVecs(MethodLinks, l.Name(), "markers", doc.Anchor.Markers...); err != nil {
		return err
	}
	for _, m := range doc.Anchor.Markers {
		l.AddLocalMarker(m.Point())
	}
	if err := b.asm.AddAnchor(l); err != nil {
		return builderErrorf(MethodLinks, l.Name(), err)
	}
	b.links[l.Name()] = l

	return nil
}

func (b *build) plainLinks(doc Document) error {
	for i, ld := range doc.Links {
		name := ld.Name
		if name == "" && b.cfg.idFn != nil {
			name = b.cfg.idFn(i)
		}
		if err := validateVecs(MethodLinks, name, "origin", ld.Origin); err != nil {
			return err
		}
		if err := validateVecs(MethodLinks, name, "markers", ld.Markers...); err != nil {
			return err
		}
		if err := validateFinite(MethodLinks, name, "angle", ld.Angle); err != nil {
			return err
		}
		l := mechanism.NewLink(name, ld.Origin.Point(), ld.Angle*b.scale)
		for _, m := range ld.Markers {
			if ld.Global {
				l.AddGlobalMarker(m.Point())
			} else {
				l.AddLocalMarker(m.Point())
			}
		}
		if err := b.asm.AddLink(l); err != nil {
			return builderErrorf(MethodLinks, name, err)
		}
		if b.links[l.Name()] != nil {
			return builderErrorf(MethodLinks, l.Name(), ErrDuplicateName)
		}
		b.links[l.Name()] = l
	}

	return nil
}

func (b *build) coaxials(doc Document) error {
	for _, jd := range doc.Joints {
		ends := make([]mechanism.Endpoint, 0, len(jd.Ends))
		for _, e := range jd.Ends {
			if err := validateMarker(MethodJoints, jd.Name, e.Marker); err != nil {
				return err
			}
			l, err := b.link(MethodJoints, jd.Name, e.Link)
			if err != nil {
				return err
			}
			ends = append(ends, mechanism.Endpoint{Link: l, Marker: e.Marker})
		}
		c := mechanism.NewCoaxial(jd.Name, ends...)
		if err := b.add(MethodJoints, jd.Name, c); err != nil {
			return err
		}
		b.joints[c.Name()] = c
	}

	return nil
}

func (b *build) angulars(doc Document) error {
	for _, ad := range doc.Angles {
		base, err := b.link(MethodAngles, ad.Name, ad.Base)
		if err != nil {
			return err
		}
		target, err := b.link(MethodAngles, ad.Name, ad.Target)
		if err != nil {
			return err
		}
		if err := validateOptional(MethodAngles, ad.Name, "angle", ad.Angle); err != nil {
			return err
		}
		c := mechanism.NewAngular(ad.Name, base, target)
		if ad.Angle != nil {
			c.SetAngle(*ad.Angle * b.scale)
		}
		if err := b.add(MethodAngles, ad.Name, c); err != nil {
			return err
		}
	}

	return nil
}

func (b *build) sliders(doc Document) error {
	for _, sd := range doc.Sliders {
		base, err := b.link(MethodSliders, sd.Name, sd.Base)
		if err != nil {
			return err
		}
		target, err := b.link(MethodSliders, sd.Name, sd.Target)
		if err != nil {
			return err
		}
		for _, idx := range []int{sd.Rail[0], sd.Rail[1], sd.Slide} {
			if err := validateMarker(MethodSliders, sd.Name, idx); err != nil {
				return err
			}
		}
		if err := validateOptional(MethodSliders, sd.Name, "angle", sd.Angle); err != nil {
			return err
		}
		c := mechanism.NewSlider(sd.Name, base, sd.Rail[0], sd.Rail[1], target, sd.Slide)
		if sd.Angle != nil {
			c.SetAngle(*sd.Angle * b.scale)
		}
		if err := b.add(MethodSliders, sd.Name, c); err != nil {
			return err
		}
	}

	return nil
}

func (b *build) motors(doc Document) error {
	for _, md := range doc.Motors {
		base, err := b.link(MethodMotors, md.Name, md.Base)
		if err != nil {
			return err
		}
		target, err := b.link(MethodMotors, md.Name, md.Target)
		if err != nil {
			return err
		}
		var joint *mechanism.Coaxial
		if md.Joint != "" {
			if joint = b.joints[md.Joint]; joint == nil {
				return builderErrorf(MethodMotors, md.Name, fmt.Errorf("%q: %w", md.Joint, ErrUnknownJoint))
			}
		}
		if err := validateMotorDoc(md); err != nil {
			return err
		}
		if md.Name != "" && b.names[md.Name] {
			return builderErrorf(MethodMotors, md.Name, ErrDuplicateName)
		}

		m := mechanism.NewMotor(md.Name, joint, base, target)
		m.SetProfile(b.profile(md))
		if md.Init != nil {
			m.SetInitAngle(*md.Init * b.scale)
		}
		if md.Angle != nil {
			m.SetAngle(*md.Angle * b.scale)
		}
		if err := b.asm.AddMotor(m); err != nil {
			return builderErrorf(MethodMotors, md.Name, err)
		}
		if b.names[m.Name()] {
			return builderErrorf(MethodMotors, m.Name(), ErrDuplicateName)
		}
		b.names[m.Name()] = true
	}

	return nil
}

func (b *build) profile(md MotorDoc) mechanism.Profile {
	p := mechanism.DefaultProfile()
	if md.Speed != nil {
		p.Speed = *md.Speed * b.scale
	}
	p.Shift = md.Shift * b.scale
	p.Servo = md.Servo
	p.ServoStart = md.ServoStart * b.scale
	if md.ServoEnd != nil {
		p.ServoEnd = *md.ServoEnd * b.scale
	}

	return p
}

// link resolves a link reference.
func (b *build) link(method, subject, name string) (*mechanism.Link, error) {
	l := b.links[name]
	if l == nil {
		return nil, builderErrorf(method, subject, fmt.Errorf("%q: %w", name, ErrUnknownLink))
	}

	return l, nil
}

// add registers c with the assembly. Explicit names are checked first; a
// policy name given to an unnamed constraint is checked once assigned.
func (b *build) add(method, subject string, c mechanism.Constraint) error {
	if subject != "" && b.names[subject] {
		return builderErrorf(method, subject, ErrDuplicateName)
	}
	if err := b.asm.AddConstraint(c); err != nil {
		return builderErrorf(method, subject, err)
	}
	if b.names[c.Name()] {
		return builderErrorf(method, c.Name(), ErrDuplicateName)
	}
	b.names[c.Name()] = true

	return nil
}

// unitScale returns the factor converting document angles to radians.
func unitScale(units string) (float64, error) {
	switch units {
	case UnitsDegrees:
		return math.Pi / 180, nil
	case UnitsRadians:
		return 1, nil
	default:
		return 0, builderErrorf(MethodParse, units, ErrBadUnits)
	}
}
