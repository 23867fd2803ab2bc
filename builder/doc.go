// Package builder reads mechanism descriptions written in YAML and turns them
// into *mechanism.Assembly values, and writes assemblies back out.
//
// A document lists the anchor markers, the links with their poses and markers,
// then the constraints that tie them together:
//
//	units: deg            # deg (default) or rad, for every angle below
//	anchor:
//	  markers: [[0, 0], [4, 0]]
//	links:
//	  - name: crank
//	    origin: [0, 0]
//	    markers: [[1, 0]]   # appended after marker 0, the link origin
//	  - name: rocker
//	    origin: [4, 0]
//	    angle: 90
//	    markers: [[3, 0]]
//	joints:
//	  - name: O2
//	    ends: [{link: Anchor, marker: 0}, {link: crank, marker: 0}]
//	angles:
//	  - {base: crank, target: rocker}        # freeze the current relative angle
//	sliders:                                 # rail between anchor markers 0 and 1
//	  - {base: Anchor, rail: [0, 1], target: rocker, slide: 1}
//	motors:
//	  - {name: M, joint: O2, base: Anchor, target: crank, speed: 1}
//
// Links are referenced by name. Unnamed links get a name from the configured
// ID scheme (WithIDScheme and friends) or, by default, from the assembly's
// naming policy ("Link1", "Link2", …); either way the generated name can be
// referenced further down the document.
//
// Key components:
//
//   - Parse / Load:    decode and build, validating every reference.
//   - Build:           build an already decoded Document.
//   - Encode / Export: the reverse direction, assembly → Document → YAML.
//   - BuildAssembly:   compose canonical mechanisms (FourBar, SliderCrank)
//     on one anchor without writing a document.
//   - BuilderOption:   ID schemes, naming policy, default units, strictness.
//   - IDFn schemes:    LetterIDFn ("A", "B", …), KinematicIDFn ("L2", "L3",
//     …, the frame being link 1), NumberedIDFn (prefix plus counter).
//
// Guarantees:
//
//   - Option constructors panic on meaningless values; Parse/Build never panic.
//   - Errors carry the method and element context and wrap a sentinel from this
//     package or from mechanism, so callers branch with errors.Is.
//   - The built assembly passes mechanism.Validate; with WithStrict, warnings
//     are rejected too.
package builder
