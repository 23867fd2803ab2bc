// SPDX-License-Identifier: MIT
// Package: linkage/builder
//
// options.go - functional options for Parse, Load and Build.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors validate and panic on meaningless inputs; Parse and
//     Build themselves never panic.
//   • Later options override earlier ones.

package builder

import (
	"github.com/katalvlaran/linkage/mechanism"
)

// BuilderOption customizes how a document is turned into an assembly.
type BuilderOption func(*builderConfig)

// WithIDScheme names links the document leaves unnamed by their index in the
// link list. Panics on nil.
func WithIDScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *builderConfig) {
		c.idFn = fn
	}
}

// WithNamePolicy sets the naming policy of the built assembly, used for
// unnamed constraints and motors (and for links when no ID scheme is set).
// Panics on nil.
func WithNamePolicy(p mechanism.NamePolicy) BuilderOption {
	if p == nil {
		panic("builder: WithNamePolicy(nil)")
	}
	return func(c *builderConfig) {
		c.namePolicy = p
	}
}

// WithUnits sets the angle units assumed when a document has no units key.
// Panics on anything but UnitsDegrees or UnitsRadians.
func WithUnits(units string) BuilderOption {
	if units != UnitsDegrees && units != UnitsRadians {
		panic("builder: WithUnits(" + units + ")")
	}
	return func(c *builderConfig) {
		c.units = units
	}
}

// WithStrict rejects assemblies that validate with warnings (duplicate names,
// self constraints, motors on foreign joints).
func WithStrict() BuilderOption {
	return func(c *builderConfig) {
		c.strict = true
	}
}
