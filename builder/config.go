// SPDX-License-Identifier: MIT
// Package: linkage/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Defaults:
//   • idFn       = nil            (assembly naming policy names links)
//   • namePolicy = nil            (mechanism.SequentialNames)
//   • units      = UnitsDegrees
//   • strict     = false

package builder

import (
	"github.com/katalvlaran/linkage/mechanism"
)

// builderConfig aggregates all knobs used while building. It is passed by value.
type builderConfig struct {
	idFn       IDFn
	namePolicy mechanism.NamePolicy
	units      string
	strict     bool
}

// newBuilderConfig applies opts in order over the defaults.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{units: UnitsDegrees}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// assemblyOptions translates the config into mechanism options.
func (c builderConfig) assemblyOptions() []mechanism.Option {
	if c.namePolicy == nil {
		return nil
	}

	return []mechanism.Option{mechanism.WithNamePolicy(c.namePolicy)}
}
