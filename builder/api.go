// SPDX-License-Identifier: MIT
// Package: linkage/builder
//
// api.go - programmatic entry point for canonical mechanisms.
//
// Contract:
//   • One orchestrator: BuildAssembly(bopts, cons...). Creates the assembly and
//     its anchor, resolves cfg, runs cons in order, validates the result.
//   • Constructors add links, joints and motors to the shared anchor; they
//     return sentinel errors and never panic.
//   • Same inputs and constructor order ⇒ identical assemblies.

package builder

import (
	"fmt"

	"github.com/katalvlaran/linkage/mechanism"
)

// Constructor adds one mechanism to an assembly that already has an anchor.
type Constructor func(a *mechanism.Assembly, cfg builderConfig) error

// BuildAssembly creates an assembly with an anchor, resolves the builder
// configuration from bopts and applies all constructors in order. Constructor
// errors are wrapped with "BuildAssembly: %w" and returned immediately.
func BuildAssembly(bopts []BuilderOption, cons ...Constructor) (*mechanism.Assembly, error) {
	cfg := newBuilderConfig(bopts...)
	a := mechanism.NewAssembly(cfg.assemblyOptions()...)
	if _, err := a.NewAnchor(); err != nil {
		return nil, fmt.Errorf("BuildAssembly: %w", err)
	}

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildAssembly: nil constructor at index %d: %w", i, ErrBadDimensions)
		}
		if err := fn(a, cfg); err != nil {
			return nil, fmt.Errorf("BuildAssembly: %w", err)
		}
	}

	res := a.Validate()
	if !res.OK() {
		return nil, fmt.Errorf("BuildAssembly: %w", res.Err())
	}
	if cfg.strict && len(res.Warnings) > 0 {
		return nil, fmt.Errorf("BuildAssembly: %v: %w", res.Warnings[0], ErrStrict)
	}

	return a, nil
}

// linkName names the next plain link of a: cfg.idFn over the running link
// index when an ID scheme is set, fallback otherwise.
func linkName(a *mechanism.Assembly, cfg builderConfig, fallback string) string {
	if cfg.idFn == nil {
		return fallback
	}

	return cfg.idFn(len(a.Links()) - 1)
}
