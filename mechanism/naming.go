// SPDX-License-Identifier: MIT
// Package: linkage/mechanism
//
// naming.go - default names for unnamed elements and constraints.
//
// Contract:
//   • Names are produced per assembly; there is no package-level counter.
//   • An explicit, non-empty name always wins over the policy.
//   • SequentialNames is deterministic: the n-th unnamed link is "Link<n>".

package mechanism

import (
	"strconv"

	"github.com/google/uuid"
)

// Role is the naming category of an element or constraint.
type Role string

// Naming roles, also used as the default name prefixes.
const (
	RoleLink    Role = "Link"
	RoleCoaxial Role = "CC"
	RoleAngular Role = "AC"
	RoleSlider  Role = "SC"
	RoleMotor   Role = "Motor"
)

// NamePolicy returns the name of the seq-th (1-based) unnamed item of a role.
type NamePolicy func(role Role, seq int) string

// SequentialNames yields "Link1", "CC3", "Motor2", ...
func SequentialNames(role Role, seq int) string {
	return string(role) + strconv.Itoa(seq)
}

// UUIDNames yields "<role>-<random uuid>"; seq is ignored.
func UUIDNames(role Role, _ int) string {
	return string(role) + "-" + uuid.NewString()
}

// Option configures an Assembly at construction.
type Option func(*Assembly)

// WithNamePolicy sets the policy used for unnamed items.
// Panics on nil to surface the programmer error early.
func WithNamePolicy(p NamePolicy) Option {
	if p == nil {
		panic("mechanism: WithNamePolicy(nil)")
	}
	return func(a *Assembly) {
		a.names = p
	}
}

// nextName draws the next policy name for role.
func (a *Assembly) nextName(role Role) string {
	a.seq[role]++

	return a.names(role, a.seq[role])
}
