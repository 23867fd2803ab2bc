// SPDX-License-Identifier: MIT
// Package: linkage/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   • Only package-level sentinels are exposed; branch with errors.Is.
//   • Context (method, element name, field) is attached with %w wrapping.
//   • Errors raised by mechanism (ErrMarkerRange, ErrForeignLink, …) pass
//     through wrapped, so both layers can be matched.

package builder

import (
	"errors"
	"fmt"
)

// ErrBadDocument indicates the YAML could not be decoded into a Document:
// syntax errors, unknown keys, or wrongly shaped values.
var ErrBadDocument = errors.New("builder: malformed document")

// ErrBadUnits indicates an angle unit other than "deg" or "rad".
var ErrBadUnits = errors.New("builder: unknown angle units")

// ErrUnknownLink indicates a reference to a link name that was not declared.
var ErrUnknownLink = errors.New("builder: unknown link")

// ErrUnknownJoint indicates a motor referencing a joint name that was not declared.
var ErrUnknownJoint = errors.New("builder: unknown joint")

// ErrDuplicateName indicates two links, or two constraints, share a name.
var ErrDuplicateName = errors.New("builder: duplicate name")

// ErrBadDimensions indicates bar lengths that cannot be assembled, or a nil
// constructor passed to BuildAssembly.
var ErrBadDimensions = errors.New("builder: mechanism cannot be assembled")

// ErrStrict indicates validation warnings were found while WithStrict was set.
var ErrStrict = errors.New("builder: validation warnings in strict mode")

// builderErrorf wraps err with "<method>(<subject>): " context.
func builderErrorf(method, subject string, err error) error {
	if subject == "" {
		return fmt.Errorf("%s: %w", method, err)
	}

	return fmt.Errorf("%s(%s): %w", method, subject, err)
}
