// Package builder provides validation helpers enforcing document contracts
// that the mechanism package cannot see once values are converted.
//
// Each function returns an error wrapping ErrBadDocument via builderErrorf
// when its precondition is violated.
package builder

import (
	"fmt"
	"math"
)

// validateFinite ensures every value is a finite number.
//
// Parameters:
//   - method:  build stage, e.g. MethodLinks.
//   - subject: element name for context.
//   - field:   document key being checked.
//   - vals:    values to check.
//
// Complexity: O(len(vals)).
func validateFinite(method, subject, field string, vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return builderErrorf(method, subject, fmt.Errorf("%w: %s must be finite, got %v", ErrBadDocument, field, v))
		}
	}

	return nil
}

// validateVecs ensures every point is finite.
func validateVecs(method, subject, field string, vs ...Vec) error {
	for _, v := range vs {
		if err := validateFinite(method, subject, field, v[0], v[1]); err != nil {
			return err
		}
	}

	return nil
}

// validateMarker ensures a marker index is non-negative. Upper bounds are
// checked by the assembly when the constraint is added.
func validateMarker(method, subject string, idx int) error {
	if idx < 0 {
		return builderErrorf(method, subject, fmt.Errorf("%w: marker must be ≥ 0, got %d", ErrBadDocument, idx))
	}

	return nil
}

// validateOptional checks a nullable angle.
func validateOptional(method, subject, field string, v *float64) error {
	if v == nil {
		return nil
	}

	return validateFinite(method, subject, field, *v)
}

// validateMotorDoc checks every numeric field of a motor.
func validateMotorDoc(md MotorDoc) error {
	optional := []struct {
		field string
		v     *float64
	}{
		{"angle", md.Angle},
		{"init", md.Init},
		{"speed", md.Speed},
		{"servo_end", md.ServoEnd},
	}
	for _, o := range optional {
		if err := validateOptional(MethodMotors, md.Name, o.field, o.v); err != nil {
			return err
		}
	}
	if err := validateFinite(MethodMotors, md.Name, "shift", md.Shift); err != nil {
		return err
	}

	return validateFinite(MethodMotors, md.Name, "servo_start", md.ServoStart)
}
