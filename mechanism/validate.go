package mechanism

import (
	"errors"
	"fmt"
)

// Severity tells whether a validation finding blocks solving.
type Severity int

const (
	SeverityError   Severity = iota // blocks solving
	SeverityWarning                 // informational
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Issue is one validation finding about an element or constraint.
type Issue struct {
	Subject  string   // name of the offending item, empty for assembly-level findings
	Severity Severity // error or warning
	Err      error    // wrapped sentinel, nil for warnings without one
	Message  string   // human-readable description
}

func (i Issue) Error() string {
	if i.Subject == "" {
		return fmt.Sprintf("[%s] %s", i.Severity, i.Message)
	}

	return fmt.Sprintf("[%s] %s: %s", i.Severity, i.Subject, i.Message)
}

// Unwrap exposes the sentinel for errors.Is.
func (i Issue) Unwrap() error { return i.Err }

// ValidationResult bundles blocking errors and advisory warnings.
type ValidationResult struct {
	Errors   []Issue
	Warnings []Issue
}

// OK reports whether no blocking error was found.
func (r ValidationResult) OK() bool { return len(r.Errors) == 0 }

// Err joins all blocking findings into one error, or returns nil.
func (r ValidationResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}

	return errors.Join(errs...)
}

func (r *ValidationResult) fail(subject string, err error, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{Subject: subject, Severity: SeverityError, Err: err, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(subject string, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{Subject: subject, Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)})
}

// Validate checks the assembly is well formed enough to solve:
//
//  1. exactly one anchor is present;
//  2. every constraint references member links and existing markers;
//  3. every motor drive is attached.
//
// It also warns about duplicate names, constraints between a link and itself,
// and motors whose joint is not part of the assembly.
func (a *Assembly) Validate() ValidationResult {
	var r ValidationResult

	// 1) Anchor.
	if a.anchor == nil {
		r.fail("", ErrNoAnchor, "no anchor link")
	}

	// 2) Names and constraints.
	seen := make(map[string]bool, len(a.links))
	for _, l := range a.links {
		if seen[l.name] {
			r.warn(l.name, "duplicate link name")
		}
		seen[l.name] = true
	}
	for _, c := range a.constraints {
		if err := a.checkConstraint(c); err != nil {
			name := ""
			if !isNilConstraint(c) {
				name = c.Name()
			}
			r.fail(name, err, "%v", err)
			continue
		}
		if selfConstraint(c) {
			r.warn(c.Name(), "constrains a link to itself")
		}
	}

	// 3) Motors.
	for _, m := range a.motors {
		attached := false
		for _, c := range a.constraints {
			if c == Constraint(m.drive) {
				attached = true
				break
			}
		}
		if !attached {
			r.fail(m.name, ErrDetachedMotor, "drive %s not in assembly", m.drive.name)
		}
		if m.joint != nil {
			joined := false
			for _, c := range a.constraints {
				if c == Constraint(m.joint) {
					joined = true
					break
				}
			}
			if !joined {
				r.warn(m.name, "joint %s not in assembly", m.joint.name)
			}
		}
	}

	return r
}

func selfConstraint(c Constraint) bool {
	ls := c.Links()
	for _, l := range ls[1:] {
		if l != ls[0] {
			return false
		}
	}

	return true
}
