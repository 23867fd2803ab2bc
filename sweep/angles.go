package sweep

import "github.com/katalvlaran/linkage/mechanism"

// Angles returns n evenly spaced angles from from to to, both included.
// It returns nil for n < 1 and {from} for n == 1.
func Angles(from, to float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = from
		return out
	}
	step := (to - from) / float64(n-1)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	out[n-1] = to

	return out
}

// Timeline samples the motor's drive profile at t0, t0+dt, … (n samples).
func Timeline(m *mechanism.Motor, t0, dt float64, n int) []float64 {
	if m == nil || n < 1 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = m.AngleAt(t0 + float64(i)*dt)
	}

	return out
}
