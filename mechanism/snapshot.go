package mechanism

// Snapshot is a detached copy of every link pose and motor angle of an
// assembly. Taking one costs O(links + motors); the assembly is not affected
// by later changes to the snapshot or vice versa.
type Snapshot struct {
	poses  map[*Link]Pose
	motors map[*Motor]float64
}

// Snapshot records the current poses and motor angles.
func (a *Assembly) Snapshot() Snapshot {
	s := Snapshot{
		poses:  make(map[*Link]Pose, len(a.links)),
		motors: make(map[*Motor]float64, len(a.motors)),
	}
	for _, l := range a.links {
		s.poses[l] = l.Pose()
	}
	for _, m := range a.motors {
		s.motors[m] = m.angle
	}

	return s
}

// Restore puts back the poses and motor angles recorded in s. Links and motors
// added after the snapshot keep their current state.
func (a *Assembly) Restore(s Snapshot) {
	for _, l := range a.links {
		if p, ok := s.poses[l]; ok {
			l.SetPose(p)
		}
	}
	for _, m := range a.motors {
		if angle, ok := s.motors[m]; ok {
			m.SetAngle(angle)
		}
	}
}

// Pose returns the recorded pose of l.
func (s Snapshot) Pose(l *Link) (Pose, bool) {
	p, ok := s.poses[l]

	return p, ok
}
