// File: clone.go
// Role: Deep copies of an assembly for independent (e.g. concurrent) evaluation.
// Determinism:
//   - Order of links, constraints and motors is preserved, so index-based lookups
//     on the clone address the same items as on the source.
//   - Naming counters and the revision are carried over.

package mechanism

// Clone returns a deep copy of the assembly: links (with markers and poses),
// constraints re-pointed at the copied links, motors with their drives, and the
// unspecified bucket.
//
// Complexity: O(L + Σ|endpoints| + M).
func (a *Assembly) Clone() *Assembly {
	c := &Assembly{
		names:    a.names,
		seq:      make(map[Role]int, len(a.seq)),
		revision: a.revision,
	}
	for r, n := range a.seq {
		c.seq[r] = n
	}

	// Links first; everything else is remapped through lm.
	lm := make(map[*Link]*Link, len(a.links))
	for _, l := range a.links {
		nl := l.clone()
		lm[l] = nl
		c.links = append(c.links, nl)
	}
	if a.anchor != nil {
		c.anchor = lm[a.anchor]
	}
	remap := func(l *Link) *Link {
		if nl, ok := lm[l]; ok {
			return nl
		}
		// Foreign references stay foreign; Validate keeps reporting them.
		return l
	}

	cm := make(map[Constraint]Constraint, len(a.constraints))
	for _, x := range a.constraints {
		var nx Constraint
		switch x := x.(type) {
		case *Coaxial:
			nc := &Coaxial{name: x.name, endpoints: make([]Endpoint, len(x.endpoints))}
			for i, e := range x.endpoints {
				nc.endpoints[i] = Endpoint{Link: remap(e.Link), Marker: e.Marker}
			}
			nx = nc
		case *Angular:
			nx = &Angular{name: x.name, links: [2]*Link{remap(x.links[Base]), remap(x.links[Target])}, angle: x.angle}
		case *Slider:
			ns := *x
			ns.base, ns.target = remap(x.base), remap(x.target)
			nx = &ns
		}
		cm[x] = nx
		c.constraints = append(c.constraints, nx)
	}

	for _, m := range a.motors {
		nm := *m
		if d, ok := cm[m.drive].(*Angular); ok {
			nm.drive = d
		} else {
			nm.drive = &Angular{name: m.drive.name, links: [2]*Link{remap(m.drive.links[Base]), remap(m.drive.links[Target])}, angle: m.drive.angle}
		}
		if m.joint != nil {
			if j, ok := cm[m.joint].(*Coaxial); ok {
				nm.joint = j
			}
		}
		c.motors = append(c.motors, &nm)
	}

	for _, l := range a.unspecified {
		c.unspecified = append(c.unspecified, remap(l))
	}

	return c
}
