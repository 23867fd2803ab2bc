package topology

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/katalvlaran/linkage/mechanism"
)

// Report summarizes the constraint graph of an assembly.
type Report struct {
	Links      int        // number of links (nodes)
	Joints     int        // number of distinct link pairs tied by constraints (edges)
	Components [][]string // link names per connected component, anchor's first
	Detached   []string   // links not connected to the anchor
	Loops      int        // cycle rank E − V + C
	DOF        int        // Σ element DOF + Σ constraint DOF
}

// Connected reports whether every link is reachable from the anchor.
func (r Report) Connected() bool { return len(r.Detached) == 0 && len(r.Components) <= 1 }

// Graph builds the undirected link graph of a. Node IDs are link indices in
// a.Links(); the returned slice maps IDs back to links. Self constraints and
// references to links outside the assembly are ignored.
func Graph(a *mechanism.Assembly) (*simple.UndirectedGraph, []*mechanism.Link) {
	links := a.Links()
	g := simple.NewUndirectedGraph()
	ids := make(map[*mechanism.Link]int64, len(links))
	for i, l := range links {
		ids[l] = int64(i)
		g.AddNode(simple.Node(int64(i)))
	}

	for _, c := range a.Constraints() {
		ls := c.Links()
		if len(ls) == 0 {
			continue
		}
		hub, ok := ids[ls[0]]
		if !ok {
			continue
		}
		for _, l := range ls[1:] {
			id, ok := ids[l]
			if !ok || id == hub {
				continue
			}
			g.SetEdge(g.NewEdge(simple.Node(hub), simple.Node(id)))
		}
	}

	return g, links
}

// Analyze computes the topology report of a.
func Analyze(a *mechanism.Assembly) Report {
	g, links := Graph(a)
	comps := topo.ConnectedComponents(g)

	r := Report{
		Links:  len(links),
		Joints: g.Edges().Len(),
		DOF:    a.DOF(),
	}
	r.Loops = r.Joints - r.Links + len(comps)

	for i := range comps {
		comps[i] = sortedNodes(comps[i])
	}
	sort.Slice(comps, func(i, j int) bool { return comps[i][0].ID() < comps[j][0].ID() })

	anchor := a.Anchor()
	for _, comp := range comps {
		names := make([]string, 0, len(comp))
		hasAnchor := false
		for _, n := range comp {
			l := links[n.ID()]
			names = append(names, l.Name())
			if l == anchor {
				hasAnchor = true
			}
		}
		if hasAnchor {
			r.Components = append([][]string{names}, r.Components...)
			continue
		}
		r.Components = append(r.Components, names)
		if anchor != nil {
			r.Detached = append(r.Detached, names...)
		}
	}

	return r
}

func sortedNodes(ns []graph.Node) []graph.Node {
	out := make([]graph.Node, len(ns))
	copy(out, ns)
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })

	return out
}
