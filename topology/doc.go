// Package topology looks at a mechanism as a graph: links are nodes and every
// constraint contributes edges between the links it ties together.
//
// The graph is a gonum simple.UndirectedGraph, so parallel constraints between
// the same pair of links collapse into one edge; a coaxial constraint with k
// endpoints contributes a star from its first endpoint link.
//
// Analyze reports:
//
//	– Components  connected groups of links (anchor component first);
//	– Detached    links outside the anchor's component, which no solver pass
//	              can place relative to the ground;
//	– Loops       the cycle rank E − V + C, i.e. the number of independent
//	              closed loops a closed-form reconstruction has to close;
//	– DOF         the assembly's Σ element DOF + Σ constraint DOF.
//
// The report is diagnostic; the solver logs it when preparing an assembly and
// the linkage CLI prints it.
package topology
