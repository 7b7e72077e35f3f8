package graph

import (
	"github.com/ziadkadry99/asset-atlas/internal/catalog"
)

// AreaGraph is the area-level projection of an EntityGraph.
type AreaGraph struct {
	*Digraph
}

// Aggregate projects the entity edges onto areas. Nodes are the catalog's
// areas in first-seen order; an edge (A, B) exists iff some entity edge runs
// from an asset in A to an asset in B with A != B. Intra-area edges vanish.
// The edge set is published in first-seen projection order.
func Aggregate(eg *EntityGraph, cat *catalog.Catalog) *AreaGraph {
	areas := cat.AreasOf().Areas()
	d := newDigraph(len(areas), 0)
	for _, a := range areas {
		d.addNode(a)
	}

	for _, e := range eg.edges {
		src, err := cat.AreaOf(e.Source)
		if err != nil {
			continue
		}
		dst, err := cat.AreaOf(e.Target)
		if err != nil {
			continue
		}
		if src == dst {
			continue
		}
		d.addEdge(Edge{Source: src, Target: dst})
	}
	return &AreaGraph{Digraph: d}
}

// Connected returns the areas adjacent to area in either direction, in
// edge-set order without repeats.
func (g *AreaGraph) Connected(area string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range g.edges {
		var other string
		switch area {
		case e.Source:
			other = e.Target
		case e.Target:
			other = e.Source
		default:
			continue
		}
		if !seen[other] {
			seen[other] = true
			out = append(out, other)
		}
	}
	return out
}
