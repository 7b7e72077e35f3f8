package graph

import (
	"fmt"

	"github.com/ziadkadry99/asset-atlas/internal/catalog"
)

// EntityGraph is the directed graph over catalog assets.
type EntityGraph struct {
	*Digraph
	catalog *catalog.Catalog
}

// Build creates the entity graph for cat from an explicit edge list. Every
// asset becomes a node in catalog order. It fails without building anything
// if an endpoint is not in the catalog.
func Build(cat *catalog.Catalog, edges []Edge) (*EntityGraph, error) {
	for i, e := range edges {
		if !cat.Has(e.Source) {
			return nil, fmt.Errorf("edge #%d (%s -> %s): %w", i, e.Source, e.Target, catalog.UnknownAsset(e.Source))
		}
		if !cat.Has(e.Target) {
			return nil, fmt.Errorf("edge #%d (%s -> %s): %w", i, e.Source, e.Target, catalog.UnknownAsset(e.Target))
		}
	}

	d := newDigraph(cat.Len(), len(edges))
	for _, id := range cat.IDs() {
		d.addNode(id)
	}
	for _, e := range edges {
		d.addEdge(e)
	}
	return &EntityGraph{Digraph: d, catalog: cat}, nil
}

// FromSpecs converts definition edges into graph edges.
func FromSpecs(specs []catalog.EdgeSpec) []Edge {
	out := make([]Edge, len(specs))
	for i, s := range specs {
		out[i] = Edge{Source: s.Source, Target: s.Target}
	}
	return out
}

// Catalog returns the catalog the graph was built from.
func (g *EntityGraph) Catalog() *catalog.Catalog { return g.catalog }

// Asset returns the catalog record for a node of the graph.
func (g *EntityGraph) Asset(id string) (catalog.Asset, error) {
	if !g.HasNode(id) {
		return catalog.Asset{}, catalog.NotFound(id)
	}
	return g.catalog.Asset(id)
}

// SubgraphInducedBy keeps the assets that satisfy pred and the edges whose
// endpoints both do. Node and edge order follow g.
func (g *EntityGraph) SubgraphInducedBy(pred func(catalog.Asset) bool) *EntityGraph {
	keep := make(map[string]bool, len(g.nodes))
	d := newDigraph(0, 0)
	for _, id := range g.nodes {
		a, err := g.catalog.Asset(id)
		if err != nil || !pred(a) {
			continue
		}
		keep[id] = true
		d.addNode(id)
	}
	for _, e := range g.edges {
		if keep[e.Source] && keep[e.Target] {
			d.addEdge(e)
		}
	}
	return &EntityGraph{Digraph: d, catalog: g.catalog}
}

// InArea is the induced subgraph of the assets in one area.
func (g *EntityGraph) InArea(area string) *EntityGraph {
	return g.SubgraphInducedBy(func(a catalog.Asset) bool { return a.Area == area })
}
