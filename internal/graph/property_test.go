package graph

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/ziadkadry99/asset-atlas/internal/catalog"
)

const propAssets = 6

// buildRandom turns generated integers into a catalog and an edge list.
// assign[i] is the area index of asset i; each pair value p encodes the edge
// (p / propAssets, p % propAssets).
func buildRandom(assign []int, pairs []int) (*catalog.Catalog, []Edge) {
	assets := make([]catalog.Asset, len(assign))
	for i, a := range assign {
		assets[i] = catalog.Asset{ID: fmt.Sprintf("a%d", i), Area: fmt.Sprintf("area%d", a)}
	}
	c, err := catalog.New(assets)
	if err != nil {
		panic(err)
	}
	edges := make([]Edge, len(pairs))
	for i, p := range pairs {
		edges[i] = Edge{
			Source: fmt.Sprintf("a%d", p/propAssets),
			Target: fmt.Sprintf("a%d", p%propAssets),
		}
	}
	return c, edges
}

func edgeSet(edges []Edge) map[Edge]int {
	set := make(map[Edge]int, len(edges))
	for _, e := range edges {
		set[e]++
	}
	return set
}

// TestAggregationInvariants checks the area projection for arbitrary inputs.
func TestAggregationInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	areasGen := gen.SliceOfN(propAssets, gen.IntRange(0, 2))
	edgesGen := gen.SliceOf(gen.IntRange(0, propAssets*propAssets-1))

	properties.Property("area graph has no self-loops", prop.ForAll(
		func(assign []int, pairs []int) bool {
			c, edges := buildRandom(assign, pairs)
			g, err := Build(c, edges)
			if err != nil {
				return false
			}
			for _, e := range Aggregate(g, c).Edges() {
				if e.Source == e.Target {
					return false
				}
			}
			return true
		},
		areasGen, edgesGen,
	))

	properties.Property("area edge exists exactly once iff a cross-area entity edge maps to it", prop.ForAll(
		func(assign []int, pairs []int) bool {
			c, edges := buildRandom(assign, pairs)
			g, err := Build(c, edges)
			if err != nil {
				return false
			}
			got := edgeSet(Aggregate(g, c).Edges())

			want := make(map[Edge]bool)
			for _, e := range edges {
				src, _ := c.AreaOf(e.Source)
				dst, _ := c.AreaOf(e.Target)
				if src != dst {
					want[Edge{Source: src, Target: dst}] = true
				}
			}
			if len(got) != len(want) {
				return false
			}
			for e, n := range got {
				if n != 1 || !want[e] {
					return false
				}
			}
			return true
		},
		areasGen, edgesGen,
	))

	properties.Property("aggregation ignores edge iteration order", prop.ForAll(
		func(assign []int, pairs []int) bool {
			c, edges := buildRandom(assign, pairs)
			reversed := make([]Edge, len(edges))
			for i, e := range edges {
				reversed[len(edges)-1-i] = e
			}
			g1, _ := Build(c, edges)
			g2, _ := Build(c, reversed)
			a1, a2 := Aggregate(g1, c), Aggregate(g2, c)
			return reflect.DeepEqual(a1.Nodes(), a2.Nodes()) &&
				reflect.DeepEqual(edgeSet(a1.Edges()), edgeSet(a2.Edges()))
		},
		areasGen, edgesGen,
	))

	properties.Property("graph lookup returns the catalog record", prop.ForAll(
		func(assign []int, pairs []int) bool {
			c, edges := buildRandom(assign, pairs)
			g, _ := Build(c, edges)
			for _, id := range c.IDs() {
				fromGraph, err := g.Asset(id)
				if err != nil {
					return false
				}
				fromCatalog, _ := c.Asset(id)
				if !reflect.DeepEqual(fromGraph, fromCatalog) {
					return false
				}
			}
			return true
		},
		areasGen, edgesGen,
	))

	properties.Property("area subgraph only keeps edges inside the area", prop.ForAll(
		func(assign []int, pairs []int) bool {
			c, edges := buildRandom(assign, pairs)
			g, _ := Build(c, edges)
			for _, area := range c.AreasOf().Areas() {
				sub := g.InArea(area)
				if sub.Len() != len(c.AreasOf().Members(area)) {
					return false
				}
				for _, e := range sub.Edges() {
					src, _ := c.AreaOf(e.Source)
					dst, _ := c.AreaOf(e.Target)
					if src != area || dst != area || !g.HasEdge(e.Source, e.Target) {
						return false
					}
				}
				for _, e := range g.Edges() {
					src, _ := c.AreaOf(e.Source)
					dst, _ := c.AreaOf(e.Target)
					if src == area && dst == area && !sub.HasEdge(e.Source, e.Target) {
						return false
					}
				}
			}
			return true
		},
		areasGen, edgesGen,
	))

	properties.TestingRun(t)
}
