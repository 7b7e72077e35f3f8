package graph

// Edge is a directed (source, target) pair of node ids.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Digraph is a read-only directed graph over string node ids. Nodes and
// edges keep their insertion order; duplicate ordered pairs are stored once.
type Digraph struct {
	nodes []string
	index map[string]int
	edges []Edge
	seen  map[Edge]struct{}
	out   map[string][]string
	in    map[string][]string
}

func newDigraph(nodeHint, edgeHint int) *Digraph {
	return &Digraph{
		nodes: make([]string, 0, nodeHint),
		index: make(map[string]int, nodeHint),
		edges: make([]Edge, 0, edgeHint),
		seen:  make(map[Edge]struct{}, edgeHint),
		out:   make(map[string][]string, nodeHint),
		in:    make(map[string][]string, nodeHint),
	}
}

func (g *Digraph) addNode(id string) {
	if _, ok := g.index[id]; ok {
		return
	}
	g.index[id] = len(g.nodes)
	g.nodes = append(g.nodes, id)
}

// addEdge records e unless the same ordered pair is already present.
func (g *Digraph) addEdge(e Edge) bool {
	if _, dup := g.seen[e]; dup {
		return false
	}
	g.seen[e] = struct{}{}
	g.edges = append(g.edges, e)
	g.out[e.Source] = append(g.out[e.Source], e.Target)
	g.in[e.Target] = append(g.in[e.Target], e.Source)
	return true
}

// Nodes returns the node ids in insertion order.
func (g *Digraph) Nodes() []string { return append([]string(nil), g.nodes...) }

// Edges returns the distinct edges in first-seen order.
func (g *Digraph) Edges() []Edge { return append([]Edge(nil), g.edges...) }

// Len returns the number of nodes.
func (g *Digraph) Len() int { return len(g.nodes) }

// EdgeCount returns the number of distinct edges.
func (g *Digraph) EdgeCount() int { return len(g.edges) }

// HasNode reports whether id is a node of g.
func (g *Digraph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// HasEdge reports whether the ordered pair (source, target) is an edge of g.
func (g *Digraph) HasEdge(source, target string) bool {
	_, ok := g.seen[Edge{Source: source, Target: target}]
	return ok
}

// NeighborsOut returns the targets of edges leaving id, in edge order.
func (g *Digraph) NeighborsOut(id string) []string {
	return append([]string(nil), g.out[id]...)
}

// NeighborsIn returns the sources of edges entering id, in edge order.
func (g *Digraph) NeighborsIn(id string) []string {
	return append([]string(nil), g.in[id]...)
}
