// Package atlas assembles the catalog, graphs, view controller and resolver
// into one explorer session and turns views into drawable frames.
package atlas

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ziadkadry99/asset-atlas/internal/catalog"
	"github.com/ziadkadry99/asset-atlas/internal/details"
	"github.com/ziadkadry99/asset-atlas/internal/graph"
	"github.com/ziadkadry99/asset-atlas/internal/layout"
	"github.com/ziadkadry99/asset-atlas/internal/palette"
	"github.com/ziadkadry99/asset-atlas/internal/selection"
	"github.com/ziadkadry99/asset-atlas/internal/view"
)

// DefaultTitle prefixes every frame title.
const DefaultTitle = "CBA System Visualization"

// Options tune an Atlas.
type Options struct {
	Title  string
	Layout layout.Engine
}

// Frame is everything a renderer needs to draw one view. Nodes is the draw
// order; a renderer reports picks as an index into it.
type Frame struct {
	State     view.State        `json:"-"`
	Label     string            `json:"label"`
	Title     string            `json:"title"`
	Overview  bool              `json:"overview"`
	Area      string            `json:"area,omitempty"`
	Nodes     []string          `json:"nodes"`
	Edges     []graph.Edge      `json:"edges"`
	Positions layout.Positions  `json:"positions"`
	Colors    map[string]string `json:"colors"`
}

// Atlas is a read-only explorer session over one catalog definition.
type Atlas struct {
	catalog    *catalog.Catalog
	entities   *graph.EntityGraph
	areas      *graph.AreaGraph
	controller *view.Controller
	resolver   *selection.Resolver
	engine     layout.Engine
	title      string

	mu     sync.Mutex
	frames map[view.State]Frame
}

// New builds the catalog and both graphs from def. Nothing is built if any
// asset or edge is invalid.
func New(def *catalog.Definition, opts Options) (*Atlas, error) {
	cat, err := def.Catalog()
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	entities, err := graph.Build(cat, graph.FromSpecs(def.Edges))
	if err != nil {
		return nil, fmt.Errorf("building entity graph: %w", err)
	}
	areas := graph.Aggregate(entities, cat)

	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Layout == nil {
		opts.Layout = layout.DefaultSpring()
	}

	return &Atlas{
		catalog:    cat,
		entities:   entities,
		areas:      areas,
		controller: view.NewController(entities, areas),
		resolver:   selection.NewResolver(cat, areas),
		engine:     opts.Layout,
		title:      opts.Title,
		frames:     make(map[view.State]Frame),
	}, nil
}

// Builtin is New over the embedded reference definition.
func Builtin(opts Options) (*Atlas, error) {
	def, err := catalog.Builtin()
	if err != nil {
		return nil, err
	}
	return New(def, opts)
}

func (a *Atlas) Catalog() *catalog.Catalog     { return a.catalog }
func (a *Atlas) Entities() *graph.EntityGraph  { return a.entities }
func (a *Atlas) Areas() *graph.AreaGraph       { return a.areas }
func (a *Atlas) Controller() *view.Controller  { return a.controller }
func (a *Atlas) Resolver() *selection.Resolver { return a.resolver }
func (a *Atlas) Title() string                 { return a.title }

// Current returns the active view.
func (a *Atlas) Current() view.State { return a.controller.Current() }

// CurrentFrame returns the frame of the active view.
func (a *Atlas) CurrentFrame() Frame { return a.Frame(a.controller.Current()) }

// Select switches view by menu label.
func (a *Atlas) Select(label string) error { return a.controller.SelectLabel(label) }

// Subscribe registers n for view changes and returns a func that removes it.
func (a *Atlas) Subscribe(n view.Notifier) (cancel func()) { return a.controller.Subscribe(n) }

// OnFrame calls fn with the new frame after every view change.
func (a *Atlas) OnFrame(fn func(Frame)) (cancel func()) {
	return a.controller.Subscribe(view.NotifierFunc(func(c view.Change) {
		fn(a.Frame(c.State))
	}))
}

// Menu lists the view labels a user can choose from: the Overview first,
// then every area in alphabetical order.
func (a *Atlas) Menu() []string {
	return append([]string{view.OverviewLabel}, a.catalog.AreasOf().Sorted()...)
}

// Summary describes the size of the entity graph and the overview.
func (a *Atlas) Summary() string {
	return fmt.Sprintf("Graph created with %d nodes and %d edges; overview has %d areas and %d edges",
		a.entities.Len(), a.entities.EdgeCount(), a.areas.Len(), a.areas.EdgeCount())
}

// Frame returns the drawable frame of s. Frames are laid out once per view
// and reused, so positions stay put when a user returns to a view.
func (a *Atlas) Frame(s view.State) Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	if f, ok := a.frames[s]; ok {
		return f.copy()
	}
	f := a.render(s, a.controller.Subgraph(s))
	a.frames[s] = f
	return f.copy()
}

// FrameFor is Frame for a menu label.
func (a *Atlas) FrameFor(label string) (Frame, error) {
	if label == view.OverviewLabel || label == "" {
		return a.Frame(view.Overview()), nil
	}
	if !a.catalog.AreasOf().Has(label) {
		return Frame{}, catalog.UnknownArea(label)
	}
	return a.Frame(view.AreaDetail(label)), nil
}

// Pick resolves a pick against the active view.
func (a *Atlas) Pick(index int, drawOrder []string) (selection.Entity, error) {
	return a.resolver.Resolve(a.controller.Current(), index, drawOrder)
}

// Describe resolves a pick in frame f and formats the result.
func (a *Atlas) Describe(f Frame, index int) (string, error) {
	e, err := a.resolver.Resolve(f.State, index, f.Nodes)
	if err != nil {
		return "", err
	}
	return details.Format(e), nil
}

func (a *Atlas) render(s view.State, g *graph.Digraph) Frame {
	nodes := g.Nodes()
	return Frame{
		State:     s,
		Label:     s.Label(),
		Title:     fmt.Sprintf("%s - %s", a.title, s.Label()),
		Overview:  s.IsOverview(),
		Area:      s.Area(),
		Nodes:     nodes,
		Edges:     g.Edges(),
		Positions: a.engine.Layout(g),
		Colors:    palette.ForNodes(nodes, s.IsOverview()),
	}
}

// copy detaches f from the cached frame so callers may modify it.
func (f Frame) copy() Frame {
	f.Nodes = append([]string(nil), f.Nodes...)
	f.Edges = append([]graph.Edge(nil), f.Edges...)
	pos := make(layout.Positions, len(f.Positions))
	for k, v := range f.Positions {
		pos[k] = v
	}
	f.Positions = pos
	colors := make(map[string]string, len(f.Colors))
	for k, v := range f.Colors {
		colors[k] = v
	}
	f.Colors = colors
	return f
}

// Outline is a plain-text rendering of f: the title, the nodes numbered by
// draw order and the edges.
func (f Frame) Outline() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", f.Title)
	fmt.Fprintf(&b, "Nodes (%d):\n", len(f.Nodes))
	for i, n := range f.Nodes {
		fmt.Fprintf(&b, "%3d. %s\n", i, n)
	}
	fmt.Fprintf(&b, "\nEdges (%d):\n", len(f.Edges))
	for _, e := range f.Edges {
		fmt.Fprintf(&b, "- %s -> %s\n", e.Source, e.Target)
	}
	return b.String()
}
