package view

import (
	"sync"

	"github.com/ziadkadry99/asset-atlas/internal/catalog"
	"github.com/ziadkadry99/asset-atlas/internal/graph"
)

// Change is delivered to notifiers after every real view transition.
type Change struct {
	State State
	Graph *graph.Digraph
	Label string
}

// Notifier receives view changes. It is the only coupling between the
// controller and whatever draws the graph.
type Notifier interface {
	ViewChanged(Change)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Change)

// ViewChanged calls f(c).
func (f NotifierFunc) ViewChanged(c Change) { f(c) }

// Controller holds the current view and mediates switching between views.
//
// Transitions are serialised by transMu and notifiers run inside the
// transition, so every notifier sees changes in the order they happened.
// Current may be called concurrently, including from a notifier.
type Controller struct {
	entities *graph.EntityGraph
	areas    *graph.AreaGraph
	index    *catalog.AreaIndex

	transMu sync.Mutex
	mu      sync.RWMutex
	current State

	subMu     sync.Mutex
	nextSub   int
	notifiers map[int]Notifier
	order     []int
}

// NewController starts in the Overview.
func NewController(entities *graph.EntityGraph, areas *graph.AreaGraph, notifiers ...Notifier) *Controller {
	c := &Controller{
		entities:  entities,
		areas:     areas,
		index:     entities.Catalog().AreasOf(),
		current:   Overview(),
		notifiers: make(map[int]Notifier),
	}
	for _, n := range notifiers {
		c.Subscribe(n)
	}
	return c
}

// Subscribe registers n for future changes and returns a func that removes it.
func (c *Controller) Subscribe(n Notifier) (cancel func()) {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.notifiers[id] = n
	c.order = append(c.order, id)
	c.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subMu.Lock()
			defer c.subMu.Unlock()
			delete(c.notifiers, id)
			for i, v := range c.order {
				if v == id {
					c.order = append(c.order[:i], c.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Current returns the active view.
func (c *Controller) Current() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// SelectArea switches to the detail view of area. Selecting the active area
// again is a no-op and sends no notification.
func (c *Controller) SelectArea(area string) error {
	if !c.index.Has(area) {
		return catalog.UnknownArea(area)
	}
	c.transition(AreaDetail(area))
	return nil
}

// SelectOverview switches to the Overview. It is idempotent.
func (c *Controller) SelectOverview() {
	c.transition(Overview())
}

// SelectLabel applies a selection made from an area menu, where the first
// entry is OverviewLabel and the rest are area names.
func (c *Controller) SelectLabel(label string) error {
	if label == OverviewLabel {
		c.SelectOverview()
		return nil
	}
	return c.SelectArea(label)
}

// Subgraph derives the graph drawn for a view: the whole area graph for the
// Overview, the induced subgraph of the area's assets otherwise.
func (c *Controller) Subgraph(s State) *graph.Digraph {
	if s.IsOverview() {
		return c.areas.Digraph
	}
	return c.entities.InArea(s.Area()).Digraph
}

func (c *Controller) transition(next State) {
	c.transMu.Lock()
	defer c.transMu.Unlock()

	c.mu.Lock()
	if c.current == next {
		c.mu.Unlock()
		return
	}
	c.current = next
	c.mu.Unlock()

	change := Change{State: next, Graph: c.Subgraph(next), Label: next.Label()}
	for _, n := range c.snapshot() {
		n.ViewChanged(change)
	}
}

func (c *Controller) snapshot() []Notifier {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	out := make([]Notifier, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.notifiers[id])
	}
	return out
}
