package selection

import (
	"fmt"

	"github.com/ziadkadry99/asset-atlas/internal/catalog"
	"github.com/ziadkadry99/asset-atlas/internal/graph"
	"github.com/ziadkadry99/asset-atlas/internal/view"
)

// Entity is the domain object behind a picked node: *SelectedArea or *SelectedAsset.
type Entity interface {
	// ID is the node id that was picked.
	ID() string
	isEntity()
}

// SelectedArea is a picked Overview node.
type SelectedArea struct {
	Name           string   `json:"name"`
	Members        []string `json:"members"`
	ConnectedAreas []string `json:"connected_areas"`
}

func (a *SelectedArea) ID() string { return a.Name }
func (*SelectedArea) isEntity()    {}

// SelectedAsset is a picked node of an area detail view.
type SelectedAsset struct {
	Asset catalog.Asset `json:"asset"`
}

func (a *SelectedAsset) ID() string { return a.Asset.ID }
func (*SelectedAsset) isEntity()    {}

// Resolver maps a pick in a rendered frame back to a catalog entity.
type Resolver struct {
	catalog *catalog.Catalog
	areas   *graph.AreaGraph
}

// NewResolver creates a Resolver over the given catalog and area graph.
func NewResolver(cat *catalog.Catalog, areas *graph.AreaGraph) *Resolver {
	return &Resolver{catalog: cat, areas: areas}
}

// Resolve returns the entity at pickIndex of drawOrder, the exact node
// sequence the renderer drew for state. The index comes from outside and is
// bounds-checked. Resolve never changes any state.
func (r *Resolver) Resolve(state view.State, pickIndex int, drawOrder []string) (Entity, error) {
	if pickIndex < 0 || pickIndex >= len(drawOrder) {
		return nil, fmt.Errorf("pick %d of %d drawn nodes: %w", pickIndex, len(drawOrder), catalog.ErrIndexOutOfRange)
	}
	id := drawOrder[pickIndex]

	if state.IsOverview() {
		area, err := r.Area(id)
		if err != nil {
			return nil, err
		}
		return area, nil
	}

	a, err := r.catalog.Asset(id)
	if err != nil {
		return nil, err
	}
	if a.Area != state.Area() {
		return nil, fmt.Errorf("%w: not drawn in area %q", catalog.UnknownAsset(id), state.Area())
	}
	return &SelectedAsset{Asset: a}, nil
}

// Area builds the selection for one area without going through a pick.
func (r *Resolver) Area(name string) (*SelectedArea, error) {
	idx := r.catalog.AreasOf()
	if !idx.Has(name) {
		return nil, catalog.UnknownArea(name)
	}
	return &SelectedArea{
		Name:           name,
		Members:        idx.Members(name),
		ConnectedAreas: r.areas.Connected(name),
	}, nil
}

// Asset builds the selection for one asset without going through a pick.
func (r *Resolver) Asset(id string) (*SelectedAsset, error) {
	a, err := r.catalog.Asset(id)
	if err != nil {
		return nil, err
	}
	return &SelectedAsset{Asset: a}, nil
}
