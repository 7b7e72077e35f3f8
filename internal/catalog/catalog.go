package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every catalog constructor.
var validate = validator.New()

// OverviewArea is the menu label of the aggregate view. No area may use it.
const OverviewArea = "Overview"

// Asset is a named technical system in the catalog.
type Asset struct {
	ID             string   `yaml:"id" json:"id" validate:"required"`
	Area           string   `yaml:"area" json:"area" validate:"required"`
	Description    string   `yaml:"description" json:"description"`
	KeyFeatures    []string `yaml:"key_features" json:"key_features" validate:"dive,required"`
	RelatedSystems []string `yaml:"related_systems" json:"related_systems"`
	DataFlow       string   `yaml:"data_flow" json:"data_flow"`
	BusinessImpact string   `yaml:"business_impact" json:"business_impact"`
}

// clone returns a copy whose slices are not shared with a.
func (a Asset) clone() Asset {
	a.KeyFeatures = append([]string(nil), a.KeyFeatures...)
	a.RelatedSystems = append([]string(nil), a.RelatedSystems...)
	return a
}

// Catalog is the immutable set of assets the graphs are built from.
type Catalog struct {
	assets []Asset
	byID   map[string]int
	areas  *AreaIndex
}

// New validates assets and builds a catalog that preserves their order.
func New(assets []Asset) (*Catalog, error) {
	c := &Catalog{
		assets: make([]Asset, 0, len(assets)),
		byID:   make(map[string]int, len(assets)),
	}
	idx := &AreaIndex{members: make(map[string][]string)}

	for i, a := range assets {
		if err := validate.Struct(a); err != nil {
			return nil, fmt.Errorf("asset #%d %q: %w: %v", i, a.ID, ErrInvalidAsset, err)
		}
		if strings.TrimSpace(a.Area) == "" {
			return nil, fmt.Errorf("asset %q: %w: blank area", a.ID, ErrInvalidAsset)
		}
		if a.Area == OverviewArea {
			return nil, fmt.Errorf("asset %q: %w: area name %q is reserved", a.ID, ErrInvalidAsset, OverviewArea)
		}
		if _, dup := c.byID[a.ID]; dup {
			return nil, fmt.Errorf("asset %q: %w", a.ID, ErrDuplicateEntity)
		}
		c.byID[a.ID] = len(c.assets)
		c.assets = append(c.assets, a.clone())

		if _, seen := idx.members[a.Area]; !seen {
			idx.order = append(idx.order, a.Area)
		}
		idx.members[a.Area] = append(idx.members[a.Area], a.ID)
	}
	c.areas = idx
	return c, nil
}

// Len returns the number of assets.
func (c *Catalog) Len() int { return len(c.assets) }

// Assets returns every asset in definition order.
func (c *Catalog) Assets() []Asset {
	out := make([]Asset, len(c.assets))
	for i, a := range c.assets {
		out[i] = a.clone()
	}
	return out
}

// IDs returns every asset id in definition order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.assets))
	for i, a := range c.assets {
		out[i] = a.ID
	}
	return out
}

// Asset looks up an asset by id.
func (c *Catalog) Asset(id string) (Asset, error) {
	i, ok := c.byID[id]
	if !ok {
		return Asset{}, NotFound(id)
	}
	return c.assets[i].clone(), nil
}

// Has reports whether id names an asset.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// AreaOf returns the area of the asset with the given id.
func (c *Catalog) AreaOf(id string) (string, error) {
	i, ok := c.byID[id]
	if !ok {
		return "", NotFound(id)
	}
	return c.assets[i].Area, nil
}

// AreasOf returns the area index built at construction.
func (c *Catalog) AreasOf() *AreaIndex { return c.areas }

// AreaIndex maps each area to its member asset ids.
// Areas and members are both kept in first-seen order.
type AreaIndex struct {
	order   []string
	members map[string][]string
}

// Areas returns the area names in first-seen order.
func (x *AreaIndex) Areas() []string {
	return append([]string(nil), x.order...)
}

// Sorted returns the area names in alphabetical order, as shown in area menus.
func (x *AreaIndex) Sorted() []string {
	out := x.Areas()
	sort.Strings(out)
	return out
}

// Members returns the asset ids of an area, or nil for an unknown area.
func (x *AreaIndex) Members(area string) []string {
	m, ok := x.members[area]
	if !ok {
		return nil
	}
	return append([]string(nil), m...)
}

// Has reports whether area is present in the catalog.
func (x *AreaIndex) Has(area string) bool {
	_, ok := x.members[area]
	return ok
}

// Len returns the number of distinct areas.
func (x *AreaIndex) Len() int { return len(x.order) }
