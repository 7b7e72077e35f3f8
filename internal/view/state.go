package view

import "github.com/ziadkadry99/asset-atlas/internal/catalog"

// OverviewLabel is the label of the aggregate view, as shown in area menus.
const OverviewLabel = catalog.OverviewArea

// State is the active view: either the Overview or the detail view of one
// area. The zero value is the Overview.
type State struct {
	area string
}

// Overview returns the aggregate view state.
func Overview() State { return State{} }

// AreaDetail returns the detail view state for an area.
func AreaDetail(area string) State { return State{area: area} }

// IsOverview reports whether s is the aggregate view.
func (s State) IsOverview() bool { return s.area == "" }

// Area returns the area of a detail view, or "" for the Overview.
func (s State) Area() string { return s.area }

// Label is the human-readable name of the view.
func (s State) Label() string {
	if s.IsOverview() {
		return OverviewLabel
	}
	return s.area
}

func (s State) String() string {
	if s.IsOverview() {
		return "Overview"
	}
	return "AreaDetail(" + s.area + ")"
}
