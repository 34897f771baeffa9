package model

import "github.com/vlsirouter/drcore/grid"

// Layer names the two routing layers, metal and poly.
type Layer int

const (
	LayerMetal Layer = iota
	LayerPoly
)

// Database is the layout-database collaborator consumed by the core
// (spec.md §6). The real implementation — label/geometry primitives —
// is out of scope (spec.md §1's Non-goals); this interface is the
// narrow surface the core actually calls.
type Database interface {
	// Paint adds material of the given layer within rect.
	Paint(rect grid.Rect, layer Layer)
	// Erase removes material of the given layer within rect.
	Erase(rect grid.Rect, layer Layer)
	// ForEachTileInArea calls fn for every database tile of a type in
	// mask overlapping area. fn returning false stops the scan early.
	ForEachTileInArea(area grid.Rect, mask grid.TileMask, fn func(grid.Tile) bool)
	// ForEachLabelLocation calls fn for every occurrence of the named
	// label, giving its rectangle and layer.
	ForEachLabelLocation(name string, fn func(rect grid.Rect, layer Layer))
	// TreeSearchArea recursively searches subcells overlapping area for
	// tiles of a type in mask, the way the original's tree_search_area
	// descends placed subcells.
	TreeSearchArea(area grid.Rect, mask grid.TileMask, fn func(grid.Tile) bool)
	// TypesConnectingTo returns the precomputed bitset of types that
	// electrically connect to t.
	TypesConnectingTo(t grid.TileType) grid.TileMask
}
