package drcore

import (
	"github.com/vlsirouter/drcore/grid"
	"github.com/vlsirouter/drcore/model"
)

// MemDatabase is a minimal in-memory model.Database backed by a
// TilePlane, sufficient to drive the pipeline and its tests without a
// real layout database (SPEC_FULL.md §6). Labels are stored as named
// rectangles rather than being derived from paint, since the core
// never needs to re-derive them.
type MemDatabase struct {
	plane   *grid.TilePlane
	labels  map[string][]labelOccurrence
	connect map[grid.TileType]grid.TileMask
}

type labelOccurrence struct {
	rect  grid.Rect
	layer model.Layer
}

// NewMemDatabase returns an empty MemDatabase over a TilePlane with
// the given origin and spacing.
func NewMemDatabase(origin grid.Point, spacing int) *MemDatabase {
	return &MemDatabase{
		plane:   grid.NewTilePlane(origin, spacing),
		labels:  map[string][]labelOccurrence{},
		connect: map[grid.TileType]grid.TileMask{},
	}
}

// SetObstacle marks every grid cell overlapping rect as obstructing
// the given layer, used by tests to set up the scenarios of spec.md §8.
func (db *MemDatabase) SetObstacle(rect grid.Rect, layer model.Layer) {
	sp := db.plane.Spacing()
	o := db.plane.Origin()
	xlo := grid.SnapDown(rect.XLo, o.X, sp)
	ylo := grid.SnapDown(rect.YLo, o.Y, sp)
	tt := grid.TileObstacleMetal
	if layer == model.LayerPoly {
		tt = grid.TileObstaclePoly
	}
	for x := xlo; x < rect.XHi; x += sp {
		for y := ylo; y < rect.YHi; y += sp {
			pos := grid.Point{X: x, Y: y}
			existing, ok := db.plane.Get(pos)
			if ok && existing.Type != tt && (existing.Type == grid.TileObstacleMetal || existing.Type == grid.TileObstaclePoly) {
				tt = grid.TileObstacleBoth
			}
			db.plane.Set(pos, grid.Tile{Type: tt, Channel: grid.ChannelNone})
		}
	}
}

// TileType is an alias kept so callers can write drcore.TileType
// without importing grid directly for this one symbol.
type TileType = grid.TileType

// AddLabel registers a label occurrence, consumed by
// ForEachLabelLocation.
func (db *MemDatabase) AddLabel(name string, rect grid.Rect, layer model.Layer) {
	db.labels[name] = append(db.labels[name], labelOccurrence{rect: rect, layer: layer})
}

// SetTypesConnectingTo records the precomputed connectivity bitset for
// t, returned verbatim by TypesConnectingTo.
func (db *MemDatabase) SetTypesConnectingTo(t grid.TileType, mask grid.TileMask) {
	db.connect[t] = mask
}

func (db *MemDatabase) Paint(rect grid.Rect, layer model.Layer) {
	// MemDatabase doesn't persist paint separately from obstacles;
	// paintback's result grid is the source of truth for emitted wiring
	// (SPEC_FULL.md §4.6). Paint is a no-op observation point for tests
	// that only care about call counts; see paintback tests for
	// assertions on the emitted result grid itself.
}

func (db *MemDatabase) Erase(rect grid.Rect, layer model.Layer) {}

func (db *MemDatabase) ForEachTileInArea(area grid.Rect, mask grid.TileMask, fn func(grid.Tile) bool) {
	grid.WalkTiles(db.plane, area, mask, fn)
}

func (db *MemDatabase) ForEachLabelLocation(name string, fn func(rect grid.Rect, layer model.Layer)) {
	for _, occ := range db.labels[name] {
		fn(occ.rect, occ.layer)
	}
}

func (db *MemDatabase) TreeSearchArea(area grid.Rect, mask grid.TileMask, fn func(grid.Tile) bool) {
	// MemDatabase has no subcell hierarchy, so a tree search degenerates
	// to the same flat walk as ForEachTileInArea.
	grid.WalkTiles(db.plane, area, mask, fn)
}

func (db *MemDatabase) TypesConnectingTo(t grid.TileType) grid.TileMask {
	return db.connect[t]
}

// Plane exposes the backing TilePlane for callers that need direct
// tile-plane access, not just the Database interface.
func (db *MemDatabase) Plane() *grid.TilePlane { return db.plane }
