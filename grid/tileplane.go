package grid

import "github.com/vlsirouter/drcore/internal"

// TileMask is a bitset of tile types, mirroring the Database
// collaborator's type_mask parameters (spec.md §6).
type TileMask uint32

// TileType names what occupies a tile-plane cell.
type TileType uint8

const (
	TileSpace TileType = iota
	TileChannel
	TileObstacleMetal
	TileObstaclePoly
	TileObstacleBoth
)

// Mask returns the single-bit mask for t.
func (t TileType) Mask() TileMask {
	return TileMask(1) << uint(t)
}

// Has reports whether mask includes t.
func (m TileMask) Has(t TileType) bool {
	return m&t.Mask() != 0
}

// Tile is one cell of a TilePlane, carrying its position, its type, and
// the id of the channel that owns it (ChannelNone if the tile hasn't
// been claimed by a channel).
type Tile struct {
	Pos     Point
	Type    TileType
	Channel int // ChannelNone (-1) until assigned by channel.Model.DefineChannel
}

// ChannelNone marks a Tile not yet assigned to any channel.
const ChannelNone = -1

// TilePlane is a sparse grid of Tiles. It is always accessed through
// WalkTiles; callers never index the backing map directly, matching
// spec.md §4.1 ("clients never index planes directly").
type TilePlane struct {
	spacing int
	origin  Point
	cells   internal.Grid[Tile]
}

// NewTilePlane returns an empty plane with the given grid spacing and
// origin. Every cell defaults to TileSpace with no owning channel.
func NewTilePlane(origin Point, spacing int) *TilePlane {
	return &TilePlane{
		spacing: spacing,
		origin:  origin,
		cells:   internal.Grid[Tile]{},
	}
}

func (p *TilePlane) posToKey(pos Point) internal.GridPos {
	return internal.GridPos{
		X: int16((pos.X - p.origin.X) / p.spacing),
		Y: int16((pos.Y - p.origin.Y) / p.spacing),
	}
}

func (p *TilePlane) keyToPos(k internal.GridPos) Point {
	return Point{
		X: p.origin.X + int(k.X)*p.spacing,
		Y: p.origin.Y + int(k.Y)*p.spacing,
	}
}

// Set records the tile at pos, creating it if necessary.
func (p *TilePlane) Set(pos Point, t Tile) {
	t.Pos = pos
	p.cells[p.posToKey(pos)] = t
}

// Get returns the tile at pos and whether one has been recorded there.
// An unset cell reads as TileSpace with ChannelNone.
func (p *TilePlane) Get(pos Point) (Tile, bool) {
	t, ok := p.cells[p.posToKey(pos)]
	if !ok {
		return Tile{Pos: pos, Type: TileSpace, Channel: ChannelNone}, false
	}
	return t, true
}

// WalkTiles calls fn once for every tile in area whose type is included
// in mask (TileMask(0) matches every type). fn returning false stops
// the walk early — used both for ordinary early-exit and for polling a
// shared interrupt flag mid-scan (spec.md §5).
func WalkTiles(p *TilePlane, area Rect, mask TileMask, fn func(Tile) bool) {
	for x := area.XLo; x < area.XHi; x += p.spacing {
		for y := area.YLo; y < area.YHi; y += p.spacing {
			pos := Point{X: x, Y: y}
			t, _ := p.Get(pos)
			if mask != 0 && !mask.Has(t.Type) {
				continue
			}
			if !fn(t) {
				return
			}
		}
	}
}

// Spacing returns the plane's grid spacing.
func (p *TilePlane) Spacing() int { return p.spacing }

// Origin returns the plane's grid origin.
func (p *TilePlane) Origin() Point { return p.origin }
