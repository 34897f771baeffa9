package channel

import (
	"github.com/vlsirouter/drcore/grid"
	"github.com/vlsirouter/drcore/model"
)

// pinPoint returns the absolute boundary point of pin index i on side
// of ch: the channel rect's low corner plus (i-1)*spacing on the
// parallel axis, so pin 1 sits on the rect's low edge, and the channel
// border on the perpendicular axis.
func pinPoint(ch *Channel, side grid.Side, i int) grid.Point {
	switch side {
	case grid.Bottom:
		return grid.Point{X: ch.Rect.XLo + (i-1)*spacing(ch), Y: ch.Rect.YLo}
	case grid.Top:
		return grid.Point{X: ch.Rect.XLo + (i-1)*spacing(ch), Y: ch.Rect.YHi}
	case grid.Left:
		return grid.Point{X: ch.Rect.XLo, Y: ch.Rect.YLo + (i-1)*spacing(ch)}
	default: // grid.Right
		return grid.Point{X: ch.Rect.XHi, Y: ch.Rect.YLo + (i-1)*spacing(ch)}
	}
}

func spacing(ch *Channel) int {
	// A channel's own rect is already grid-aligned; the column pitch is
	// recovered from Length/Width, which is always >= 1.
	if ch.Length > 0 {
		return ch.Rect.Width() / ch.Length
	}
	return ch.Rect.Height() / ch.Width
}

// neighborProbe returns the tile-plane point just across the boundary
// from pin (side, i) of ch, the side on the far channel that the
// crossing corresponds to, and that far side's pin index.
func neighborProbe(ch *Channel, side grid.Side, i int, spc int) (grid.Point, grid.Side, int) {
	p := pinPoint(ch, side, i)
	switch side {
	case grid.Right:
		return p, grid.Left, i
	case grid.Left:
		return grid.Point{X: p.X - spc, Y: p.Y}, grid.Right, i
	case grid.Top:
		return p, grid.Bottom, i
	default: // grid.Bottom
		return grid.Point{X: p.X, Y: p.Y - spc}, grid.Top, i
	}
}

// illegalExit reports whether a river channel forbids crossing through
// side at all (spec.md §4.2 step 3: "or None if exiting a
// river-channel from an illegal side").
func illegalExit(kind Kind, side grid.Side) bool {
	switch kind {
	case HRiver:
		return side == grid.Bottom || side == grid.Top
	case VRiver:
		return side == grid.Left || side == grid.Right
	default:
		return false
	}
}

// InitLinkedPins runs step 3 of spec.md §4.2's prepare_for_routing:
// for every pin of every channel it sets the boundary point, owning
// channel, side and index, and links it to the matching pin of the
// channel across the boundary. River blockage, propagation and
// usable-list construction are the separate MarkRiverBlockage,
// PropagateBlockage and BuildUsableLists steps; session.go is the only
// place that sequences the whole of prepare_for_routing.
func (m *Model) InitLinkedPins() {
	spc := m.plane.Spacing()
	for _, ch := range m.channels {
		for _, side := range [4]grid.Side{grid.Bottom, grid.Top, grid.Left, grid.Right} {
			pa := ch.Sides[side]
			for i := 1; i <= pa.Len(); i++ {
				p := pa.At(i)
				p.Point = pinPoint(ch, side, i)
				p.Channel = ch.ID
				p.Side = side
				p.Index = i

				if illegalExit(ch.Kind, side) {
					p.Linked = nil
					continue
				}
				probe, farSide, farIdx := neighborProbe(ch, side, i, spc)
				far := m.channelAt(probe)
				if far == nil || farIdx < 1 || farIdx > far.sideLen(farSide) {
					p.Linked = nil
					continue
				}
				p.Linked = &PinRef{Channel: far.ID, Side: farSide, Index: farIdx}
			}
		}
	}
}

// ScanObstacles implements spec.md §4.2 step 2: for every pin, probe a
// small corridor around its point in db and record the obstructed
// layer(s), the obstacle size, and the distance to the nearest hazard
// within obstDist (an unset obstDist disables hazard scanning).
func (m *Model) ScanObstacles(db model.Database, obstDist int) {
	spc := m.plane.Spacing()
	for _, ch := range m.channels {
		for _, side := range [4]grid.Side{grid.Bottom, grid.Top, grid.Left, grid.Right} {
			pa := ch.Sides[side]
			for i := 1; i <= pa.Len(); i++ {
				p := pa.At(i)
				probe := pinPoint(ch, side, i)
				area := grid.Rect{XLo: probe.X - spc, YLo: probe.Y - spc, XHi: probe.X + spc, YHi: probe.Y + spc}

				var obst ObstacleFlag
				size := 0
				db.ForEachTileInArea(area, grid.TileObstacleMetal.Mask()|grid.TileObstaclePoly.Mask()|grid.TileObstacleBoth.Mask(), func(t grid.Tile) bool {
					switch t.Type {
					case grid.TileObstacleMetal:
						obst |= ObstMetal
					case grid.TileObstaclePoly:
						obst |= ObstPoly
					case grid.TileObstacleBoth:
						obst |= ObstBoth
					}
					size += spc
					return true
				})
				p.Obstacle = obst
				p.ObstacleSize = size

				if obstDist > 0 {
					hazardArea := area.Expand(obstDist)
					best := obstDist + 1
					db.ForEachTileInArea(hazardArea, grid.TileObstacleMetal.Mask()|grid.TileObstaclePoly.Mask()|grid.TileObstacleBoth.Mask(), func(t grid.Tile) bool {
						d := probe.ManhattanDist(t.Pos)
						if d < best {
							best = d
						}
						return true
					})
					if best <= obstDist {
						p.HazardDist = best
					}
				}
			}
		}
	}
}

// ScanResultObstacles populates every channel's Result grid with
// blk_m/blk_p (spec.md §4.5's input bits) by probing db once per
// result cell, the same probe pattern ScanObstacles uses for pin
// corridors. The greedy router (gcr.Sweep) reads these bits to decide
// where a track may run; they must be set before Sweep runs and are
// otherwise left zero (format.go's legacy dump/decode path sets them
// directly from a hand-edited map instead of a live Database).
func (m *Model) ScanResultObstacles(db model.Database) {
	spc := m.plane.Spacing()
	for _, ch := range m.channels {
		for col := 0; col < ch.Length; col++ {
			for row := 0; row < ch.Width; row++ {
				cx := ch.Rect.XLo + col*spc + spc/2
				cy := ch.Rect.YLo + row*spc + spc/2
				area := grid.Rect{XLo: cx - spc/2, YLo: cy - spc/2, XHi: cx + spc/2, YHi: cy + spc/2}

				var f CellFlags
				db.ForEachTileInArea(area, grid.TileObstacleMetal.Mask()|grid.TileObstaclePoly.Mask()|grid.TileObstacleBoth.Mask(), func(t grid.Tile) bool {
					switch t.Type {
					case grid.TileObstacleMetal:
						f |= FlagBlkMetal
					case grid.TileObstaclePoly:
						f |= FlagBlkPoly
					case grid.TileObstacleBoth:
						f |= FlagBlkMetal | FlagBlkPoly
					}
					return true
				})
				ch.Result[col][row] |= f
			}
		}
	}
}

// MarkRiverBlockage implements spec.md §4.2 step 5: for a river
// channel, every pair of opposing pins whose straight crossing is
// blocked on both layers is marked Blocked.
func (m *Model) MarkRiverBlockage() {
	for _, ch := range m.channels {
		var a, b grid.Side
		switch ch.Kind {
		case HRiver:
			a, b = grid.Left, grid.Right
		case VRiver:
			a, b = grid.Bottom, grid.Top
		default:
			continue
		}
		pa, pb := ch.Sides[a], ch.Sides[b]
		n := pa.Len()
		for i := 1; i <= n; i++ {
			pinA, pinB := pa.At(i), pb.At(i)
			if pinA.Obstacle == ObstBoth || pinB.Obstacle == ObstBoth {
				pinA.Net = NetBlocked
				pinB.Net = NetBlocked
			}
		}
	}
}

// PropagateBlockage implements spec.md §4.2 step 6: iterate to a fixed
// point so that no usable pin has a blocked linked pin, and so that
// blockage at one side of a river channel always blocks the other.
func (m *Model) PropagateBlockage() {
	changed := true
	for changed {
		changed = false
		for _, ch := range m.channels {
			for _, side := range [4]grid.Side{grid.Bottom, grid.Top, grid.Left, grid.Right} {
				pa := ch.Sides[side]
				for i := 1; i <= pa.Len(); i++ {
					p := pa.At(i)
					if p.Net == NetBlocked || p.Linked == nil {
						continue
					}
					far := m.Channel(p.Linked.Channel)
					farPin := far.Sides[p.Linked.Side].At(p.Linked.Index)
					if farPin.Net == NetBlocked {
						p.Net = NetBlocked
						changed = true
					}
				}
			}
			if ch.Kind == HRiver || ch.Kind == VRiver {
				var a, b grid.Side
				if ch.Kind == HRiver {
					a, b = grid.Left, grid.Right
				} else {
					a, b = grid.Bottom, grid.Top
				}
				pa, pb := ch.Sides[a], ch.Sides[b]
				for i := 1; i <= pa.Len(); i++ {
					pinA, pinB := pa.At(i), pb.At(i)
					if pinA.Net == NetBlocked && pinB.Net != NetBlocked {
						pinB.Net = NetBlocked
						changed = true
					}
					if pinB.Net == NetBlocked && pinA.Net != NetBlocked {
						pinA.Net = NetBlocked
						changed = true
					}
				}
			}
		}
	}
}

// BuildUsableLists implements spec.md §4.2 step 7 for every channel
// side.
func (m *Model) BuildUsableLists() {
	for _, ch := range m.channels {
		for _, side := range [4]grid.Side{grid.Bottom, grid.Top, grid.Left, grid.Right} {
			ch.Sides[side].rebuildUsableList()
		}
	}
}
