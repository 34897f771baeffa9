// Package stem implements the stem generator (spec.md §4.3): deciding,
// for every terminal location, which channel pin it electrically
// routes to, and — once global and channel routing have run — painting
// the short wire connecting terminal to pin. Grounded on the teacher's
// link_router.go for its extent-scanning and contact-placement style,
// translated from raumata's point-to-point links to spec.md's
// terminal-to-pin stems.
package stem

import (
	"fmt"

	"github.com/vlsirouter/drcore/channel"
	"github.com/vlsirouter/drcore/grid"
	"github.com/vlsirouter/drcore/model"
)

// Params holds the subset of the technology configuration the stem
// generator needs, kept separate from the root package's Config to
// avoid an import cycle (stem is a leaf package the root orchestrates,
// not the other way around).
type Params struct {
	ContactWidth int
	MazeStems    bool
	MaxSeparation int // widest declared metal/poly separation, bounds the obstacle probe
	MaxSearch     int // how many grid lines to widen a stake search by, each direction
}

var compassDirs = [4]grid.Point{
	{X: 0, Y: 1},  // north
	{X: 0, Y: -1}, // south
	{X: 1, Y: 0},  // east
	{X: -1, Y: 0}, // west
}

// Assign implements spec.md §4.3.1 for every Term of every Net in nl:
// external terminals search outward for a channel to stake into,
// internal (river-channel) terminals try both opposite sides with the
// three-stage no-change/pin-contact/both-contact attempt order. Terms
// with no staked TermLoc at all are reported once as a whole; the only
// per-location report is for a degenerate label that cannot be grown,
// and a location that fails to stake for any other reason is not
// reported on its own.
func Assign(nl *model.NetList, cm *channel.Model, db model.Database, p Params, mz model.MazeRouter, fb model.FeedbackSink) {
	spacing := cm.Plane().Spacing()

	for _, net := range nl.Nets {
		for ti := range net.Terms {
			term := &net.Terms[ti]
			anyStaked := false
			for li := range term.Locs {
				loc := &term.Locs[li]
				if loc.Rect.Empty() {
					grown := growDegenerate(loc.Rect, spacing)
					if grown.Empty() {
						fb.Report(model.Feedback{Area: loc.Rect, Message: "terminal is degenerate", Severity: model.SevError})
						continue
					}
					loc.Rect = grown
				}

				ch := channelContaining(cm, loc.Rect)
				var ok bool
				if ch != nil && (ch.Kind == channel.HRiver || ch.Kind == channel.VRiver) {
					ok = assignInternal(loc, ch, cm, db, p, mz, spacing)
				} else {
					ok = assignExternal(loc, cm, db, p, spacing)
				}
				if ok {
					anyStaked = true
				}
			}
			if !anyStaked {
				fb.Report(model.Feedback{
					Area:     term.Locs[0].Rect,
					Message:  fmt.Sprintf("terminal %s could not be staked to any channel", term.Id),
					Severity: model.SevError,
				})
			}
		}
	}
}

func channelContaining(cm *channel.Model, rect grid.Rect) *channel.Channel {
	centre := grid.Point{X: (rect.XLo + rect.XHi) / 2, Y: (rect.YLo + rect.YHi) / 2}
	for _, ch := range cm.Channels() {
		if ch.Rect.Contains(centre) {
			return ch
		}
	}
	return nil
}

// growDegenerate grows a zero-extent label rectangle by one grid cell
// in whichever axis is degenerate (spec.md §8's boundary behaviour).
func growDegenerate(r grid.Rect, spacing int) grid.Rect {
	out := r
	if out.Width() == 0 {
		out.XHi = out.XLo + spacing
	}
	if out.Height() == 0 {
		out.YHi = out.YLo + spacing
	}
	return out
}

// assignExternal implements the "External" branch of spec.md §4.3.1:
// search each compass direction for the nearest channel tile, then try
// the contact-aligned crossing, widening to adjacent grid lines on
// failure.
func assignExternal(loc *model.TermLoc, cm *channel.Model, db model.Database, p Params, spacing int) bool {
	staked := 0
	for _, dir := range compassDirs {
		if staked >= 2 {
			break // "up to one stem per compass direction", capped defensively
		}
		ch, side := searchOutward(cm, loc.Rect, dir, spacing)
		if ch == nil {
			continue
		}

		axisLo, axisHi := axisExtent(loc.Rect, side)
		line := grid.ContactLine(axisLo, axisHi, originOnAxis(ch, side), spacing, p.ContactWidth)
		idx := lineToIndex(ch, side, line, spacing)

		if tryStake(ch, side, idx, loc, db, p, spacing) {
			staked++
			continue
		}
		for w := 1; w <= p.MaxSearch; w++ {
			if tryStake(ch, side, idx+w, loc, db, p, spacing) {
				staked++
				break
			}
			if tryStake(ch, side, idx-w, loc, db, p, spacing) {
				staked++
				break
			}
		}
	}
	return staked > 0
}

// searchOutward steps away from rect in direction dir, one grid cell
// at a time, until it finds a tile owned by a channel (spec.md §4.3.1:
// "search outward on the channel plane for the first non-blocked
// channel tile"). The side returned is the one dir points into.
func searchOutward(cm *channel.Model, rect grid.Rect, dir grid.Point, spacing int) (*channel.Channel, grid.Side) {
	const maxSteps = 256
	origin := cm.Plane().Origin()
	centrePt := grid.Point{X: (rect.XLo + rect.XHi) / 2, Y: (rect.YLo + rect.YHi) / 2}
	p := grid.Point{
		X: grid.SnapDown(centrePt.X, origin.X, spacing),
		Y: grid.SnapDown(centrePt.Y, origin.Y, spacing),
	}
	for i := 0; i < maxSteps; i++ {
		p = grid.Point{X: p.X + dir.X*spacing, Y: p.Y + dir.Y*spacing}
		t, ok := cm.Plane().Get(p)
		if ok && t.Type == grid.TileChannel && t.Channel != grid.ChannelNone {
			ch := cm.Channel(channel.ChannelID(t.Channel))
			return ch, entrySide(dir)
		}
	}
	return nil, 0
}

func entrySide(dir grid.Point) grid.Side {
	switch {
	case dir.Y > 0:
		return grid.Bottom // entering from the north means landing on the channel's bottom side
	case dir.Y < 0:
		return grid.Top
	case dir.X > 0:
		return grid.Left
	default:
		return grid.Right
	}
}

func axisExtent(rect grid.Rect, side grid.Side) (int, int) {
	if side == grid.Left || side == grid.Right {
		return rect.YLo, rect.YHi
	}
	return rect.XLo, rect.XHi
}

func originOnAxis(ch *channel.Channel, side grid.Side) int {
	if side == grid.Left || side == grid.Right {
		return ch.Rect.YLo
	}
	return ch.Rect.XLo
}

func lineToIndex(ch *channel.Channel, side grid.Side, line, spacing int) int {
	base := originOnAxis(ch, side)
	return (line-base)/spacing + 1
}

// tryStake attempts to claim pin (side, idx) of ch for loc, applying
// the staking rules of spec.md §4.3.1: unassigned and not already
// staked by an earlier TermLoc (mirroring rtrStemTryPin's gcr_pId
// check — Net alone stays NetUnassigned until global routing, so Seg
// is the only signal a stake already holds this pin), and a clean
// obstacle probe (or a single-layer conflict when maze stems are
// enabled). A pin at the outer edge of the whole channel-plane has no
// cross-channel Linked partner — that only disqualifies it as a
// mid-path crossing for the global router (astar.expand refuses to
// step past it), not as a stem's own starting pin, so staking doesn't
// require Linked here.
func tryStake(ch *channel.Channel, side grid.Side, idx int, loc *model.TermLoc, db model.Database, p Params, spacing int) bool {
	if idx < 1 || idx > ch.Sides[side].Len() {
		return false
	}
	pin := ch.Sides[side].At(idx)
	if pin.Net != channel.NetUnassigned || pin.Seg == channel.StemTip {
		return false
	}

	probe := grid.Rect{
		XLo: min2(loc.Rect.XLo, pin.Point.X) - p.MaxSeparation,
		YLo: min2(loc.Rect.YLo, pin.Point.Y) - p.MaxSeparation,
		XHi: max2(loc.Rect.XHi, pin.Point.X) + p.MaxSeparation,
		YHi: max2(loc.Rect.YHi, pin.Point.Y) + p.MaxSeparation,
	}
	var metalHit, polyHit bool
	db.ForEachTileInArea(probe, grid.TileObstacleMetal.Mask()|grid.TileObstaclePoly.Mask()|grid.TileObstacleBoth.Mask(), func(t grid.Tile) bool {
		switch t.Type {
		case grid.TileObstacleMetal:
			metalHit = true
		case grid.TileObstaclePoly:
			polyHit = true
		case grid.TileObstacleBoth:
			metalHit, polyHit = true, true
		}
		return true
	})
	if metalHit && polyHit {
		return false
	}
	if (metalHit || polyHit) && !p.MazeStems {
		return false
	}

	pin.Net = channel.NetUnassigned // stays unassigned until global routing stamps it
	pin.Seg = channel.StemTip
	loc.Staked = true
	loc.TipPoint = pin.Point
	loc.TipDir = side
	loc.Channel = int(ch.ID)
	loc.Pin = idx
	return true
}

// assignInternal implements the "Internal (river channel only)"
// branch of spec.md §4.3.1: pick the nearest routable grid line, try
// both opposite sides with the three-stage no-change/contact-at-pin/
// contact-at-both attempt order, falling back to the maze router.
func assignInternal(loc *model.TermLoc, ch *channel.Channel, cm *channel.Model, db model.Database, p Params, mz model.MazeRouter, spacing int) bool {
	var a, b grid.Side
	var axisLo, axisHi, base int
	if ch.Kind == channel.HRiver {
		a, b = grid.Left, grid.Right
		axisLo, axisHi = loc.Rect.YLo, loc.Rect.YHi
		base = ch.Rect.YLo
	} else {
		a, b = grid.Bottom, grid.Top
		axisLo, axisHi = loc.Rect.XLo, loc.Rect.XHi
		base = ch.Rect.XLo
	}
	line := grid.ContactLine(axisLo, axisHi, base, spacing, p.ContactWidth)
	idx := (line-base)/spacing + 1

	staked := false
	for _, side := range [2]grid.Side{a, b} {
		if tryStake(ch, side, idx, loc, db, p, spacing) {
			staked = true
			continue
		}
		// Stages (a)/(b)/(c) of spec.md §4.3.1 differ only in where a
		// contact is inserted, a paint-time decision (stem.Paint); at
		// assignment time every stage shares the same candidate pin, so
		// falling through to the maze-router probe is the only extra
		// step needed here when the direct stake fails.
		if mz != nil {
			if _, ok := mz.Route(ch.Rect, loc.TipPoint, grid.TileSpace.Mask(), side, false); ok {
				staked = true
			}
		}
	}
	return staked
}

func min2(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max2(a, b int) int {
	if a > b {
		return a
	}
	return b
}
