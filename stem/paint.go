package stem

import (
	"github.com/vlsirouter/drcore/channel"
	"github.com/vlsirouter/drcore/grid"
	"github.com/vlsirouter/drcore/model"
)

// Paint implements spec.md §4.3.2: after global and channel routing,
// every staked TermLoc whose pin actually carries a net gets its
// terminal-to-pin stem painted by paintStem as an L-shaped pair of
// rectangles, with a single contact at the bend when the terminal's
// layer and the pin's layer differ. No three-segment stem is painted
// and no contact is placed at either endpoint.
func Paint(nl *model.NetList, cm *channel.Model, db model.Database, p Params, mz model.MazeRouter, fb model.FeedbackSink) {
	for _, net := range nl.Nets {
		for ti := range net.Terms {
			term := &net.Terms[ti]
			for li := range term.Locs {
				loc := &term.Locs[li]
				if !loc.Staked {
					continue
				}
				ch := cm.Channel(channel.ChannelID(loc.Channel))
				if ch == nil {
					continue
				}
				pa := ch.Sides[loc.TipDir]
				if loc.Pin < 1 || loc.Pin > pa.Len() {
					continue
				}
				pin := pa.At(loc.Pin)
				if pin.Net == channel.NetUnassigned || pin.Net == channel.NetBlocked {
					continue // global/channel routing never claimed this stake; silently dropped
				}
				paintStem(loc, pin, ch, db, p, mz, fb)
			}
		}
	}
}

// paintStem paints the jog from a terminal's label rectangle out to
// its staked channel pin: a run along the terminal's native layer, an
// optional contact at the bend, and a run on the pin's layer into the
// channel boundary. Segment (1)/(2)/(3) of spec.md §4.3.2 collapse
// into this single L-shaped pair of rectangles since the bend point IS
// the contact-aligned grid line chosen at assignment time.
func paintStem(loc *model.TermLoc, pin *channel.Pin, ch *channel.Channel, db model.Database, p Params, mz model.MazeRouter, fb model.FeedbackSink) {
	termLayer := loc.Layer
	pinLayer := pinPreferredLayer(pin)

	bend := bendPoint(loc.Rect, pin.Point, loc.TipDir)

	leg1 := spanRect(centre(loc.Rect), bend, p.ContactWidth)
	leg2 := spanRect(bend, pin.Point, p.ContactWidth)

	if leg1.Empty() && leg2.Empty() {
		// No simple L-shape reaches both endpoints (e.g. the bend
		// degenerates); fall back to the maze router with write=true.
		if mz == nil {
			fb.Report(model.Feedback{Area: loc.Rect, Message: "stem has no simple route and no maze router is configured", Severity: model.SevError})
			return
		}
		if _, ok := mz.Route(ch.Rect, pin.Point, grid.TileSpace.Mask(), loc.TipDir, true); !ok {
			fb.Report(model.Feedback{Area: loc.Rect, Message: "maze-router fallback failed for stem", Severity: model.SevError})
		}
		return
	}

	if !leg1.Empty() {
		db.Paint(leg1, termLayer)
	}
	if !leg2.Empty() {
		db.Paint(leg2, pinLayer)
	}
	if termLayer != pinLayer {
		db.Paint(contactRect(bend, p.ContactWidth), model.LayerMetal)
	}
}

// pinPreferredLayer picks the layer the pin's crossing is not
// obstructed on, defaulting to metal (spec.md §4.3.2: "the layer(s)
// not blocked at the channel boundary pin").
func pinPreferredLayer(pin *channel.Pin) model.Layer {
	if pin.Obstacle&channel.ObstMetal != 0 && pin.Obstacle&channel.ObstPoly == 0 {
		return model.LayerPoly
	}
	return model.LayerMetal
}

func centre(r grid.Rect) grid.Point {
	return grid.Point{X: (r.XLo + r.XHi) / 2, Y: (r.YLo + r.YHi) / 2}
}

// bendPoint is the contact-aligned grid-line point the stem jogs
// through: it shares the terminal's axis on one coordinate and the
// pin's axis on the other, depending on which side the pin sits on.
func bendPoint(termRect grid.Rect, pinPoint grid.Point, side grid.Side) grid.Point {
	c := centre(termRect)
	if side == grid.Left || side == grid.Right {
		return grid.Point{X: c.X, Y: pinPoint.Y}
	}
	return grid.Point{X: pinPoint.X, Y: c.Y}
}

// spanRect returns the thin rectangle of half-width w/2 connecting a
// to b, axis-aligned (a and b always share exactly one coordinate by
// construction of bendPoint).
func spanRect(a, b grid.Point, width int) grid.Rect {
	half := width / 2
	if half < 1 {
		half = 1
	}
	if a.X == b.X {
		lo, hi := a.Y, b.Y
		if lo > hi {
			lo, hi = hi, lo
		}
		return grid.Rect{XLo: a.X - half, XHi: a.X + half, YLo: lo, YHi: hi}
	}
	lo, hi := a.X, b.X
	if lo > hi {
		lo, hi = hi, lo
	}
	return grid.Rect{XLo: lo, XHi: hi, YLo: a.Y - half, YHi: a.Y + half}
}

func contactRect(at grid.Point, width int) grid.Rect {
	half := width / 2
	if half < 1 {
		half = 1
	}
	return grid.Rect{XLo: at.X - half, XHi: at.X + half, YLo: at.Y - half, YHi: at.Y + half}
}
