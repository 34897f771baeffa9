package groute

import (
	"fmt"

	"github.com/vlsirouter/drcore/channel"
	"github.com/vlsirouter/drcore/grid"
	"github.com/vlsirouter/drcore/model"
)

// StampPath implements spec.md §4.4.5: run the backward crossing-adjust
// pass over the path ending at point, then stamp every pin along the
// adjusted path with (net, segment-id), incrementing the segment id
// once per channel traversed so the channel router sees each crossing
// as an independent segment. Grounded on grouteCrss.c's glCrossAdjust
// (re-choosing the crossing) and glCrossMark (stamping pins and
// updating channel density). fb receives an ownership-mismatch error
// (spec.md §7: no silent failures) if any pin along the path was
// already claimed by a different net before this stamp reached it.
func StampPath(point *PathPoint, net model.NetId, baseSeg channel.SegId, pen Penalties, fb model.FeedbackSink) {
	chain := collectChain(point)
	adjustCrossings(chain, pen)

	seg := baseSeg + 1
	first := true
	var prevChannel channel.ChannelID
	for _, p := range chain {
		if p.Pin == nil {
			continue
		}
		if !first && p.Channel != prevChannel {
			seg++
		}
		first = false
		prevChannel = p.Channel
		stampPin(p, net, seg, pen, fb)
	}
}

// collectChain flattens the Parent-linked tree from the starting point
// to point, in start-to-goal order.
func collectChain(point *PathPoint) []*PathPoint {
	var rev []*PathPoint
	for p := point; p != nil; p = p.Parent {
		rev = append(rev, p)
	}
	for l, r := 0, len(rev)-1; l < r; l, r = l+1, r-1 {
		rev[l], rev[r] = rev[r], rev[l]
	}
	return rev
}

// adjustCrossings re-chooses the crossing pin at every intermediate
// channel of chain to locally minimise the penalty of the two segments
// it joins, constrained by the already-chosen neighbouring crossings.
// River channels keep their crossing fixed (straightness, spec.md
// §4.4.4): only Normal-channel crossings are candidates for the shift.
func adjustCrossings(chain []*PathPoint, pen Penalties) {
	if pen.Model == nil {
		return
	}
	const window = 2
	for i := 1; i < len(chain)-1; i++ {
		p := chain[i]
		if p.Pin == nil {
			continue
		}
		ch := pen.Model.Channel(p.Pin.Channel)
		if ch == nil || ch.Kind != channel.Normal {
			continue
		}
		pa := ch.Sides[p.Pin.Side]

		best := p.Pin
		bestCost := localCost(chain[i-1].Pin, best, chain[i+1].Pin, pen)
		for d := -window; d <= window; d++ {
			if d == 0 {
				continue
			}
			idx := p.Pin.Index + d
			if idx < 1 || idx > pa.Len() {
				continue
			}
			cand := pa.At(idx)
			if !cand.Usable() {
				continue
			}
			cost := localCost(chain[i-1].Pin, cand, chain[i+1].Pin, pen)
			if cost < bestCost {
				bestCost = cost
				best = cand
			}
		}
		p.Pin = best
	}
}

func localCost(from, mid, to *channel.Pin, pen Penalties) float64 {
	return normalCrossingCost(from, mid, pen) + normalCrossingCost(mid, to, pen)
}

// stampPin assigns net/seg to a single crossing pin, unlinks it from
// its side's usable list and increments that channel's DensityCol or
// DensityRow entry (gcr.Sweep later recomputes both). A pin already
// stamped by an earlier segment of this same net's path is left
// alone; a pin claimed by a *different* net means two nets raced for
// the same crossing (Search's destination check should have prevented
// reaching here as a destination, but an intermediate crossing picked
// by adjustCrossings can still collide) — that is reported to fb
// rather than silently dropped (spec.md §7).
func stampPin(p *PathPoint, net model.NetId, seg channel.SegId, pen Penalties, fb model.FeedbackSink) {
	pin := p.Pin
	if pin.Net != channel.NetUnassigned {
		if pin.Net != net && fb != nil {
			fb.Report(model.Feedback{
				Area:     grid.Rect{XLo: pin.Point.X, YLo: pin.Point.Y, XHi: pin.Point.X, YHi: pin.Point.Y},
				Message:  fmt.Sprintf("channel %d: net %s collided with net %s already staked at pin %d", pin.Channel, net, pin.Net, pin.Index),
				Severity: model.SevError,
			})
		}
		return
	}
	pin.Net = net
	pin.Seg = seg

	ch := pen.Model.Channel(pin.Channel)
	if ch == nil {
		return
	}
	// A pin with no cross-channel Linked partner (a stem anchor at the
	// outer edge of the channel plane) was never threaded into the
	// usable list in the first place — unlinking it here would corrupt
	// the sentinel rather than remove a member.
	if pin.Linked != nil {
		ch.Sides[pin.Side].Unlink(pin.Index)
	}
	bumpDensity(ch, pin)
}

func bumpDensity(ch *channel.Channel, pin *channel.Pin) {
	switch pin.Side {
	case grid.Bottom, grid.Top:
		if pin.Index-1 < len(ch.DensityCol) {
			ch.DensityCol[pin.Index-1]++
		}
	case grid.Left, grid.Right:
		if pin.Index-1 < len(ch.DensityRow) {
			ch.DensityRow[pin.Index-1]++
		}
	}
}
