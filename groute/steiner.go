package groute

import (
	"fmt"

	"github.com/vlsirouter/drcore/channel"
	"github.com/vlsirouter/drcore/model"
)

// Result is one net's outcome: the path points selected for each
// Term-to-Term segment, kept for crossing-adjustment and for tests;
// Ok is false when some Term of the net could not be reached.
type Result struct {
	Segments []*PathPoint
	Ok       bool
}

// RouteNet implements spec.md §4.4.2's Steiner-like multi-terminal
// algorithm: starting from every TermLoc of the net's first Term, grow
// a zero-cost set one Term at a time, each time running Search from
// every candidate TermLoc of the new Term and keeping the cheapest.
func RouteNet(cm *channel.Model, net *model.Net, pen Penalties, maxExpansions int, interrupt Interrupt, fb model.FeedbackSink) Result {
	if len(net.Terms) < 2 {
		return Result{Ok: true}
	}

	zeroCost := startSet(cm, &net.Terms[0])
	if len(zeroCost) == 0 {
		fb.Report(model.Feedback{Message: fmt.Sprintf("net %s: term %s has no staked location", net.Id, net.Terms[0].Id), Severity: model.SevError})
		return Result{Ok: false}
	}

	var result Result
	for ti := 1; ti < len(net.Terms); ti++ {
		term := &net.Terms[ti]

		var best *PathPoint

		for li := range term.Locs {
			loc := &term.Locs[li]
			if !loc.Staked {
				continue
			}
			destCh := cm.Channel(channel.ChannelID(loc.Channel))
			if destCh == nil {
				continue
			}
			destPin := destCh.Sides[loc.TipDir].At(loc.Pin)

			cand := Search(cm, zeroCost, channel.ChannelID(loc.Channel), destPin, pen, maxExpansions, interrupt)
			if cand != nil && (best == nil || cand.Cost < best.Cost) {
				best = cand
			}
		}

		if best == nil {
			fb.Report(model.Feedback{
				Message:  fmt.Sprintf("can't find a path from %s to %s", net.Terms[0].Id, term.Id),
				Severity: model.SevError,
			})
			return Result{Segments: result.Segments, Ok: false}
		}

		StampPath(best, net.Id, channel.SegId(ti), pen, fb)
		result.Segments = append(result.Segments, best)

		zeroCost = append(zeroCost, pathPins(best)...)
		for li := range term.Locs {
			if term.Locs[li].Staked {
				zeroCost = append(zeroCost, startPoint(cm, &term.Locs[li]))
			}
		}
	}

	result.Ok = true
	return result
}

// startSet builds the zero-cost starting points from every TermLoc of
// term that was successfully staked.
func startSet(cm *channel.Model, term *model.Term) []*PathPoint {
	var out []*PathPoint
	for li := range term.Locs {
		loc := &term.Locs[li]
		if !loc.Staked {
			continue
		}
		out = append(out, startPoint(cm, loc))
	}
	return out
}

func startPoint(cm *channel.Model, loc *model.TermLoc) *PathPoint {
	ch := cm.Channel(channel.ChannelID(loc.Channel))
	pin := ch.Sides[loc.TipDir].At(loc.Pin)
	return &PathPoint{Pin: pin, Channel: channel.ChannelID(loc.Channel), Cost: 0}
}

// pathPins flattens a PathPoint chain back to front, used to fold an
// entire selected path into the zero-cost set for the next Term
// (spec.md §4.4.2 step 2).
func pathPins(p *PathPoint) []*PathPoint {
	var out []*PathPoint
	for n := p; n != nil; n = n.Parent {
		out = append(out, &PathPoint{Pin: n.Pin, Channel: n.Channel, Cost: 0})
	}
	return out
}
