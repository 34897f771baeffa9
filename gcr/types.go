// Package gcr implements the channel (greedy) router of spec.md §4.5:
// a single left-to-right column sweep over a channel whose boundary
// pins are already stamped with net/segment ids, producing the
// length x width result bitset. Grounded on
// _examples/original_source/gcr/gcr.h and gcrInit.c (Rivest's greedy
// router): GCRPin/GCRNet's doubly-linked pin and track chains are
// translated to the channel package's slice-indexed pin arrays and an
// arena-indexed track table, and the Is1stPin/IsLstPin end-of-net
// tests become a precomputed per-net column chain (spec.md §9).
package gcr

import (
	"github.com/vlsirouter/drcore/channel"
	"github.com/vlsirouter/drcore/grid"
	"github.com/vlsirouter/drcore/model"
)

// Params holds the sweep's configurable thresholds (spec.md §4.5 steps
// 2d/2e), both carried straight from Config since gcr has no reason to
// duplicate their defaults.
type Params struct {
	// EndConst sets the width, in columns, of the near-end bias zone
	// at the right-hand side of the channel (gcr.h's GCRNearEnd test).
	EndConst int
	// MinJog is the shortest reshape jog the split-or-reshape step
	// will choose when a longer one is available, to avoid degenerate
	// zig-zags (spec.md §4.5 step 2d).
	MinJog int
}

// trackState is one entry of the working column: which net currently
// occupies the track, and whether that net still has a pin further
// to the right (so the track must stay reserved) or has reached its
// last connection (so the track should be freed once painted).
type trackState struct {
	net  model.NetId
	live bool
}

// netChain records, per net, the sorted columns at which it appears on
// the channel's top or bottom boundary — a slice-indexed stand-in for
// GCRNet's gcr_lPin/gcr_rPin doubly-linked pin chain, built once per
// sweep instead of walked pointer-by-pointer.
type netChain struct {
	cols map[model.NetId][]int
}

func buildNetChain(ch *channel.Channel) *netChain {
	nc := &netChain{cols: make(map[model.NetId][]int)}
	for col := 1; col <= ch.Length; col++ {
		for _, side := range [2]grid.Side{grid.Bottom, grid.Top} {
			net := ch.Sides[side].At(col).Net
			if net == channel.NetUnassigned || net == channel.NetBlocked {
				continue
			}
			cs := nc.cols[net]
			if len(cs) == 0 || cs[len(cs)-1] != col {
				nc.cols[net] = append(cs, col)
			}
		}
	}
	return nc
}

// isFirstPin is the gcr.h Is1stPin test: col is net's first boundary
// appearance, so claiming a track for it needs no left-side
// bookkeeping.
func (nc *netChain) isFirstPin(net model.NetId, col int) bool {
	cs := nc.cols[net]
	return len(cs) > 0 && cs[0] == col
}

// isLastPin is the gcr.h IsLstPin test: col is net's last boundary
// appearance, so the track it occupies is freed once this column's
// connection is painted.
func (nc *netChain) isLastPin(net model.NetId, col int) bool {
	cs := nc.cols[net]
	return len(cs) > 0 && cs[len(cs)-1] == col
}

// sweepState holds the column-sweep's working storage: one trackState
// per track (1..Width), indexed the same as channel.PinArray (0 and
// Width+1 are unused sentinels, kept only so track-index arithmetic
// never needs a -1), plus the precomputed net pin-chain and the
// configured thresholds.
type sweepState struct {
	ch     *channel.Channel
	tracks []trackState
	chain  *netChain
	params Params
	errs   int
}

func newSweepState(ch *channel.Channel, p Params) *sweepState {
	return &sweepState{
		ch:     ch,
		tracks: make([]trackState, ch.Width+2),
		chain:  buildNetChain(ch),
		params: p,
	}
}

// fullyBlocked reports whether track is blocked on both layers at col
// (gcr.h's GCRBLKM|GCRBLKP), making it unusable for any new claim or
// continuation there regardless of which layer the wire would use.
func fullyBlocked(ch *channel.Channel, col, track int) bool {
	f := ch.Result[col-1][track-1]
	return f.Has(channel.FlagBlkMetal) && f.Has(channel.FlagBlkPoly)
}

// withinEndZone reports whether col falls inside the near-end bias
// zone at the channel's right edge (spec.md §4.5 step 2e).
func withinEndZone(ch *channel.Channel, col, endConst int) bool {
	zone := endConst
	if zone < 1 {
		zone = 1
	}
	return ch.Length-col < zone
}
