package channel

import (
	"github.com/vlsirouter/drcore/grid"
	"github.com/vlsirouter/drcore/model"
)

// SegId names a net segment within a channel; segment ids are scoped
// to one net and incremented per channel crossing (spec.md §4.4.5).
type SegId int

// StemTip marks a pin staked by the stem generator as a terminal
// endpoint, not yet part of a real route (spec.md §3).
const StemTip SegId = -1

// Net-id sentinels for Pin.Net (spec.md §3). NetBlocked is distinct
// from any real model.NetId a netlist can produce.
const (
	NetUnassigned model.NetId = ""
	NetBlocked    model.NetId = "\x00blocked\x00"
)

// ObstacleFlag records which routing layer(s) a pin's stem corridor is
// obstructed on (spec.md §4.2 step 2).
type ObstacleFlag uint8

const (
	ObstMetal ObstacleFlag = 1 << iota
	ObstPoly
)

const ObstBoth = ObstMetal | ObstPoly

// PinRef names a pin by its owning channel, side and grid index,
// avoiding a pointer cycle (spec.md §9).
type PinRef struct {
	Channel ChannelID
	Side    grid.Side
	Index   int
}

// Pin is one crossing point on a channel boundary (spec.md §3).
type Pin struct {
	Point   grid.Point
	Channel ChannelID
	Side    grid.Side
	Index   int

	// Linked is the pin in the adjacent channel sharing this crossing
	// point, or nil if none (exiting a river channel illegally, or the
	// boundary of the whole route cell).
	Linked *PinRef

	Net model.NetId
	Seg SegId

	Obstacle     ObstacleFlag
	ObstacleSize int
	HazardDist   int

	// listPrev/listNext thread the per-side usable-pin doubly linked
	// list (spec.md §4.2 step 7); index 0 is the sentinel head/tail.
	listPrev, listNext int
}

// Blocked reports whether the pin is marked unusable.
func (p *Pin) Blocked() bool { return p.Net == NetBlocked }

// Usable reports whether p is currently eligible for the global
// router: unassigned, linked, and not already staked as a stem tip.
func (p *Pin) Usable() bool {
	return p.Net == NetUnassigned && p.Linked != nil && p.Seg != StemTip
}

// PinArray is one channel side's pin list, indexed 1..=Len(); index 0
// and Len()+1 are sentinel-only (spec.md §3).
type PinArray struct {
	Side grid.Side
	Pins []Pin
}

// Len returns the number of real (non-sentinel) pins on the side.
func (pa *PinArray) Len() int { return len(pa.Pins) - 2 }

// At returns a pointer to pin index i (1..=Len()).
func (pa *PinArray) At(i int) *Pin { return &pa.Pins[i] }

// FirstUsable returns the grid index of the first usable pin in
// ascending grid order, or 0 if the list is empty.
func (pa *PinArray) FirstUsable() int { return pa.Pins[0].listNext }

// Next returns the grid index of the next usable pin after i in the
// usable list, or 0 at the end.
func (pa *PinArray) Next(i int) int { return pa.Pins[i].listNext }

// Unlink removes pin i from the usable list in O(1), the contract the
// channel router relies on when it assigns a pin to a net (spec.md
// §4.2).
func (pa *PinArray) Unlink(i int) {
	p := &pa.Pins[i]
	pa.Pins[p.listPrev].listNext = p.listNext
	pa.Pins[p.listNext].listPrev = p.listPrev
	p.listPrev, p.listNext = 0, 0
}

// rebuildUsableList walks 1..Len() in grid order and threads every
// usable pin into the doubly linked list headed by the index-0
// sentinel (spec.md §4.2 step 7).
func (pa *PinArray) rebuildUsableList() {
	prev := 0
	pa.Pins[0].listNext, pa.Pins[0].listPrev = 0, 0
	for i := 1; i <= pa.Len(); i++ {
		p := &pa.Pins[i]
		if !p.Usable() {
			continue
		}
		pa.Pins[prev].listNext = i
		p.listPrev = prev
		prev = i
	}
	pa.Pins[prev].listNext = 0
	pa.Pins[0].listPrev = prev
}
