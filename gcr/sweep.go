package gcr

import (
	"fmt"

	"github.com/vlsirouter/drcore/channel"
	"github.com/vlsirouter/drcore/grid"
	"github.com/vlsirouter/drcore/model"
)

// Sweep implements spec.md §4.5's single left-to-right column sweep.
// ch's boundary pins must already carry net/segment ids (the output of
// groute.RouteNet and stem.Assign); Sweep fills ch.Result in place and
// returns the number of routing errors it recorded to fb. It never
// aborts early: a failure to complete one net's connection is reported
// and the sweep continues (spec.md §4.5's failure semantics).
func Sweep(ch *channel.Channel, p Params, fb model.FeedbackSink) int {
	st := newSweepState(ch, p)
	initDensity(ch)
	seedFromLeft(st, ch, fb)

	for col := 1; col <= ch.Length; col++ {
		intakeColumn(st, ch, col, fb)
		collapseAdjacent(st, ch, col)
		reshapeIfBlocked(st, ch, col, fb)
		propagateRight(st, ch, col)
	}

	finishAtRight(st, ch, fb)
	return st.errs
}

// initDensity overwrites the density profile: DensityCol[c] is the
// number of column c+1's bottom and top pins (0, 1 or 2) whose net is
// not NetUnassigned, NetBlocked pins included, and DensityRow[r] counts
// track r+1's left and right pins the same way. It is a per-pin count,
// not the number of nets crossing the column or row, and the sweep
// itself does not read it; it is exposed for the channel router's
// callers to inspect, e.g. for congestion diagnostics.
func initDensity(ch *channel.Channel) {
	for c := 1; c <= ch.Length; c++ {
		n := 0
		if ch.Sides[grid.Bottom].At(c).Net != channel.NetUnassigned {
			n++
		}
		if ch.Sides[grid.Top].At(c).Net != channel.NetUnassigned {
			n++
		}
		ch.DensityCol[c-1] = n
	}
	for r := 1; r <= ch.Width; r++ {
		n := 0
		if ch.Sides[grid.Left].At(r).Net != channel.NetUnassigned {
			n++
		}
		if ch.Sides[grid.Right].At(r).Net != channel.NetUnassigned {
			n++
		}
		ch.DensityRow[r-1] = n
	}
}

// seedFromLeft occupies every track whose left-edge pin already
// carries a net, the sweep's initial condition (spec.md §4.5 step 1).
func seedFromLeft(st *sweepState, ch *channel.Channel, fb model.FeedbackSink) {
	left := ch.Sides[grid.Left]
	for t := 1; t <= ch.Width; t++ {
		net := left.At(t).Net
		if net == channel.NetUnassigned || net == channel.NetBlocked {
			continue
		}
		st.tracks[t] = trackState{net: net, live: true}
	}
}

// intakeColumn implements step 2a/2b: bring in this column's top and
// bottom pins, assigning or confirming the track each belongs to and
// painting the vertical stub that connects the track to the boundary.
// A column whose bottom and top pins name the same net is a straight
// feed-through: it is connected as a single span rather than as two
// independent boundary connections, so the two pins don't race each
// other for a track.
func intakeColumn(st *sweepState, ch *channel.Channel, col int, fb model.FeedbackSink) {
	bottom, top := ch.Sides[grid.Bottom].At(col), ch.Sides[grid.Top].At(col)
	bn, tn := bottom.Net, top.Net
	if bn != channel.NetUnassigned && bn != channel.NetBlocked && bn == tn {
		connectThrough(st, ch, col, bn)
		return
	}
	if bn != channel.NetUnassigned && bn != channel.NetBlocked {
		connectBoundary(st, ch, col, grid.Bottom, bn, fb)
	}
	if tn != channel.NetUnassigned && tn != channel.NetBlocked {
		connectBoundary(st, ch, col, grid.Top, tn, fb)
	}
}

// connectThrough implements the feed-through case: net occupies (or
// claims) one track and runs the full width of the column, no contact
// needed since no layer change happens at either boundary.
func connectThrough(st *sweepState, ch *channel.Channel, col int, net model.NetId) {
	track := st.findTrack(net)
	if track == 0 {
		track = st.claimTrack(ch, col, grid.Bottom, net)
		if track == 0 {
			return
		}
	}
	for r := 1; r <= ch.Width; r++ {
		ch.Result[col-1][r-1] |= channel.FlagUp
	}
	if st.chain.isLastPin(net, col) {
		st.tracks[track] = trackState{}
	}
}

// connectBoundary assigns net to a track at col (reusing one it
// already occupies, or claiming a free one — biased near the channel
// end, otherwise nearest to side) and paints the vertical run joining
// them, marking the track free again once this was its last column
// (spec.md §4.5 steps 2b/2c: "raise connections" and "collapse nets"
// — collapse itself is collapseAdjacent, run once per column after
// every pin has been brought in).
func connectBoundary(st *sweepState, ch *channel.Channel, col int, side grid.Side, net model.NetId, fb model.FeedbackSink) {
	track := st.findTrack(net)
	if track == 0 {
		track = st.claimTrack(ch, col, side, net)
		if track == 0 {
			if fb != nil {
				fb.Report(model.Feedback{
					Area:     grid.Rect{XLo: col, YLo: col, XHi: col, YHi: col},
					Message:  fmt.Sprintf("channel %d: no free track for net %s at column %d", ch.ID, net, col),
					Severity: model.SevError,
				})
			}
			st.errs++
			return
		}
	}

	paintVerticalStub(ch, col, track, side)

	if st.chain.isLastPin(net, col) {
		st.tracks[track] = trackState{}
	}
}

// collapseAdjacent implements spec.md §4.5 step 2c: if the same net
// ends up live on two adjacent tracks after this column's intake,
// merge them by painting the vertical run that joins them and freeing
// the lower track, so the net continues on the higher one (a run of
// three or more adjacent tracks therefore collapses upward in one
// pass), the gcr.h collapse operation generalized to this
// one-chain-per-net model. Two live tracks for one net arise when
// seedFromLeft seeds it from more than one left-edge pin.
func collapseAdjacent(st *sweepState, ch *channel.Channel, col int) {
	for t := 1; t < ch.Width; t++ {
		a, b := st.tracks[t], st.tracks[t+1]
		if !a.live || !b.live || a.net != b.net {
			continue
		}
		ch.Result[col-1][t-1] |= channel.FlagUp
		st.tracks[t] = trackState{}
	}
}

// reshapeIfBlocked implements spec.md §4.5 step 2d: a live track whose
// next column is blocked on both layers cannot continue straight
// through, so its net is moved onto the nearest unblocked free track,
// subject to params.MinJog, and the jog between the two rows is
// painted in the current column (FlagVacateTrack marks the row the
// net is leaving). A net with no unblocked track to move to is left
// live; propagateRight will carry it rightward regardless and
// finishAtRight will report it if it never reaches its right-edge pin.
func reshapeIfBlocked(st *sweepState, ch *channel.Channel, col int, fb model.FeedbackSink) {
	if col >= ch.Length {
		return
	}
	for t := 1; t <= ch.Width; t++ {
		ts := st.tracks[t]
		if !ts.live || !fullyBlocked(ch, col+1, t) {
			continue
		}
		nt := st.nearestUnblockedTrack(ch, col+1, t, st.params.MinJog)
		if nt == 0 {
			continue
		}

		lo, hi := t, nt
		if lo > hi {
			lo, hi = hi, lo
		}
		for r := lo; r <= hi; r++ {
			ch.Result[col-1][r-1] |= channel.FlagUp
		}
		ch.Result[col-1][t-1] |= channel.FlagVacateTrack

		st.tracks[nt] = ts
		st.tracks[t] = trackState{}
	}
}

// paintVerticalStub marks the cells between track and the channel
// boundary (rows 1..track for Bottom, rows track..Width for Top) as
// carrying an up-going wire, and marks the track's own cell as a
// contact (spec.md §4.5's Emit step; the exact layer is decided later
// by paintback's column pass).
func paintVerticalStub(ch *channel.Channel, col, track int, side grid.Side) {
	lo, hi := 1, track
	if side == grid.Top {
		lo, hi = track, ch.Width
	}
	for r := lo; r <= hi; r++ {
		ch.Result[col-1][r-1] |= channel.FlagUp
	}
	ch.Result[col-1][track-1] |= channel.FlagContact
}

// propagateRight implements step 2b's horizontal continuation: every
// track still live after col's intake, and still needed at a later
// column, carries its wire rightward into col+1.
func propagateRight(st *sweepState, ch *channel.Channel, col int) {
	if col >= ch.Length {
		return
	}
	for t := 1; t <= ch.Width; t++ {
		if st.tracks[t].live {
			ch.Result[col-1][t-1] |= channel.FlagRight
		}
	}
}

// finishAtRight implements the channel's right edge: a track still
// live after the last column must match that track's right-pin net,
// or the net never reached its final connection.
func finishAtRight(st *sweepState, ch *channel.Channel, fb model.FeedbackSink) {
	right := ch.Sides[grid.Right]
	for t := 1; t <= ch.Width; t++ {
		ts := st.tracks[t]
		if !ts.live {
			continue
		}
		if right.At(t).Net == ts.net {
			continue
		}
		if fb != nil {
			fb.Report(model.Feedback{
				Area:     grid.Rect{XLo: ch.Length, YLo: t, XHi: ch.Length, YHi: t},
				Message:  fmt.Sprintf("channel %d: net %s never reached a right-edge connection", ch.ID, ts.net),
				Severity: model.SevError,
			})
		}
		st.errs++
	}
}

// findTrack returns the track already occupied by net, or 0.
func (st *sweepState) findTrack(net model.NetId) int {
	for t := 1; t <= len(st.tracks)-2; t++ {
		if st.tracks[t].live && st.tracks[t].net == net {
			return t
		}
	}
	return 0
}

// claimTrack picks and occupies a fresh track for net at col: within
// the near-end bias zone (spec.md §4.5 step 2e), it prefers the track
// already aligned with net's right-edge pin so the end connection
// needs no further jog; otherwise it falls back to the free track
// nearest side. Either way the chosen track must not be blocked on
// both layers at col. Returns 0 if no such track exists.
func (st *sweepState) claimTrack(ch *channel.Channel, col int, side grid.Side, net model.NetId) int {
	if withinEndZone(ch, col, st.params.EndConst) {
		if want := st.rightPinTrack(ch, net); want != 0 && !st.tracks[want].live && !fullyBlocked(ch, col, want) {
			st.tracks[want] = trackState{net: net, live: true}
			return want
		}
	}
	free := st.nearestFreeTrack(ch, col, side)
	if free == 0 {
		return 0
	}
	st.tracks[free] = trackState{net: net, live: true}
	return free
}

// rightPinTrack returns the track index matching net's right-edge pin,
// or 0 if net has none — the near-end bias target of spec.md §4.5 step
// 2e.
func (st *sweepState) rightPinTrack(ch *channel.Channel, net model.NetId) int {
	right := ch.Sides[grid.Right]
	for t := 1; t <= right.Len(); t++ {
		if right.At(t).Net == net {
			return t
		}
	}
	return 0
}

// nearestFreeTrack returns the free, unblocked-at-col track closest to
// side (the lowest free track for Bottom, highest for Top), or 0 if
// none qualifies.
func (st *sweepState) nearestFreeTrack(ch *channel.Channel, col int, side grid.Side) int {
	width := len(st.tracks) - 2
	if side == grid.Bottom {
		for t := 1; t <= width; t++ {
			if !st.tracks[t].live && !fullyBlocked(ch, col, t) {
				return t
			}
		}
		return 0
	}
	for t := width; t >= 1; t-- {
		if !st.tracks[t].live && !fullyBlocked(ch, col, t) {
			return t
		}
	}
	return 0
}

// nearestUnblockedTrack returns the free, unblocked-at-col track
// closest to from subject to a minimum jog of minJog rows (spec.md
// §4.5 step 2d: avoid degenerate zig-zags); if no candidate meets
// minJog, the single nearest candidate of any distance is used
// instead, since reaching an unblocked track at all takes priority
// over the jog-length preference. Returns 0 if no track qualifies.
func (st *sweepState) nearestUnblockedTrack(ch *channel.Channel, col, from, minJog int) int {
	width := len(st.tracks) - 2
	best, bestDist := 0, width+1
	fallback, fallbackDist := 0, width+1
	for t := 1; t <= width; t++ {
		if st.tracks[t].live || fullyBlocked(ch, col, t) {
			continue
		}
		d := from - t
		if d < 0 {
			d = -d
		}
		if d < fallbackDist {
			fallback, fallbackDist = t, d
		}
		if d >= minJog && d < bestDist {
			best, bestDist = t, d
		}
	}
	if best != 0 {
		return best
	}
	return fallback
}
