package paintback

import "github.com/vlsirouter/drcore/channel"

// ViaMinimize implements spec.md §4.6's via-minimisation pass: a
// layer-swap sweep over every row run, followed by the final dangling-
// via cleanup. It returns the total number of vias the pass removed or
// avoided reintroducing.
//
// Column runs have nothing left to swap here: gcr.MetalMax (spec.md
// §4.5 step 3) already promotes every poly column run that can safely
// become metal before ViaMinimize ever runs, so the only layer
// freedom this pass can still spend belongs to the row pass — metal
// by default, switched to poly (FlagPM) either to remove a via at one
// of the run's ends or, per spec.md's via_limit clause, to reclaim a
// run at least viaLimit columns long even when no via is removed.
func ViaMinimize(ch *channel.Channel, viaLimit int) int {
	removed := sweepDanglingVias(ch)
	removed += swapRowRunsToPoly(ch, viaLimit)
	removed += sweepDanglingVias(ch)
	return removed
}

// swapRowRunsToPoly implements spec.md §4.6's layer-swap rule: a row
// run not forced metal-only by a poly obstacle is converted to poly
// (FlagPM, read by paintback's row pass) when that removes a via at
// either end, or when the run is at least viaLimit columns long, is
// not blocked on metal, and the swap introduces no new via at either
// end (neither end meets a metal-maximised FlagVM column run).
func swapRowRunsToPoly(ch *channel.Channel, viaLimit int) int {
	swapped := 0
	for track := 1; track <= ch.Width; track++ {
		col := 1
		for col <= ch.Length {
			if !ch.Result[col-1][track-1].Has(channel.FlagRight) {
				col++
				continue
			}
			start := col
			blockedMetal, blockedPoly := false, false
			for col <= ch.Length && ch.Result[col-1][track-1].Has(channel.FlagRight) {
				f := ch.Result[col-1][track-1]
				if f.Has(channel.FlagBlkMetal) {
					blockedMetal = true
				}
				if f.Has(channel.FlagBlkPoly) {
					blockedPoly = true
				}
				col++
			}
			end := col - 1 // run covers columns start..end inclusive

			if blockedPoly {
				continue // can't swap to poly here regardless of via savings
			}

			removesVia := polyLandsAt(ch, start, track) || polyLandsAt(ch, end, track)
			metalLandsAt := func(c int) bool {
				f := ch.Result[c-1][track-1]
				return f.Has(channel.FlagUp) && f.Has(channel.FlagVM)
			}
			reclaims := viaLimit > 0 && end-start+1 >= viaLimit && !blockedMetal &&
				!metalLandsAt(start) && !metalLandsAt(end)
			if !removesVia && !reclaims {
				continue
			}

			for c := start; c <= end; c++ {
				ch.Result[c-1][track-1] |= channel.FlagPM
			}
			if removesVia {
				swapped++
			}
		}
	}
	return swapped
}

// polyLandsAt reports whether (col, track) carries a vertical-run cell
// that paints poly (Up-flagged, not metal-maximised) — the signal that
// a row run ending there currently needs a via to meet it, and that
// swapping the row to poly would remove that via instead of merely
// relocating it.
func polyLandsAt(ch *channel.Channel, col, track int) bool {
	f := ch.Result[col-1][track-1]
	return f.Has(channel.FlagUp) && !f.Has(channel.FlagVM)
}

// sweepDanglingVias implements spec.md §4.6's final sweep: a contact
// mark is only meaningful if some wire — its own up/right run, or a
// run arriving from the column to its left — actually passes through
// it; a contact with no abutting wire in any direction is dangling and
// is cleared.
func sweepDanglingVias(ch *channel.Channel) int {
	removed := 0
	for c := range ch.Result {
		for r := range ch.Result[c] {
			f := ch.Result[c][r]
			if !f.Has(channel.FlagContact) {
				continue
			}
			upHere := f.Has(channel.FlagUp)
			rightHere := f.Has(channel.FlagRight)
			rightFromLeft := c > 0 && ch.Result[c-1][r].Has(channel.FlagRight)
			if !upHere && !rightHere && !rightFromLeft {
				ch.Result[c][r] &^= channel.FlagContact
				removed++
			}
		}
	}
	return removed
}
