package gcr

import (
	"github.com/vlsirouter/drcore/channel"
	"github.com/vlsirouter/drcore/grid"
)

// MetalMax implements spec.md §4.5 step 3 / §4.6's column-pass note:
// column ("up") runs default to poly; a contiguous run that never
// crosses a metal-blocked cell is switched to metal (FlagVM) since
// doing so never adds a via and, when the run would otherwise have
// ended in a poly-to-metal via at a track boundary, removes one.
//
// The "adjacent channel accepts a metal crossing" condition of spec.md
// §4.5 is the stem/pin obstacle scan already performed before global
// routing (channel.Model.ScanObstacles): a pin with ObstMetal set
// already rejected a metal stem, so MetalMax additionally refuses to
// promote a run through such a pin's column.
func MetalMax(ch *channel.Channel) {
	for c := 0; c < ch.Length; c++ {
		col := ch.Result[c]
		pinBlocked := ch.Sides[grid.Bottom].At(c+1).Obstacle&channel.ObstMetal != 0 ||
			ch.Sides[grid.Top].At(c+1).Obstacle&channel.ObstMetal != 0
		r := 0
		for r < len(col) {
			if !col[r].Has(channel.FlagUp) {
				r++
				continue
			}
			start := r
			clean := !pinBlocked
			for r < len(col) && col[r].Has(channel.FlagUp) {
				if col[r].Has(channel.FlagBlkMetal) {
					clean = false
				}
				r++
			}
			if clean {
				for i := start; i < r; i++ {
					col[i] |= channel.FlagVM
				}
			}
		}
	}
}
