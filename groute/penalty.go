package groute

import "github.com/vlsirouter/drcore/channel"

// Penalties holds the eagerly-scaled cost coefficients of spec.md
// §4.4.4. Scaling by grid spacing happens once, in the root package's
// Config.derive (spec.md §9), not here — Penalties is handed
// pre-scaled values. Model resolves a Pin's owning Channel for the
// neighbour/orphan lookups, explicitly threaded rather than a package
// global (spec.md §9's "forbid hidden globals" note).
type Penalties struct {
	Channel  float64
	Jog      float64
	Obs1     float64
	Obs2     float64
	Hazard   float64
	Nbr1     float64
	Nbr2     float64
	Orphan   float64
	Infinity float64

	Model *channel.Model
}

// riverCrossingCost implements spec.md §4.4.4's "a river channel
// applies only the channel and jog penalties". A river crossing in
// this model always lands on the single pin directly opposite, which
// is by construction a straight run, so the jog penalty never applies
// here — kept as an explicit branch so a future river variant that
// permits an offset crossing has somewhere to add it.
func riverCrossingCost(from, to *channel.Pin, pen Penalties) float64 {
	cost := pen.Channel
	if from.Index != to.Index {
		cost += pen.Jog
	}
	return cost
}

// normalCrossingCost implements spec.md §4.4.4 for a crossing inside a
// normal channel: channel + jog + obstacle + hazard + neighbour +
// orphan penalties, or +Infinity if the crossing is forbidden.
func normalCrossingCost(from, to *channel.Pin, pen Penalties) float64 {
	if to.Obstacle == channel.ObstBoth {
		return pen.Infinity
	}

	cost := pen.Channel
	if !collinear(from, to) {
		cost += pen.Jog
	}
	if to.Obstacle != 0 {
		cost += pen.Obs1 + pen.Obs2*float64(to.ObstacleSize)
	}
	if to.HazardDist > 0 && to.ObstacleSize > to.HazardDist {
		cost += pen.Hazard * float64(to.ObstacleSize-to.HazardDist)
	}

	switch neighboursTaken(to, pen.Model) {
	case 1:
		cost += pen.Nbr1
	case 2:
		cost += pen.Nbr2
	}

	if isOrphanExit(to, pen.Model) {
		cost += pen.Orphan
	}

	return cost
}

// collinear reports whether crossing from `from` straight into `to`
// continues in the same direction the path was already travelling —
// approximated here as "the two pins share an axis", since our graph
// has no separate notion of heading.
func collinear(from, to *channel.Pin) bool {
	return from.Point.X == to.Point.X || from.Point.Y == to.Point.Y
}

// neighboursTaken counts how many of the immediately adjacent pins on
// to's side are already assigned to a net (spec.md §4.4.4's
// neighbour₁/neighbour₂ penalty).
func neighboursTaken(to *channel.Pin, m *channel.Model) int {
	ch := m.Channel(to.Channel)
	if ch == nil {
		return 0
	}
	pa := ch.Sides[to.Side]
	count := 0
	for _, i := range [2]int{to.Index - 1, to.Index + 1} {
		if i < 1 || i > pa.Len() {
			continue
		}
		if pa.At(i).Net != channel.NetUnassigned {
			count++
		}
	}
	return count
}

// isOrphanExit reports whether to's linked pin (the crossing partner
// in the next channel) has no free pin directly opposite it on its
// own side — an exit that the channel router would have to special-
// case (spec.md §4.4.4's orphan penalty).
func isOrphanExit(to *channel.Pin, m *channel.Model) bool {
	if to.Linked == nil {
		return false
	}
	farCh := m.Channel(to.Linked.Channel)
	if farCh == nil {
		return false
	}
	farPa := farCh.Sides[to.Linked.Side]
	if to.Linked.Index < 1 || to.Linked.Index > farPa.Len() {
		return false
	}
	far := farPa.At(to.Linked.Index)

	opp := far.Side.Opposite()
	oppPa := farCh.Sides[opp]
	if far.Index < 1 || far.Index > oppPa.Len() {
		return true
	}
	return oppPa.At(far.Index).Net != channel.NetUnassigned
}
