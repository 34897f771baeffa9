package gcr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlsirouter/drcore/channel"
	"github.com/vlsirouter/drcore/grid"
	"github.com/vlsirouter/drcore/model"
)

type sink struct{ records []model.Feedback }

func (s *sink) Report(fb model.Feedback) { s.records = append(s.records, fb) }

func newTestChannel(t *testing.T, length, width int) *channel.Model {
	t.Helper()
	cm := channel.NewModel(grid.Point{}, 8)
	_, err := cm.DefineChannel(channel.Normal, grid.Rect{XLo: 0, YLo: 0, XHi: length * 8, YHi: width * 8})
	require.NoError(t, err)
	cm.InitLinkedPins()
	cm.BuildUsableLists()
	return cm
}

func TestSweepConnectsBottomToTopOnASharedColumn(t *testing.T) {
	cm := newTestChannel(t, 4, 3)
	ch := cm.Channel(0)

	ch.Sides[grid.Bottom].At(2).Net = "n1"
	ch.Sides[grid.Top].At(2).Net = "n1"

	fb := &sink{}
	errs := Sweep(ch, Params{}, fb)

	require.Zero(t, errs)
	require.Empty(t, fb.records)
	// every track between the assigned track and both boundaries must
	// carry an up-going wire at column 2
	col := ch.Result[1]
	for row, f := range col {
		require.True(t, f.Has(channel.FlagUp), "row %d", row)
	}
}

func TestSweepReportsErrorWhenNoTrackIsFree(t *testing.T) {
	cm := newTestChannel(t, 2, 1)
	ch := cm.Channel(0)

	ch.Sides[grid.Left].At(1).Net = "occupant"
	ch.Sides[grid.Right].At(1).Net = "occupant"
	ch.Sides[grid.Bottom].At(1).Net = "n1" // the only track is already taken

	fb := &sink{}
	errs := Sweep(ch, Params{}, fb)

	require.Equal(t, 1, errs)
	require.Len(t, fb.records, 1)
	require.Equal(t, model.SevError, fb.records[0].Severity)
}

func TestSweepReportsErrorWhenNetNeverReachesRightEdge(t *testing.T) {
	cm := newTestChannel(t, 3, 1)
	ch := cm.Channel(0)

	ch.Sides[grid.Left].At(1).Net = "n1"
	// no right pin set for n1: the track stays live past the last column

	fb := &sink{}
	errs := Sweep(ch, Params{}, fb)

	require.Equal(t, 1, errs)
}

// TestSweepReshapesOntoAnUnblockedTrackWhenForced exercises spec.md
// §4.5 step 2d: a track blocked on both layers ahead forces its net
// onto a different, unblocked track rather than stalling, with the
// jog painted in the column where the move happens.
func TestSweepReshapesOntoAnUnblockedTrackWhenForced(t *testing.T) {
	cm := newTestChannel(t, 3, 2)
	ch := cm.Channel(0)

	ch.Sides[grid.Left].At(1).Net = "n1"
	ch.Sides[grid.Right].At(2).Net = "n1"
	ch.Result[1][0] = channel.FlagBlkMetal | channel.FlagBlkPoly // track 1 blocked at column 2

	fb := &sink{}
	errs := Sweep(ch, Params{}, fb)

	require.Zero(t, errs, "%v", fb.records)
	require.True(t, ch.Result[0][0].Has(channel.FlagVacateTrack), "the vacated row is marked at the reshape column")
	require.True(t, ch.Result[0][0].Has(channel.FlagUp), "the jog between old and new track is painted")
	require.True(t, ch.Result[0][1].Has(channel.FlagUp))
	require.True(t, ch.Result[0][1].Has(channel.FlagRight), "the net continues rightward on its new track")
	require.True(t, ch.Result[1][1].Has(channel.FlagRight))
}

// TestClaimTrackPrefersRightEdgeTrackNearChannelEnd exercises spec.md
// §4.5 step 2e: within the configured end zone, a fresh claim aligns
// directly with the net's right-edge track instead of the nearest
// free track to side, avoiding an otherwise-unnecessary jog.
func TestClaimTrackPrefersRightEdgeTrackNearChannelEnd(t *testing.T) {
	cm := newTestChannel(t, 5, 3)
	ch := cm.Channel(0)
	ch.Sides[grid.Right].At(3).Net = "n1"

	st := newSweepState(ch, Params{EndConst: 2})
	track := st.claimTrack(ch, 4, grid.Bottom, "n1") // column 4 of 5: 1 column from the end

	require.Equal(t, 3, track)
}

// TestClaimTrackFallsBackOutsideEndZone is the control for the above:
// away from the channel end, claimTrack ignores the right-edge track
// and picks the nearest free track to side instead.
func TestClaimTrackFallsBackOutsideEndZone(t *testing.T) {
	cm := newTestChannel(t, 5, 3)
	ch := cm.Channel(0)
	ch.Sides[grid.Right].At(3).Net = "n1"

	st := newSweepState(ch, Params{EndConst: 2})
	track := st.claimTrack(ch, 1, grid.Bottom, "n1") // column 1 of 5: well outside the end zone

	require.Equal(t, 1, track)
}

func TestMetalMaxPromotesCleanUpRuns(t *testing.T) {
	cm := newTestChannel(t, 1, 4)
	ch := cm.Channel(0)
	ch.Result[0][0] = channel.FlagUp
	ch.Result[0][1] = channel.FlagUp
	ch.Result[0][3] = channel.FlagUp | channel.FlagBlkMetal

	MetalMax(ch)

	require.True(t, ch.Result[0][0].Has(channel.FlagVM))
	require.True(t, ch.Result[0][1].Has(channel.FlagVM))
	require.False(t, ch.Result[0][3].Has(channel.FlagVM), "a run crossing a metal-blocked cell is never promoted")
}
