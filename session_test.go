package drcore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlsirouter/drcore/channel"
	"github.com/vlsirouter/drcore/grid"
	"github.com/vlsirouter/drcore/model"
)

// TestRouteCellSingleCrossing exercises end-to-end scenario 1: a
// single normal channel with one net whose two terminals sit just
// outside its left and right edges. RouteCell should stake both,
// connect them with a single wire run (no intervening crossing, so
// both ends share one segment id), and sweep that run into the
// channel's Result grid.
func TestRouteCellSingleCrossing(t *testing.T) {
	cfg := DefaultConfig()
	db := NewMemDatabase(grid.Point{}, cfg.Grid)
	cm := channel.NewModel(grid.Point{}, cfg.Grid)

	_, err := cm.DefineChannel(channel.Normal, grid.Rect{XLo: 0, YLo: 0, XHi: 32, YHi: 16})
	require.NoError(t, err)

	nl := &model.NetList{Nets: map[model.NetId]*model.Net{
		"n1": {
			Id: "n1",
			Terms: []model.Term{
				{Id: "t1", Locs: []model.TermLoc{{
					Rect:  grid.Rect{XLo: -8, YLo: 4, XHi: 0, YHi: 12},
					Layer: model.LayerMetal,
				}}},
				{Id: "t2", Locs: []model.TermLoc{{
					Rect:  grid.Rect{XLo: 32, YLo: 4, XHi: 40, YHi: 12},
					Layer: model.LayerMetal,
				}}},
			},
		},
	}}

	fb := NewSliceReporter()
	s := NewSession(cfg, db, cm, nl, NoMazeRouter{}, fb)
	require.NoError(t, RouteCell(s))

	require.False(t, fb.HasErrors(), "%v", fb.Records())

	t1 := nl.Nets["n1"].Terms[0].Locs[0]
	t2 := nl.Nets["n1"].Terms[1].Locs[0]
	require.True(t, t1.Staked)
	require.True(t, t2.Staked)

	ch := cm.Channel(0)
	leftPin := ch.Sides[t1.TipDir].At(t1.Pin)
	rightPin := ch.Sides[t2.TipDir].At(t2.Pin)

	require.Equal(t, model.NetId("n1"), leftPin.Net)
	require.Equal(t, model.NetId("n1"), rightPin.Net)
	require.Equal(t, leftPin.Seg, rightPin.Seg, "a direct same-channel run is one segment")

	track := t1.Pin - 1
	for col := 0; col < ch.Length-1; col++ {
		require.True(t, ch.Result[col][track].Has(channel.FlagRight), "column %d", col)
	}
}

// TestRouteCellUncompletableNetReportsFeedback exercises end-to-end
// scenario 6: two terminals staked into channels with no path between
// them report a routing failure and leave the net unstamped.
func TestRouteCellUncompletableNetReportsFeedback(t *testing.T) {
	cfg := DefaultConfig()
	db := NewMemDatabase(grid.Point{}, cfg.Grid)
	cm := channel.NewModel(grid.Point{}, cfg.Grid)

	_, err := cm.DefineChannel(channel.Normal, grid.Rect{XLo: 0, YLo: 0, XHi: 32, YHi: 16})
	require.NoError(t, err)
	_, err = cm.DefineChannel(channel.Normal, grid.Rect{XLo: 1000, YLo: 1000, XHi: 1032, YHi: 1016})
	require.NoError(t, err)

	nl := &model.NetList{Nets: map[model.NetId]*model.Net{
		"n1": {
			Id: "n1",
			Terms: []model.Term{
				{Id: "t1", Locs: []model.TermLoc{{
					Rect:  grid.Rect{XLo: -8, YLo: 4, XHi: 0, YHi: 12},
					Layer: model.LayerMetal,
				}}},
				{Id: "t2", Locs: []model.TermLoc{{
					Rect:  grid.Rect{XLo: 1032, YLo: 1004, XHi: 1040, YHi: 1012},
					Layer: model.LayerMetal,
				}}},
			},
		},
	}}

	fb := NewSliceReporter()
	s := NewSession(cfg, db, cm, nl, NoMazeRouter{}, fb)
	require.NoError(t, RouteCell(s))

	require.True(t, fb.HasErrors())
	found := false
	for _, rec := range fb.Records() {
		if rec.Message == "can't find a path from t1 to t2" {
			found = true
		}
	}
	require.True(t, found, "%v", fb.Records())
}

// TestRouteCellRiverStraightAcross exercises end-to-end scenario 2: an
// h-river channel with one net whose two terminals sit just outside
// its left and right edges is connected by a single straight run, with
// no contacts anywhere along it (a river crossing never changes
// layer).
func TestRouteCellRiverStraightAcross(t *testing.T) {
	cfg := DefaultConfig()
	db := NewMemDatabase(grid.Point{}, cfg.Grid)
	cm := channel.NewModel(grid.Point{}, cfg.Grid)

	_, err := cm.DefineChannel(channel.HRiver, grid.Rect{XLo: 0, YLo: 0, XHi: 64, YHi: 24})
	require.NoError(t, err)

	nl := &model.NetList{Nets: map[model.NetId]*model.Net{
		"n1": {
			Id: "n1",
			Terms: []model.Term{
				{Id: "t1", Locs: []model.TermLoc{{
					Rect:  grid.Rect{XLo: -8, YLo: 12, XHi: 0, YHi: 20},
					Layer: model.LayerMetal,
				}}},
				{Id: "t2", Locs: []model.TermLoc{{
					Rect:  grid.Rect{XLo: 64, YLo: 12, XHi: 72, YHi: 20},
					Layer: model.LayerMetal,
				}}},
			},
		},
	}}

	fb := NewSliceReporter()
	s := NewSession(cfg, db, cm, nl, NoMazeRouter{}, fb)
	require.NoError(t, RouteCell(s))

	require.False(t, fb.HasErrors(), "%v", fb.Records())

	t1 := nl.Nets["n1"].Terms[0].Locs[0]
	t2 := nl.Nets["n1"].Terms[1].Locs[0]
	require.True(t, t1.Staked)
	require.True(t, t2.Staked)

	ch := cm.Channel(0)
	leftPin := ch.Sides[t1.TipDir].At(t1.Pin)
	rightPin := ch.Sides[t2.TipDir].At(t2.Pin)
	require.Equal(t, model.NetId("n1"), leftPin.Net)
	require.Equal(t, model.NetId("n1"), rightPin.Net)

	track := t1.Pin - 1
	for col := 0; col < ch.Length; col++ {
		require.False(t, ch.Result[col][track].Has(channel.FlagContact), "river crossing needs no via, column %d", col)
	}
	for col := 0; col < ch.Length-1; col++ {
		require.True(t, ch.Result[col][track].Has(channel.FlagRight), "column %d", col)
	}
}

// TestRouteCellTwoChannelJog exercises end-to-end scenario 3: a net
// spanning two adjacent channels is routed through the crossing
// between them, picking up a distinct segment id on each side (one
// channel traversal, one segment-id increment — the Open Question 5
// decision in DESIGN.md).
func TestRouteCellTwoChannelJog(t *testing.T) {
	cfg := DefaultConfig()
	db := NewMemDatabase(grid.Point{}, cfg.Grid)
	cm := channel.NewModel(grid.Point{}, cfg.Grid)

	_, err := cm.DefineChannel(channel.Normal, grid.Rect{XLo: 0, YLo: 0, XHi: 32, YHi: 32})
	require.NoError(t, err)
	_, err = cm.DefineChannel(channel.Normal, grid.Rect{XLo: 32, YLo: 0, XHi: 64, YHi: 32})
	require.NoError(t, err)

	nl := &model.NetList{Nets: map[model.NetId]*model.Net{
		"jog": {
			Id: "jog",
			Terms: []model.Term{
				{Id: "t1", Locs: []model.TermLoc{{
					Rect:  grid.Rect{XLo: -8, YLo: 4, XHi: 0, YHi: 12},
					Layer: model.LayerMetal,
				}}},
				{Id: "t2", Locs: []model.TermLoc{{
					Rect:  grid.Rect{XLo: 64, YLo: 20, XHi: 72, YHi: 28},
					Layer: model.LayerMetal,
				}}},
			},
		},
	}}

	fb := NewSliceReporter()
	s := NewSession(cfg, db, cm, nl, NoMazeRouter{}, fb)
	require.NoError(t, RouteCell(s))

	require.False(t, fb.HasErrors(), "%v", fb.Records())

	t1 := nl.Nets["jog"].Terms[0].Locs[0]
	t2 := nl.Nets["jog"].Terms[1].Locs[0]
	require.True(t, t1.Staked)
	require.True(t, t2.Staked)

	startCh := cm.Channel(channel.ChannelID(t1.Channel))
	endCh := cm.Channel(channel.ChannelID(t2.Channel))
	startPin := startCh.Sides[t1.TipDir].At(t1.Pin)
	endPin := endCh.Sides[t2.TipDir].At(t2.Pin)

	require.Equal(t, model.NetId("jog"), startPin.Net)
	require.Equal(t, model.NetId("jog"), endPin.Net)
	require.NotEqual(t, t1.Channel, t2.Channel, "the two terminals land in different channels")
	require.NotEqual(t, startPin.Seg, endPin.Seg, "each channel traversed gets its own segment id")
}

// TestRouteCellViaMinimizationSwapsBoundaryRunToPoly exercises end-to-
// end scenario 5: a boundary run whose far end is forced onto poly by
// a metal obstacle is swapped entirely to poly, removing the via that
// a metal run would otherwise need there. The obstacle is added after
// staking (and the result-obstacle scan re-run) so it can be placed
// exactly on the pin's own column without the stem generator refusing
// to stake through it.
func TestRouteCellViaMinimizationSwapsBoundaryRunToPoly(t *testing.T) {
	cfg := DefaultConfig()
	mdb := NewMemDatabase(grid.Point{}, cfg.Grid)
	db := &recordingDB{MemDatabase: mdb}
	cm := channel.NewModel(grid.Point{}, cfg.Grid)

	_, err := cm.DefineChannel(channel.Normal, grid.Rect{XLo: 0, YLo: 0, XHi: 48, YHi: 8})
	require.NoError(t, err)

	nl := &model.NetList{Nets: map[model.NetId]*model.Net{
		"n1": {
			Id: "n1",
			Terms: []model.Term{
				{Id: "t1", Locs: []model.TermLoc{{
					Rect:  grid.Rect{XLo: 8, YLo: -8, XHi: 16, YHi: 0},
					Layer: model.LayerMetal,
				}}},
				{Id: "t2", Locs: []model.TermLoc{{
					Rect:  grid.Rect{XLo: 32, YLo: -8, XHi: 40, YHi: 0},
					Layer: model.LayerMetal,
				}}},
			},
		},
	}}

	fb := NewSliceReporter()
	s := NewSession(cfg, db, cm, nl, NoMazeRouter{}, fb)

	s.prepare()
	s.stake()

	t1 := &nl.Nets["n1"].Terms[0].Locs[0]
	t2 := &nl.Nets["n1"].Terms[1].Locs[0]
	require.True(t, t1.Staked)
	require.True(t, t2.Staked)
	require.Less(t, t1.Pin, t2.Pin, "t1 lands at an earlier column than t2")

	ch := cm.Channel(channel.ChannelID(t1.Channel))
	spacing := cfg.Grid
	col1X := ch.Rect.XLo + (t1.Pin-1)*spacing
	db.SetObstacle(grid.Rect{XLo: col1X, YLo: ch.Rect.YLo, XHi: col1X + spacing, YHi: ch.Rect.YHi}, model.LayerMetal)
	s.Channels.ScanResultObstacles(db)

	s.globalRoute()
	s.channelRoute()
	s.stemPaint()

	require.False(t, fb.HasErrors(), "%v", fb.Records())

	for col := t1.Pin; col < t2.Pin; col++ {
		require.True(t, ch.Result[col-1][0].Has(channel.FlagPM),
			"column %d swaps to poly to avoid the via the metal-blocked end would otherwise need", col)
	}
}

// TestRouteCellBlockedOnlyLayerSwitchesRowRunToPoly exercises end-to-
// end scenario 4: a straight row run crosses a cell blocked on the
// metal plane partway along its length. The row pass merges the whole
// run into a single paint call (spec.md §4.6's run-merging rule), so a
// metal obstacle anywhere inside the run forces the entire run onto
// poly rather than splitting it into a metal/poly/metal sandwich.
func TestRouteCellBlockedOnlyLayerSwitchesRowRunToPoly(t *testing.T) {
	cfg := DefaultConfig()
	mdb := NewMemDatabase(grid.Point{}, cfg.Grid)
	db := &recordingDB{MemDatabase: mdb}
	cm := channel.NewModel(grid.Point{}, cfg.Grid)

	_, err := cm.DefineChannel(channel.Normal, grid.Rect{XLo: 0, YLo: 0, XHi: 64, YHi: 16})
	require.NoError(t, err)

	nl := &model.NetList{Nets: map[model.NetId]*model.Net{
		"n1": {
			Id: "n1",
			Terms: []model.Term{
				{Id: "t1", Locs: []model.TermLoc{{
					Rect:  grid.Rect{XLo: -8, YLo: 4, XHi: 0, YHi: 12},
					Layer: model.LayerMetal,
				}}},
				{Id: "t2", Locs: []model.TermLoc{{
					Rect:  grid.Rect{XLo: 64, YLo: 4, XHi: 72, YHi: 12},
					Layer: model.LayerMetal,
				}}},
			},
		},
	}}

	fb := NewSliceReporter()
	s := NewSession(cfg, db, cm, nl, NoMazeRouter{}, fb)

	s.prepare()
	s.stake()

	t1 := &nl.Nets["n1"].Terms[0].Locs[0]
	t2 := &nl.Nets["n1"].Terms[1].Locs[0]
	require.True(t, t1.Staked)
	require.True(t, t2.Staked)

	ch := cm.Channel(channel.ChannelID(t1.Channel))
	track := t1.Pin - 1
	spacing := cfg.Grid
	midCol := ch.Length / 2
	obsX := ch.Rect.XLo + (midCol-1)*spacing
	db.SetObstacle(grid.Rect{
		XLo: obsX, YLo: ch.Rect.YLo + track*spacing,
		XHi: obsX + spacing, YHi: ch.Rect.YLo + (track+1)*spacing,
	}, model.LayerMetal)
	s.Channels.ScanResultObstacles(db)

	s.globalRoute()
	s.channelRoute()
	s.stemPaint()

	require.False(t, fb.HasErrors(), "%v", fb.Records())
	require.True(t, ch.Result[midCol-1][track].Has(channel.FlagBlkMetal), "the obstacle reaches the live Result grid")

	var rowPaint *struct {
		Rect  grid.Rect
		Layer model.Layer
	}
	for i := range db.paints {
		p := &db.paints[i]
		if rowPaint == nil || (p.Rect.XHi-p.Rect.XLo) > (rowPaint.Rect.XHi-rowPaint.Rect.XLo) {
			rowPaint = p
		}
	}
	require.NotNil(t, rowPaint, "%v", db.paints)
	require.Greater(t, rowPaint.Rect.XHi-rowPaint.Rect.XLo, spacing, "the widest paint call is the merged row run, not a via or stem stub")
	require.Equal(t, model.LayerPoly, rowPaint.Layer, "a metal obstacle anywhere in the run forces the whole run to poly")
}

// recordingDB wraps MemDatabase to observe Paint calls, used only by
// the scenarios above to confirm the swapped or rerouted run is
// actually emitted (MemDatabase.Paint is itself a no-op).
type recordingDB struct {
	*MemDatabase
	paints []struct {
		Rect  grid.Rect
		Layer model.Layer
	}
}

func (d *recordingDB) Paint(r grid.Rect, l model.Layer) {
	d.paints = append(d.paints, struct {
		Rect  grid.Rect
		Layer model.Layer
	}{r, l})
}
