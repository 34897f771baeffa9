package stem

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlsirouter/drcore/channel"
	"github.com/vlsirouter/drcore/grid"
	"github.com/vlsirouter/drcore/model"
)

func newTestDB() (*channel.Model, fakeDB) {
	cm := channel.NewModel(grid.Point{}, 8)
	return cm, fakeDB{}
}

type fakeDB struct{}

func (fakeDB) Paint(grid.Rect, model.Layer) {}
func (fakeDB) Erase(grid.Rect, model.Layer) {}
func (fakeDB) ForEachTileInArea(grid.Rect, grid.TileMask, func(grid.Tile) bool) {}
func (fakeDB) ForEachLabelLocation(string, func(grid.Rect, model.Layer)) {}
func (fakeDB) TreeSearchArea(grid.Rect, grid.TileMask, func(grid.Tile) bool) {}
func (fakeDB) TypesConnectingTo(grid.TileType) grid.TileMask { return 0 }

func defaultParams() Params {
	return Params{ContactWidth: 4, MazeStems: false, MaxSeparation: 4, MaxSearch: 3}
}

func TestAssignExternalTerminalStakesNearestChannel(t *testing.T) {
	cm, db := newTestDB()
	_, err := cm.DefineChannel(channel.Normal, grid.Rect{XLo: 0, YLo: 0, XHi: 32, YHi: 16})
	require.NoError(t, err)
	cm.InitLinkedPins()
	cm.BuildUsableLists()

	nl := &model.NetList{Nets: map[model.NetId]*model.Net{
		"n1": {Id: "n1", Terms: []model.Term{
			{Id: "t1", Locs: []model.TermLoc{{Rect: grid.Rect{XLo: 12, YLo: -8, XHi: 20, YHi: -4}, Layer: model.LayerMetal}}},
		}},
	}}

	fb := &recordingSink{}
	Assign(nl, cm, db, defaultParams(), nil, fb)

	loc := &nl.Nets["n1"].Terms[0].Locs[0]
	require.True(t, loc.Staked, "expected the terminal south of the channel to stake onto its bottom side")
	require.Equal(t, grid.Bottom, loc.TipDir)
}

func TestGrowDegenerateExpandsOnlyTheFlatAxis(t *testing.T) {
	grown := growDegenerate(grid.Rect{XLo: 4, YLo: 4, XHi: 4, YHi: 10}, 8)
	require.Equal(t, 8, grown.Width())
	require.Equal(t, 6, grown.Height())

	stillEmpty := growDegenerate(grid.Rect{XLo: 4, YLo: 4, XHi: 4, YHi: 4}, 8)
	require.False(t, stillEmpty.Empty(), "growDegenerate grows both axes when both are flat")
}

func TestAssignUnreachableTerminalReportsPerTerm(t *testing.T) {
	cm, db := newTestDB()
	cm.InitLinkedPins() // no channels defined at all: every terminal is unreachable

	nl := &model.NetList{Nets: map[model.NetId]*model.Net{
		"n1": {Id: "n1", Terms: []model.Term{
			{Id: "t1", Locs: []model.TermLoc{{Rect: grid.Rect{XLo: 0, YLo: 0, XHi: 4, YHi: 4}, Layer: model.LayerMetal}}},
		}},
	}}

	fb := &recordingSink{}
	Assign(nl, cm, db, defaultParams(), nil, fb)

	require.Len(t, fb.records, 1)
	require.Equal(t, model.SevError, fb.records[0].Severity)
}

type recordingSink struct {
	records []model.Feedback
}

func (s *recordingSink) Report(fb model.Feedback) { s.records = append(s.records, fb) }
