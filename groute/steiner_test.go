package groute

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlsirouter/drcore/channel"
	"github.com/vlsirouter/drcore/grid"
	"github.com/vlsirouter/drcore/model"
)

type collectingSink struct {
	records []model.Feedback
}

func (s *collectingSink) Report(fb model.Feedback) { s.records = append(s.records, fb) }

func stakedLoc(chID channel.ChannelID, side grid.Side, idx int) model.TermLoc {
	return model.TermLoc{Staked: true, Channel: int(chID), Pin: idx, TipDir: side}
}

func TestRouteNetStampsBothEndpointsAndOneCrossing(t *testing.T) {
	cm := twoChannelModel(t)
	pen := defaultPenalties(cm)

	net := &model.Net{
		Id: "n1",
		Terms: []model.Term{
			{Id: "t1", Locs: []model.TermLoc{stakedLoc(0, grid.Left, 2)}},
			{Id: "t2", Locs: []model.TermLoc{stakedLoc(1, grid.Right, 2)}},
		},
	}

	fb := &collectingSink{}
	result := RouteNet(cm, net, pen, 10000, nil, fb)

	require.True(t, result.Ok)
	require.Empty(t, fb.records)
	require.Len(t, result.Segments, 1)

	startPin := cm.Channel(0).Sides[grid.Left].At(2)
	endPin := cm.Channel(1).Sides[grid.Right].At(2)
	require.Equal(t, model.NetId("n1"), startPin.Net)
	require.Equal(t, model.NetId("n1"), endPin.Net)
	require.NotEqual(t, startPin.Seg, endPin.Seg, "each channel traversed gets its own segment id")
}

func TestRouteNetReportsFailureWhenATermHasNoStakedLocation(t *testing.T) {
	cm := twoChannelModel(t)
	pen := defaultPenalties(cm)

	net := &model.Net{
		Id: "n2",
		Terms: []model.Term{
			{Id: "t1", Locs: []model.TermLoc{stakedLoc(0, grid.Left, 1)}},
			{Id: "t2", Locs: []model.TermLoc{{Staked: false}}},
		},
	}

	fb := &collectingSink{}
	result := RouteNet(cm, net, pen, 10000, nil, fb)

	require.False(t, result.Ok)
	require.Len(t, fb.records, 1)
	require.Equal(t, model.SevError, fb.records[0].Severity)
}

func TestRouteNetSingleTermIsTriviallyOk(t *testing.T) {
	cm := twoChannelModel(t)
	pen := defaultPenalties(cm)
	net := &model.Net{Id: "n3", Terms: []model.Term{{Id: "t1"}}}

	result := RouteNet(cm, net, pen, 100, nil, &collectingSink{})
	require.True(t, result.Ok)
	require.Empty(t, result.Segments)
}
