package groute

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlsirouter/drcore/channel"
	"github.com/vlsirouter/drcore/grid"
)

func twoChannelModel(t *testing.T) *channel.Model {
	t.Helper()
	cm := channel.NewModel(grid.Point{}, 8)
	_, err := cm.DefineChannel(channel.Normal, grid.Rect{XLo: 0, YLo: 0, XHi: 32, YHi: 32})
	require.NoError(t, err)
	_, err = cm.DefineChannel(channel.Normal, grid.Rect{XLo: 32, YLo: 0, XHi: 64, YHi: 32})
	require.NoError(t, err)
	cm.InitLinkedPins()
	cm.BuildUsableLists()
	return cm
}

func defaultPenalties(cm *channel.Model) Penalties {
	return Penalties{
		Channel: 1, Jog: 5, Obs1: 5, Obs2: 3, Hazard: 4,
		Nbr1: 2, Nbr2: 5, Orphan: 3, Infinity: 1e9,
		Model: cm,
	}
}

func TestSearchFindsDirectCrossingBetweenAdjacentChannels(t *testing.T) {
	cm := twoChannelModel(t)
	pen := defaultPenalties(cm)

	chA := cm.Channel(0)
	chB := cm.Channel(1)

	start := &PathPoint{Pin: chA.Sides[grid.Left].At(2), Channel: 0, Cost: 0}
	destPin := chB.Sides[grid.Right].At(2)

	got := Search(cm, []*PathPoint{start}, 1, destPin, pen, 10000, nil)
	require.NotNil(t, got, "expected a path across the shared boundary")
	require.Equal(t, destPin, got.Pin)
}

func TestSearchReturnsNilWhenDestinationUnreachable(t *testing.T) {
	cm := channel.NewModel(grid.Point{}, 8)
	_, err := cm.DefineChannel(channel.Normal, grid.Rect{XLo: 0, YLo: 0, XHi: 32, YHi: 32})
	require.NoError(t, err)
	cm.InitLinkedPins()
	cm.BuildUsableLists()
	pen := defaultPenalties(cm)

	ch := cm.Channel(0)
	start := &PathPoint{Pin: ch.Sides[grid.Left].At(1), Channel: 0, Cost: 0}
	// This channel's own Right side pin is never used as the dest of a
	// cross-channel search in production (RouteNet always targets a
	// destination owned by a defined Channel on the far side), so
	// asking Search to reach a channel id that was never defined must
	// fail cleanly rather than panic.
	got := Search(cm, []*PathPoint{start}, channel.ChannelID(5), ch.Sides[grid.Right].At(1), pen, 1000, nil)
	require.Nil(t, got)
}

func TestAncestorHasChannelRejectsLoop(t *testing.T) {
	root := &PathPoint{Channel: 0}
	mid := &PathPoint{Channel: 1, Parent: root}
	require.True(t, ancestorHasChannel(mid, 0))
	require.False(t, ancestorHasChannel(mid, 2))
}
