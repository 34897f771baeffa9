package channel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlsirouter/drcore/grid"
)

func TestDefineChannelOverlapAndTooSmall(t *testing.T) {
	m := NewModel(grid.Point{}, 8)

	_, err := m.DefineChannel(Normal, grid.Rect{XLo: 0, YLo: 0, XHi: 32, YHi: 16})
	require.NoError(t, err)

	_, err = m.DefineChannel(Normal, grid.Rect{XLo: 16, YLo: 0, XHi: 48, YHi: 16})
	require.ErrorIs(t, err, ErrOverlap)

	_, err = m.DefineChannel(Normal, grid.Rect{XLo: 100, YLo: 100, XHi: 103, YHi: 103})
	require.ErrorIs(t, err, ErrTooSmall)
}

func TestClearRestoresEmptyState(t *testing.T) {
	m := NewModel(grid.Point{}, 8)
	_, err := m.DefineChannel(Normal, grid.Rect{XLo: 0, YLo: 0, XHi: 32, YHi: 16})
	require.NoError(t, err)
	require.Len(t, m.Channels(), 1)

	m.Clear()
	require.Empty(t, m.Channels())

	tile, found := m.Plane().Get(grid.Point{X: 0, Y: 0})
	require.False(t, found)
	require.Equal(t, grid.TileSpace, tile.Type)
}

func TestLinkedPinsAcrossAdjacentChannels(t *testing.T) {
	m := NewModel(grid.Point{}, 8)
	a, err := m.DefineChannel(Normal, grid.Rect{XLo: 0, YLo: 0, XHi: 32, YHi: 32})
	require.NoError(t, err)
	b, err := m.DefineChannel(Normal, grid.Rect{XLo: 32, YLo: 0, XHi: 64, YHi: 32})
	require.NoError(t, err)

	m.InitLinkedPins()

	chA, chB := m.Channel(a), m.Channel(b)
	for i := 1; i <= chA.Width; i++ {
		right := chA.Sides[grid.Right].At(i)
		require.NotNil(t, right.Linked, "A.right[%d] should be linked", i)
		require.Equal(t, b, right.Linked.Channel)
		require.Equal(t, grid.Left, right.Linked.Side)

		left := chB.Sides[grid.Left].At(i)
		require.NotNil(t, left.Linked)
		require.Equal(t, a, left.Linked.Channel)
		require.Equal(t, right.Point, left.Point)
	}

	// The outer boundary has no neighbour.
	require.Nil(t, chA.Sides[grid.Left].At(1).Linked)
	require.Nil(t, chB.Sides[grid.Right].At(1).Linked)
}

func TestRiverBlockagePropagatesToOpposingSide(t *testing.T) {
	m := NewModel(grid.Point{}, 8)
	id, err := m.DefineChannel(HRiver, grid.Rect{XLo: 0, YLo: 0, XHi: 64, YHi: 24})
	require.NoError(t, err)
	m.InitLinkedPins()

	ch := m.Channel(id)
	ch.Sides[grid.Left].At(2).Obstacle = ObstBoth

	m.MarkRiverBlockage()
	m.PropagateBlockage()

	require.True(t, ch.Sides[grid.Left].At(2).Blocked())
	require.True(t, ch.Sides[grid.Right].At(2).Blocked())
	require.False(t, ch.Sides[grid.Left].At(1).Blocked())
}

func TestUsableListSkipsBlockedAndUnlinkedPins(t *testing.T) {
	m := NewModel(grid.Point{}, 8)
	a, err := m.DefineChannel(Normal, grid.Rect{XLo: 0, YLo: 0, XHi: 32, YHi: 32})
	require.NoError(t, err)
	_, err = m.DefineChannel(Normal, grid.Rect{XLo: 32, YLo: 0, XHi: 64, YHi: 32})
	require.NoError(t, err)
	m.InitLinkedPins()
	ch := m.Channel(a)

	// Left side has no neighbour, so it never becomes usable.
	m.BuildUsableLists()
	require.Equal(t, 0, ch.Sides[grid.Left].FirstUsable())

	right := ch.Sides[grid.Right]
	right.At(2).Net = NetBlocked
	m.BuildUsableLists()

	var seen []int
	for i := right.FirstUsable(); i != 0; i = right.Next(i) {
		seen = append(seen, i)
	}
	require.NotContains(t, seen, 2)

	first := right.FirstUsable()
	right.Unlink(first)
	var after []int
	for i := right.FirstUsable(); i != 0; i = right.Next(i) {
		after = append(after, i)
	}
	require.NotContains(t, after, first)
	require.Len(t, after, len(seen)-1)
}
