package paintback

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlsirouter/drcore/channel"
	"github.com/vlsirouter/drcore/grid"
)

func TestRenderDebugChannelEmitsOneCellPerGridSquare(t *testing.T) {
	cm := channel.NewModel(grid.Point{}, 8)
	id, err := cm.DefineChannel(channel.Normal, grid.Rect{XLo: 0, YLo: 0, XHi: 24, YHi: 16})
	require.NoError(t, err)
	ch := cm.Channel(id)
	ch.Result[0][0] = channel.FlagContact | channel.FlagUp

	c := RenderDebugChannel(ch)
	require.Len(t, c.Children, ch.Length*ch.Width+1, "one rect per cell plus one contact dot")
}

func TestRenderDebugSVGWritesAnSVGDocument(t *testing.T) {
	cm := channel.NewModel(grid.Point{}, 8)
	id, err := cm.DefineChannel(channel.Normal, grid.Rect{XLo: 0, YLo: 0, XHi: 24, YHi: 16})
	require.NoError(t, err)
	ch := cm.Channel(id)

	var buf strings.Builder
	require.NoError(t, RenderDebugSVG(&buf, ch))
	require.Contains(t, buf.String(), "<svg")
}
