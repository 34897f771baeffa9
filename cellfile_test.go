package drcore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlsirouter/drcore/model"
)

func TestDecodeCellFileFillsDefaultConfig(t *testing.T) {
	const doc = `{
		"channels": [{"kind": "normal", "rect": {"XLo": 0, "YLo": 0, "XHi": 32, "YHi": 16}}],
		"nets": {"nets": {}}
	}`

	cf, err := DecodeCellFile(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig().Grid, cf.Config.Grid)
}

func TestDecodeCellFileRejectsNoChannels(t *testing.T) {
	_, err := DecodeCellFile(strings.NewReader(`{"channels": [], "nets": {"nets": {}}}`))
	require.Error(t, err)
}

func TestCellFileBuildRoutesASimpleNet(t *testing.T) {
	const doc = `{
		"channels": [{"kind": "normal", "rect": {"XLo": 0, "YLo": 0, "XHi": 32, "YHi": 16}}],
		"nets": {
			"nets": {
				"n1": {
					"id": "n1",
					"terms": [
						{"id": "t1", "locs": [{"rect": {"XLo": -8, "YLo": 4, "XHi": 0, "YHi": 12}, "layer": 0}]},
						{"id": "t2", "locs": [{"rect": {"XLo": 32, "YLo": 4, "XHi": 40, "YHi": 12}, "layer": 0}]}
					]
				}
			}
		}
	}`

	cf, err := DecodeCellFile(strings.NewReader(doc))
	require.NoError(t, err)

	fb := NewSliceReporter()
	s, err := cf.Build(fb)
	require.NoError(t, err)
	require.NoError(t, RouteCell(s))

	require.False(t, fb.HasErrors(), "%v", fb.Records())
	net := cf.Nets.Nets[model.NetId("n1")]
	require.True(t, net.Terms[0].Locs[0].Staked)
	require.True(t, net.Terms[1].Locs[0].Staked)
}
