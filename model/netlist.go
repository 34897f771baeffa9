package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vlsirouter/drcore/grid"
)

// TermId and NetId name terms and nets within a NetList, the way the
// teacher's NodeId/LinkId name nodes and links within a Topology
// (topology.go).
type TermId string
type NetId string

// TermLoc is one label occurrence of a Term: its rectangle and layer,
// and, once the stem generator has run, its chosen stem tip (spec.md
// §3). Channel/Pin are plain ints (a channel.ChannelID and a pin-list
// index) rather than channel package types, so model does not import
// channel — channel imports model, not the other way around.
type TermLoc struct {
	Rect  grid.Rect `json:"rect"`
	Layer Layer     `json:"layer"`

	// Populated by stem.Assign; zero until then.
	Staked   bool       `json:"-"`
	TipPoint grid.Point `json:"-"`
	TipDir   grid.Side  `json:"-"`
	Channel  int        `json:"-"`
	Pin      int        `json:"-"`
}

// Term is a named electrical terminal, possibly occurring at several
// label locations that are assumed already connected inside the cell
// (spec.md §3).
type Term struct {
	Id   TermId    `json:"id"`
	Locs []TermLoc `json:"locs"`
}

// Net is a set of Terms to be connected by the router.
type Net struct {
	Id    NetId  `json:"id"`
	Name  string `json:"name"`
	Terms []Term `json:"terms"`
}

// NetList is the full set of nets to route, the SPEC_FULL.md analogue
// of the teacher's Topology.
type NetList struct {
	Nets map[NetId]*Net `json:"nets"`
}

// GetNet returns the net with the given id, or nil.
func (nl *NetList) GetNet(id NetId) *Net {
	if nl == nil {
		return nil
	}
	return nl.Nets[id]
}

// UnmarshalJSON accepts either an array or an object of nets, the
// same array-or-object duck typing the teacher's Topology.UnmarshalJSON
// implements for Nodes/Links (topology.go), so a NetList can be
// authored either as a list with explicit ids or a map keyed by id.
func (nl *NetList) UnmarshalJSON(data []byte) error {
	var topLevel struct {
		Nets *json.RawMessage `json:"nets"`
	}
	if err := json.Unmarshal(data, &topLevel); err != nil {
		return err
	}

	netMap := make(map[NetId]*Net)
	if topLevel.Nets != nil && len(*topLevel.Nets) > 0 {
		raw := *topLevel.Nets
		switch raw[0] {
		case '[':
			var arr []*Net
			if err := json.Unmarshal(raw, &arr); err != nil {
				return err
			}
			for _, n := range arr {
				if n.Id == "" {
					return errors.New("net must have an id")
				}
				if _, ok := netMap[n.Id]; ok {
					return fmt.Errorf("duplicate net id %q", n.Id)
				}
				netMap[n.Id] = n
			}
		case '{':
			if err := json.Unmarshal(raw, &netMap); err != nil {
				return err
			}
			for id, n := range netMap {
				n.Id = id
			}
		default:
			return errors.New(`"nets" must be an array or object`)
		}
	}

	nl.Nets = netMap
	return nil
}
