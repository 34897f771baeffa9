package drcore

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vlsirouter/drcore/channel"
	"github.com/vlsirouter/drcore/grid"
	"github.com/vlsirouter/drcore/model"
)

// ChannelSpec is one channel declaration in a CellFile: a kind and a
// rectangle, the JSON-friendly counterpart of a DefineChannel call.
type ChannelSpec struct {
	Kind string    `json:"kind"`
	Rect grid.Rect `json:"rect"`
}

func (s ChannelSpec) kind() (channel.Kind, error) {
	switch s.Kind {
	case "", "normal":
		return channel.Normal, nil
	case "hriver":
		return channel.HRiver, nil
	case "vriver":
		return channel.VRiver, nil
	default:
		return 0, fmt.Errorf("cellfile: unknown channel kind %q", s.Kind)
	}
}

// ObstacleSpec is one obstructed rectangle in a CellFile's database,
// the JSON-friendly counterpart of MemDatabase.SetObstacle.
type ObstacleSpec struct {
	Rect  grid.Rect   `json:"rect"`
	Layer model.Layer `json:"layer"`
}

// CellFile is the whole-cell input format cmd/routecell's route
// subcommand decodes: technology configuration, the channel
// decomposition, the pre-placed obstacles a real layout database would
// otherwise report, and the net list to route. It plays the role the
// teacher's Topology plays for make-map — the one JSON document a
// single invocation consumes — generalized from one domain object
// (nodes and links) to four (config, channels, obstacles, nets) since
// a detailed router has no single collaborator that already owns all
// of them.
type CellFile struct {
	Config    *Config        `json:"config,omitempty"`
	Channels  []ChannelSpec  `json:"channels"`
	Obstacles []ObstacleSpec `json:"obstacles,omitempty"`
	Nets      model.NetList  `json:"nets"`
}

// DecodeCellFile reads and validates a CellFile from r. A missing
// Config decodes to DefaultConfig.
func DecodeCellFile(r io.Reader) (*CellFile, error) {
	cf := &CellFile{}
	dec := json.NewDecoder(r)
	if err := dec.Decode(cf); err != nil {
		return nil, fmt.Errorf("cellfile: %w", err)
	}
	if cf.Config == nil {
		cf.Config = DefaultConfig()
	} else {
		cf.Config.derive()
	}
	if len(cf.Channels) == 0 {
		return nil, fmt.Errorf("cellfile: no channels declared")
	}
	return cf, nil
}

// Build turns a decoded CellFile into a ready-to-run Session: it lays
// out a fresh channel.Model and MemDatabase from the declared channels
// and obstacles, then wires them with the net list and fb into a
// Session the caller can pass to RouteCell.
func (cf *CellFile) Build(fb model.FeedbackSink) (*Session, error) {
	origin := grid.Point{X: cf.Config.Origin[0], Y: cf.Config.Origin[1]}
	db := NewMemDatabase(origin, cf.Config.Grid)
	cm := channel.NewModel(origin, cf.Config.Grid)

	for _, spec := range cf.Channels {
		kind, err := spec.kind()
		if err != nil {
			return nil, err
		}
		if _, err := cm.DefineChannel(kind, spec.Rect); err != nil {
			return nil, fmt.Errorf("cellfile: channel %v: %w", spec.Rect, err)
		}
	}
	for _, obs := range cf.Obstacles {
		db.SetObstacle(obs.Rect, obs.Layer)
	}

	nl := cf.Nets
	s := NewSession(cf.Config, db, cm, &nl, NewGridMazeRouter(db), fb)
	return s, nil
}
