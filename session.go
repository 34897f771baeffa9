package drcore

import (
	"sort"

	"github.com/vlsirouter/drcore/channel"
	"github.com/vlsirouter/drcore/gcr"
	"github.com/vlsirouter/drcore/groute"
	"github.com/vlsirouter/drcore/model"
	"github.com/vlsirouter/drcore/paintback"
	"github.com/vlsirouter/drcore/stem"
)

// Session bundles one route_cell invocation's collaborators (spec.md
// §1, §6): the technology configuration, the channel decomposition,
// the net list to route, the layout database, the maze-router
// fallback, and the feedback sink every stage reports into. Grounded
// on cmd/make-map/main.go's run(): one function that decodes
// collaborators and then calls a fixed sequence of package-level
// operations, rather than an object wired together through
// constructor injection.
type Session struct {
	Config   *Config
	Database model.Database
	Channels *channel.Model
	Nets     *model.NetList
	Maze     model.MazeRouter
	Feedback model.FeedbackSink
	Log      *Logger

	// Interrupt is polled at every stage boundary (spec.md §5); a nil
	// Interrupt never aborts early.
	Interrupt func() bool
}

func (s *Session) interrupted(stage string) bool {
	if s.Interrupt == nil || !s.Interrupt() {
		return false
	}
	if s.Log != nil {
		s.Log.Interrupted(stage)
	}
	return true
}

// RouteCell runs the full pipeline of SPEC_FULL.md §2 over s: prepare
// the channel model, stake every terminal, globally route every net in
// id order, sweep and paint every channel, then paint the stems. It
// returns early, without error, if the interrupt flag is set between
// stages — a partially routed cell is still a valid (if incomplete)
// result, matching spec.md §5's "abort cleanly, not destructively"
// requirement. A non-nil error means the configuration itself was
// unusable and no routing was attempted at all.
func RouteCell(s *Session) error {
	if err := s.Config.Validate(); err != nil {
		if s.Log != nil {
			s.Log.Error("validate", err)
		}
		return err
	}

	if s.interrupted("prepare") {
		return nil
	}
	s.prepare()

	if s.interrupted("stake") {
		return nil
	}
	s.stake()

	if s.interrupted("global-route") {
		return nil
	}
	s.globalRoute()

	if s.interrupted("channel-route") {
		return nil
	}
	s.channelRoute()

	if s.interrupted("stem-paint") {
		return nil
	}
	s.stemPaint()

	return nil
}

// prepare implements spec.md §4.2's prepare_for_routing steps 2, 3,
// 5-7; step 4 (stem staking) is its own stage below so that the
// session, not the channel package, sequences the pieces stem.Assign
// depends on but that must run before the global/channel routers.
func (s *Session) prepare() {
	obstDist := 0
	if s.Config.ObstDist.Valid {
		obstDist = s.Config.ObstDist.Value
	}

	s.Channels.ScanObstacles(s.Database, obstDist)
	s.Channels.ScanResultObstacles(s.Database)
	s.Channels.InitLinkedPins()
	s.Channels.MarkRiverBlockage()
	s.Channels.PropagateBlockage()
	s.Channels.BuildUsableLists()

	if s.Log != nil {
		s.Log.Stage("prepare", map[string]any{"channels": len(s.Channels.Channels())})
	}
}

func (s *Session) stemParams() stem.Params {
	return stem.Params{
		ContactWidth:  s.Config.ContactWidth,
		MazeStems:     s.Config.MazeStems,
		MaxSeparation: s.maxSeparation(),
		MaxSearch:     8,
	}
}

func (s *Session) maxSeparation() int {
	max := s.Config.MetalSurround
	if s.Config.PolySurround > max {
		max = s.Config.PolySurround
	}
	for _, v := range s.Config.MetalSeps {
		if v > max {
			max = v
		}
	}
	for _, v := range s.Config.PolySeps {
		if v > max {
			max = v
		}
	}
	return max
}

// stake implements spec.md §4.3.1 over every net's every term.
func (s *Session) stake() {
	stem.Assign(s.Nets, s.Channels, s.Database, s.stemParams(), s.Maze, s.Feedback)

	if s.Log != nil {
		s.Log.Stage("stake", map[string]any{"nets": len(s.Nets.Nets)})
	}
}

func (s *Session) penalties() groute.Penalties {
	d := s.Config.Derived()
	return groute.Penalties{
		Channel:  d.chanPenalty,
		Jog:      d.jogPenalty,
		Obs1:     d.obsPenalty1,
		Obs2:     d.obsPenalty2,
		Hazard:   d.hazardPenalty,
		Nbr1:     d.nbrPenalty1,
		Nbr2:     d.nbrPenalty2,
		Orphan:   d.orphanPenalty,
		Infinity: 1e18,
		Model:    s.Channels,
	}
}

// globalRoute implements spec.md §4.4 over every net, visited in
// sorted net-id order so a rerun of the same cell produces the same
// result regardless of map iteration order (spec.md §5's determinism
// note).
func (s *Session) globalRoute() {
	pen := s.penalties()
	interrupt := groute.Interrupt(func() bool { return s.Interrupt != nil && s.Interrupt() })

	ok, failed := 0, 0
	for _, id := range sortedNetIds(s.Nets) {
		if s.interrupted("global-route") {
			break
		}
		net := s.Nets.Nets[id]
		result := groute.RouteNet(s.Channels, net, pen, s.Config.MaxExpansions, interrupt, s.Feedback)
		if result.Ok {
			ok++
		} else {
			failed++
		}
	}

	if s.Log != nil {
		s.Log.Stage("global-route", map[string]any{"ok": ok, "failed": failed})
	}
}

func sortedNetIds(nl *model.NetList) []model.NetId {
	ids := make([]model.NetId, 0, len(nl.Nets))
	for id := range nl.Nets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// channelRoute implements spec.md §4.5/§4.6 over every channel: a
// greedy column sweep, metal maximisation, via minimisation and the
// paintback passes that turn the Result grid into Paint calls.
func (s *Session) channelRoute() {
	p := paintback.Params{
		MetalWidth: s.Config.Layer1Width,
		PolyWidth:  s.Config.Layer2Width,
		ViaSize:    s.Config.ContactWidth,
	}

	sp := gcr.Params{EndConst: s.Config.EndConst, MinJog: s.Config.MinJog}

	swept, errs := 0, 0
	for _, ch := range s.Channels.Channels() {
		if s.interrupted("channel-route") {
			break
		}
		errs += gcr.Sweep(ch, sp, s.Feedback)
		gcr.MetalMax(ch)
		paintback.ViaMinimize(ch, s.Config.ViaLimit)
		paintback.PaintChannel(s.Channels, ch, p, s.Database)
		swept++
	}

	if s.Log != nil {
		s.Log.Stage("channel-route", map[string]any{"channels": swept, "errors": errs})
	}
}

// stemPaint implements spec.md §4.3.2, run last since it depends on
// pins actually carrying a net (set by globalRoute/channelRoute).
func (s *Session) stemPaint() {
	stem.Paint(s.Nets, s.Channels, s.Database, s.stemParams(), s.Maze, s.Feedback)

	if s.Log != nil {
		s.Log.Stage("stem-paint", nil)
	}
}

// NewSession builds a Session from the narrow set of collaborators
// every caller must supply, filling in a NopLogger and a never-fires
// interrupt if the caller doesn't care about either (cmd/routecell's
// route subcommand overrides both).
func NewSession(cfg *Config, db model.Database, cm *channel.Model, nl *model.NetList, mz model.MazeRouter, fb model.FeedbackSink) *Session {
	return &Session{
		Config:   cfg,
		Database: db,
		Channels: cm,
		Nets:     nl,
		Maze:     mz,
		Feedback: fb,
		Log:      NopLogger(),
	}
}
