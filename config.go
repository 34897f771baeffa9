// Package drcore implements the router core of a VLSI physical-design
// system: channel decomposition, a stem generator, a global router and
// a greedy channel router, orchestrated into a single pipeline per
// route invocation (see SPEC_FULL.md).
package drcore

import "github.com/vlsirouter/drcore/option"

// Config packs every read-only routing parameter the technology
// collaborator would otherwise supply (spec.md §6), passed explicitly
// to every stage rather than read from hidden globals (spec.md §9).
// The zero value is not usable; build one with DefaultConfig and
// override fields, the same way the teacher's RenderConfig is built
// with DefaultRenderConfig (renderer.go) and decoded over with
// encoding/json in cmd/routecell.
type Config struct {
	Grid   int `json:"grid"`
	Origin [2]int `json:"origin"`

	Layer1Type  string `json:"layer1_type"`
	Layer1Width int    `json:"layer1_width"`
	Layer2Type  string `json:"layer2_type"`
	Layer2Width int    `json:"layer2_width"`

	ContactType   string `json:"contact_type"`
	ContactWidth  int    `json:"contact_width"`
	ContactOffset int    `json:"contact_offset"`

	MetalSurround int `json:"metal_surround"`
	PolySurround  int `json:"poly_surround"`

	SubcellSepUp   int `json:"subcell_sep_up"`
	SubcellSepDown int `json:"subcell_sep_down"`

	MetalObstacles TileTypeSet `json:"metal_obstacles"`
	PolyObstacles  TileTypeSet `json:"poly_obstacles"`

	PaintSepsUp   map[string]int `json:"paint_seps_up,omitempty"`
	PaintSepsDown map[string]int `json:"paint_seps_down,omitempty"`
	MetalSeps     map[string]int `json:"metal_seps,omitempty"`
	PolySeps      map[string]int `json:"poly_seps,omitempty"`

	ViaLimit  int  `json:"via_limit"`
	MazeStems bool `json:"maze_stems"`

	EndConst  int        `json:"end_const"`
	SteadyNet int        `json:"steady_net"`
	MinJog    int        `json:"min_jog"`
	ObstDist  option.Int `json:"obst_dist,omitempty"`

	JogPenalty      float64 `json:"jog_penalty"`
	ObsPenalty1     float64 `json:"obs_penalty_1"`
	ObsPenalty2     float64 `json:"obs_penalty_2"`
	HazardPenalty   float64 `json:"hazard_penalty"`
	NbrPenalty1     float64 `json:"nbr_penalty_1"`
	NbrPenalty2     float64 `json:"nbr_penalty_2"`
	OrphanPenalty   float64 `json:"orphan_penalty"`
	ChanPenalty     float64 `json:"chan_penalty"`

	// MaxExpansions caps a single per-segment A* search (see
	// SPEC_FULL.md §5 — a hard ceiling in addition to the polled
	// interrupt flag, mirroring the teacher's searchLimit constant
	// in link_router.go).
	MaxExpansions int `json:"max_expansions"`

	derived derivedConfig
}

// derivedConfig holds the eagerly-scaled penalty coefficients.
// Config.derive() computes this once, rather than the original
// implementation's scale-on-first-use trick (spec.md §9); the
// `groutePen` precomputation pass is not replicated (see DESIGN.md).
type derivedConfig struct {
	jogPenalty    float64
	obsPenalty1   float64
	obsPenalty2   float64
	hazardPenalty float64
	nbrPenalty1   float64
	nbrPenalty2   float64
	orphanPenalty float64
	chanPenalty   float64
}

// TileTypeSet is a named set of technology layout types, mirroring the
// type-mask parameters the Database collaborator reports via
// TypesConnectingTo (spec.md §6).
type TileTypeSet []string

// Has reports whether t is a member of the set.
func (s TileTypeSet) Has(t string) bool {
	for _, m := range s {
		if m == t {
			return true
		}
	}
	return false
}

// DefaultConfig returns a Config with conservative defaults, ready to
// be overridden by a decoded JSON file the way cmd/routecell does.
func DefaultConfig() *Config {
	c := &Config{
		Grid:           8,
		Origin:         [2]int{0, 0},
		Layer1Type:     "metal",
		Layer1Width:    4,
		Layer2Type:     "poly",
		Layer2Width:    2,
		ContactType:    "contact",
		ContactWidth:   4,
		ContactOffset:  2,
		MetalSurround:  1,
		PolySurround:   1,
		SubcellSepUp:   2,
		SubcellSepDown: 2,
		ViaLimit:       8,
		MazeStems:      false,
		EndConst:       4,
		SteadyNet:      2,
		MinJog:         2,
		JogPenalty:     1.0,
		ObsPenalty1:    10.0,
		ObsPenalty2:    1.0,
		HazardPenalty:  2.0,
		NbrPenalty1:    1.0,
		NbrPenalty2:    2.0,
		OrphanPenalty:  3.0,
		ChanPenalty:    1.0,
		MaxExpansions:  8192,
	}
	c.derive()
	return c
}

// Derived returns the eagerly-scaled penalty coefficients, computing
// them on first access if Config was constructed without going through
// DefaultConfig (e.g. a freshly decoded JSON value).
func (c *Config) Derived() derivedConfig {
	if c.derived == (derivedConfig{}) {
		c.derive()
	}
	return c.derived
}

func (c *Config) derive() {
	g := float64(c.Grid)
	c.derived = derivedConfig{
		jogPenalty:    c.JogPenalty * g,
		obsPenalty1:   c.ObsPenalty1 * g,
		obsPenalty2:   c.ObsPenalty2 * g,
		hazardPenalty: c.HazardPenalty * g,
		nbrPenalty1:   c.NbrPenalty1 * g,
		nbrPenalty2:   c.NbrPenalty2 * g,
		orphanPenalty: c.OrphanPenalty * g,
		chanPenalty:   c.ChanPenalty * g,
	}
}

// Validate checks that the configuration is complete enough to route
// with, returning a configuration error (spec.md §7) otherwise.
func (c *Config) Validate() error {
	switch {
	case c.Grid <= 0:
		return &ConfigError{Message: "grid spacing must be positive"}
	case c.Layer1Width <= 0 || c.Layer2Width <= 0:
		return &ConfigError{Message: "layer widths must be positive"}
	case c.ContactWidth <= 0:
		return &ConfigError{Message: "contact width must be positive"}
	}
	return nil
}

// ConfigError reports a fatal configuration problem (spec.md §7): the
// pipeline aborts cleanly before routing begins.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return "configuration error: " + e.Message }
