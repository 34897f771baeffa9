// Package channel implements the channel model (spec.md §4.2): channel
// definition, the four-sided pin arrays and their linking, obstacle
// and hazard flagging, and the usable-pin lists the global router
// walks. It is grounded on the teacher's grid.go / link_router.go
// arena style: channels and pins are arena-indexed values, never
// pointer cycles (spec.md §9).
package channel

import (
	"errors"

	"github.com/vlsirouter/drcore/grid"
)

// Kind distinguishes the three channel variants of spec.md §3.
type Kind int

const (
	Normal Kind = iota
	HRiver
	VRiver
)

func (k Kind) String() string {
	switch k {
	case HRiver:
		return "hriver"
	case VRiver:
		return "vriver"
	default:
		return "normal"
	}
}

// ChannelID is an arena index into a Model's channel list.
type ChannelID int

var (
	// ErrOverlap is returned by DefineChannel when the requested
	// rectangle overlaps an already-defined channel.
	ErrOverlap = errors.New("channel: overlaps an existing channel")
	// ErrTooSmall is returned by DefineChannel when the rounded
	// rectangle has no usable interior.
	ErrTooSmall = errors.New("channel: too small after grid rounding")
)

// CellFlags is the result-grid bitset vocabulary of spec.md §4.5.
type CellFlags uint16

const (
	FlagBlkMetal CellFlags = 1 << iota
	FlagBlkPoly
	FlagUp
	FlagRight
	FlagContact
	// Auxiliary flags, derived-and-forgotten before paintback.
	FlagVacateTrack
	FlagVacateCol
	FlagTrackContactNeeded
	FlagColContactNeeded
	FlagHazardRight
	FlagHazardUp
	FlagHazardDown
	// FlagVM ("vertical-metal") marks an up-flagged cell that must
	// paint as metal even though a column run defaults to poly
	// (spec.md §4.6's column pass).
	FlagVM
	// FlagPM ("poly-maximised") marks a right-flagged cell that must
	// paint as poly even though the row pass defaults to metal —
	// paintback's via-minimisation layer swap, the row-pass
	// counterpart to FlagVM (spec.md §4.6).
	FlagPM
)

func (f CellFlags) Has(bit CellFlags) bool { return f&bit != 0 }

// Channel is a rectangle of routable area with four pin arrays, a
// result grid and a pair of density maps (spec.md §3).
type Channel struct {
	ID   ChannelID
	Kind Kind
	Rect grid.Rect

	// Length counts pin indices on the top/bottom sides; Width counts
	// pin indices on the left/right sides.
	Length int
	Width  int

	// Sides is indexed by grid.Side (Bottom, Top, Left, Right).
	Sides [4]*PinArray

	// Result is the length x width bitset grid, Result[col][row].
	Result [][]CellFlags

	// DensityCol has Length entries, DensityRow has Width entries;
	// DefineChannel allocates them zeroed, the global router increments
	// them as it stamps crossing pins, and gcr.Sweep recomputes them
	// from the boundary pins before its sweep.
	DensityCol []int
	DensityRow []int
}

// sideLen returns the pin-array length appropriate to side (Length for
// Bottom/Top, Width for Left/Right).
func (c *Channel) sideLen(side grid.Side) int {
	if side == grid.Left || side == grid.Right {
		return c.Width
	}
	return c.Length
}

// Pin returns a pointer to the pin at grid index i (1..=sideLen) on
// side, or nil if i is out of range. Index 0 and sideLen+1 are
// sentinel-only, per spec.md §3, and are not returned.
func (c *Channel) Pin(side grid.Side, i int) *Pin {
	pa := c.Sides[side]
	if pa == nil || i < 1 || i > pa.Len() {
		return nil
	}
	return &pa.Pins[i]
}

// Model owns the channel list and the channel plane: the tile-plane
// back-pointer structure of spec.md §4.2 step 1, kept separate from
// any Database's own obstacle plane.
type Model struct {
	channels []*Channel
	plane    *grid.TilePlane
}

// NewModel returns an empty channel Model over a fresh channel plane
// with the given origin and spacing.
func NewModel(origin grid.Point, spacing int) *Model {
	return &Model{plane: grid.NewTilePlane(origin, spacing)}
}

// Channels returns every defined channel, in definition order.
func (m *Model) Channels() []*Channel { return m.channels }

// Channel returns the channel with the given id, or nil.
func (m *Model) Channel(id ChannelID) *Channel {
	if int(id) < 0 || int(id) >= len(m.channels) {
		return nil
	}
	return m.channels[id]
}

// Plane returns the channel-plane tile structure built by DefineChannel
// and consulted by the prepare steps and the global router.
func (m *Model) Plane() *grid.TilePlane { return m.plane }

func newPinArray(side grid.Side, n int) *PinArray {
	return &PinArray{Side: side, Pins: make([]Pin, n+2)}
}

// DefineChannel rounds rect to grid alignment (inward only), rejects
// overlap with an existing channel, allocates pin arrays and records
// the channel (spec.md §4.2).
func (m *Model) DefineChannel(kind Kind, rect grid.Rect) (ChannelID, error) {
	spacing := m.plane.Spacing()
	origin := m.plane.Origin()

	aligned := grid.RoundRectInward(rect, origin, spacing)
	if aligned.Empty() {
		return -1, ErrTooSmall
	}

	for _, c := range m.channels {
		if c.Rect.Overlaps(aligned) {
			return -1, ErrOverlap
		}
	}

	length := aligned.Width() / spacing
	width := aligned.Height() / spacing
	if length < 1 || width < 1 {
		return -1, ErrTooSmall
	}

	id := ChannelID(len(m.channels))
	ch := &Channel{
		ID:     id,
		Kind:   kind,
		Rect:   aligned,
		Length: length,
		Width:  width,
	}
	ch.Sides[grid.Bottom] = newPinArray(grid.Bottom, length)
	ch.Sides[grid.Top] = newPinArray(grid.Top, length)
	ch.Sides[grid.Left] = newPinArray(grid.Left, width)
	ch.Sides[grid.Right] = newPinArray(grid.Right, width)

	ch.Result = make([][]CellFlags, length)
	for i := range ch.Result {
		ch.Result[i] = make([]CellFlags, width)
	}
	ch.DensityCol = make([]int, length)
	ch.DensityRow = make([]int, width)

	m.channels = append(m.channels, ch)

	for x := aligned.XLo; x < aligned.XHi; x += spacing {
		for y := aligned.YLo; y < aligned.YHi; y += spacing {
			m.plane.Set(grid.Point{X: x, Y: y}, grid.Tile{Type: grid.TileChannel, Channel: int(id)})
		}
	}

	return id, nil
}

// Clear releases every channel and resets the channel plane, the
// spec.md §8 round-trip law: "defining N non-overlapping channels
// then calling clear restores the channel plane to the pre-definition
// state". Untouched channel-plane cells read as not-present, which
// every caller here treats as blocked (grid.ChannelNone).
func (m *Model) Clear() {
	m.channels = nil
	m.plane = grid.NewTilePlane(m.plane.Origin(), m.plane.Spacing())
}

// channelAt returns the channel owning the tile at p, or nil.
func (m *Model) channelAt(p grid.Point) *Channel {
	t, ok := m.plane.Get(p)
	if !ok || t.Type != grid.TileChannel || t.Channel == grid.ChannelNone {
		return nil
	}
	return m.channels[t.Channel]
}
