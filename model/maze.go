package model

import "github.com/vlsirouter/drcore/grid"

// Path is a wire path returned by a MazeRouter, a plain point sequence
// (the maze router's own internal search structure is private to it).
type Path struct {
	Points []grid.Point
}

// MazeRouter is the narrow collaborator interface the stem generator
// falls back to for hard cases (spec.md §4.7). The core never calls it
// in parallel with anything else.
type MazeRouter interface {
	// Init sets up a private top-level cell containing routeCellBounds
	// as a subcell, fenced by bounds, and installs routing parameters.
	Init(routeCellBounds grid.Rect) error
	// Route tries to find a wire from pinPoint, on a layer in
	// pinLayerMask, to anywhere inside destLoc, within the fenced
	// bounds. When write is true the path is painted into the cell (a
	// MazeRouter implementation backed by a real database would do the
	// painting; in-module implementations here only report the path).
	Route(destLoc grid.Rect, pinPoint grid.Point, pinLayerMask grid.TileMask, side grid.Side, write bool) (*Path, bool)
}
