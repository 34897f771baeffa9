package drcore

import (
	"github.com/vlsirouter/drcore/grid"
	"github.com/vlsirouter/drcore/internal"
	"github.com/vlsirouter/drcore/model"
)

// NoMazeRouter always reports failure. It exercises the "maze-router
// failure downgrades to stem failure" path of spec.md §7 for tests
// that don't need a maze router to actually succeed.
type NoMazeRouter struct{}

func (NoMazeRouter) Init(grid.Rect) error { return nil }

func (NoMazeRouter) Route(grid.Rect, grid.Point, grid.TileMask, grid.Side, bool) (*model.Path, bool) {
	return nil, false
}

// GridMazeRouter is a minimal BFS-based maze router over a MemDatabase
// tile plane: good enough to exercise the "maze succeeds" fallback
// path in tests, standing in for the real mzrouter the spec excludes
// (spec.md §1). It reuses the teacher's generic internal.PriorityQueue
// the same way groute's A* does, but with uniform edge cost (BFS) since
// it only has to prove reachability for the write=false probe case.
type GridMazeRouter struct {
	db     *MemDatabase
	bounds grid.Rect
}

// NewGridMazeRouter returns a maze router scanning tiles from db.
func NewGridMazeRouter(db *MemDatabase) *GridMazeRouter {
	return &GridMazeRouter{db: db}
}

func (m *GridMazeRouter) Init(routeCellBounds grid.Rect) error {
	m.bounds = routeCellBounds
	return nil
}

func (m *GridMazeRouter) Route(destLoc grid.Rect, pinPoint grid.Point, pinLayerMask grid.TileMask, side grid.Side, write bool) (*model.Path, bool) {
	sp := m.db.plane.Spacing()

	type node struct{ x, y int }
	start := node{pinPoint.X, pinPoint.Y}

	visited := map[node]bool{start: true}
	cameFrom := map[node]node{}
	queue := internal.PriorityQueue[node]{}
	queue.Push(start, 0)

	dist := map[node]int{start: 0}

	var goal node
	found := false

	for !queue.Empty() {
		curP, _ := queue.Pop()
		cur := *curP

		if destLoc.Contains(grid.Point{X: cur.x, Y: cur.y}) {
			goal = cur
			found = true
			break
		}

		d := dist[cur]
		for _, delta := range [][2]int{{sp, 0}, {-sp, 0}, {0, sp}, {0, -sp}} {
			next := node{cur.x + delta[0], cur.y + delta[1]}
			if !m.bounds.Contains(grid.Point{X: next.x, Y: next.y}) {
				continue
			}
			if visited[next] {
				continue
			}
			tile, ok := m.db.plane.Get(grid.Point{X: next.x, Y: next.y})
			if ok && tile.Type != grid.TileSpace && tile.Type != grid.TileChannel {
				continue
			}
			visited[next] = true
			cameFrom[next] = cur
			dist[next] = d + 1
			queue.Push(next, d+1)
		}
	}

	if !found {
		return nil, false
	}

	var pts []grid.Point
	for n := goal; ; {
		pts = append([]grid.Point{{X: n.x, Y: n.y}}, pts...)
		if n == start {
			break
		}
		n = cameFrom[n]
	}

	return &model.Path{Points: pts}, true
}
