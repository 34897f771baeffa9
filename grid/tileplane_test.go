package grid

import "testing"

func TestTilePlaneWalkVisitsEveryCellOnce(t *testing.T) {
	p := NewTilePlane(Point{}, 8)
	area := Rect{XLo: 0, YLo: 0, XHi: 32, YHi: 16}

	p.Set(Point{X: 8, Y: 8}, Tile{Type: TileObstacleMetal, Channel: 3})

	seen := map[Point]int{}
	WalkTiles(p, area, 0, func(tl Tile) bool {
		seen[tl.Pos]++
		return true
	})

	wantCells := (area.Width() / 8) * (area.Height() / 8)
	if len(seen) != wantCells {
		t.Fatalf("visited %d cells, want %d", len(seen), wantCells)
	}
	for pos, n := range seen {
		if n != 1 {
			t.Fatalf("cell %+v visited %d times, want 1", pos, n)
		}
	}

	tile, _ := p.Get(Point{X: 8, Y: 8})
	if tile.Type != TileObstacleMetal || tile.Channel != 3 {
		t.Fatalf("Get returned %+v, want the stored tile", tile)
	}
}

func TestTilePlaneWalkMask(t *testing.T) {
	p := NewTilePlane(Point{}, 8)
	p.Set(Point{X: 0, Y: 0}, Tile{Type: TileChannel})
	p.Set(Point{X: 8, Y: 0}, Tile{Type: TileObstacleMetal})

	var gotTypes []TileType
	WalkTiles(p, Rect{XLo: 0, YLo: 0, XHi: 16, YHi: 8}, TileObstacleMetal.Mask(), func(tl Tile) bool {
		gotTypes = append(gotTypes, tl.Type)
		return true
	})

	if len(gotTypes) != 1 || gotTypes[0] != TileObstacleMetal {
		t.Fatalf("mask walk returned %v, want exactly one TileObstacleMetal", gotTypes)
	}
}

func TestTilePlaneWalkEarlyExit(t *testing.T) {
	p := NewTilePlane(Point{}, 8)
	area := Rect{XLo: 0, YLo: 0, XHi: 80, YHi: 80}

	count := 0
	WalkTiles(p, area, 0, func(tl Tile) bool {
		count++
		return count < 3
	})

	if count != 3 {
		t.Fatalf("WalkTiles visited %d tiles before stopping, want 3", count)
	}
}
