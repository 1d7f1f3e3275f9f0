package gamemap

import (
	"testing"

	"roguecore/internal/grid"
)

func pt(x, y int) grid.Point { return grid.Point{X: x, Y: y} }

func TestInBounds(t *testing.T) {
	m := New(10, 8)
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{9, 7, true},
		{-1, 0, false},
		{10, 0, false},
		{0, 8, false},
	}
	for _, c := range cases {
		got := m.InBounds(pt(c.x, c.y))
		if got != c.want {
			t.Errorf("InBounds(%d,%d)=%v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestIsWalkable(t *testing.T) {
	m := New(5, 5)
	// all walls initially
	if m.IsWalkable(pt(2, 2)) {
		t.Error("wall tile should not be walkable")
	}
	m.Set(pt(2, 2), MakeFloor())
	if !m.IsWalkable(pt(2, 2)) {
		t.Error("floor tile should be walkable")
	}
	// out of bounds
	if m.IsWalkable(pt(-1, 0)) {
		t.Error("out-of-bounds should not be walkable")
	}
}

func TestRectCenter(t *testing.T) {
	r := Rect{X1: 0, Y1: 0, X2: 4, Y2: 4}
	if c := r.Center(); c != pt(2, 2) {
		t.Errorf("expected center (2,2), got %v", c)
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{0, 0, 4, 4}
	b := Rect{3, 3, 7, 7}
	c := Rect{5, 5, 9, 9}
	if !a.Intersects(b) {
		t.Error("a and b should intersect")
	}
	if a.Intersects(c) {
		t.Error("a and c should not intersect")
	}
}

func TestAt(t *testing.T) {
	m := New(5, 5)
	if m.At(pt(2, 3)).Kind != TileWall {
		t.Fatal("expected TileWall at (2,3) before any Set")
	}
	m.Set(pt(2, 3), MakeFloor())
	if m.At(pt(2, 3)).Kind != TileFloor {
		t.Fatal("Set should be reflected by subsequent At")
	}
}

func TestBlocksSight(t *testing.T) {
	cases := []struct {
		name string
		tile Tile
		x, y int
		want bool
	}{
		{"wall is opaque", MakeWall(), 2, 2, true},
		{"floor is transparent", MakeFloor(), 2, 2, false},
		{"door is opaque", MakeDoor(), 2, 2, true},
		{"out-of-bounds x=-1", MakeWall(), -1, 0, true},
		{"out-of-bounds y=-1", MakeWall(), 0, -1, true},
		{"out-of-bounds beyond width", MakeWall(), 10, 2, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := New(5, 5)
			if m.InBounds(pt(tc.x, tc.y)) {
				m.Set(pt(tc.x, tc.y), tc.tile)
			}
			if got := m.BlocksSight(pt(tc.x, tc.y)); got != tc.want {
				t.Errorf("BlocksSight(%d,%d) = %v; want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	m := Parse(
		"#####",
		"#.,+#",
		"#<>",
	)
	if w, h := m.Size(); w != 5 || h != 3 {
		t.Fatalf("Size = %dx%d; want 5x3", w, h)
	}
	if m.At(pt(1, 1)).Kind != TileFloor || !m.Lit(pt(1, 1)) {
		t.Error("'.' should be a lit floor")
	}
	if m.Lit(pt(2, 1)) || !m.IsTransparent(pt(2, 1)) {
		t.Error("',' should be a dark transparent floor")
	}
	if m.At(pt(3, 1)).Kind != TileDoor {
		t.Error("'+' should be a door")
	}
	if m.At(pt(1, 2)).Kind != TileStairsUp || m.At(pt(2, 2)).Kind != TileStairsDown {
		t.Error("'<' and '>' should be stairs")
	}
	if m.At(pt(4, 2)).Kind != TileWall {
		t.Error("short rows are padded with walls")
	}
	if m.Lit(pt(9, 9)) {
		t.Error("out-of-bounds is never lit")
	}
}
