package gamemap

import "roguecore/internal/grid"

// Rect is an axis-aligned rectangle used for rooms.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the center point of the rectangle.
func (r Rect) Center() grid.Point {
	return grid.Point{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Intersects reports whether r overlaps other (inclusive edges).
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// GameMap holds the tile grid and room list for one level. It implements
// grid.Terrain and grid.Lighting.
type GameMap struct {
	Width, Height int
	Tiles         [][]Tile
	Rooms         []Rect
}

var (
	_ grid.Terrain  = (*GameMap)(nil)
	_ grid.Lighting = (*GameMap)(nil)
)

// New creates a GameMap filled with walls.
func New(width, height int) *GameMap {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = MakeWall()
		}
	}
	return &GameMap{Width: width, Height: height, Tiles: tiles}
}

// Parse builds a map from rows of text: '#' wall, '.' floor, '+' door,
// '<' and '>' stairs, ',' dark floor. Rows shorter than the first are
// padded with walls.
func Parse(rows ...string) *GameMap {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	m := New(width, len(rows))
	for y, row := range rows {
		for x := 0; x < len(row) && x < width; x++ {
			switch row[x] {
			case '.':
				m.Tiles[y][x] = MakeFloor()
			case ',':
				t := MakeFloor()
				t.Dark = true
				m.Tiles[y][x] = t
			case '+':
				m.Tiles[y][x] = MakeDoor()
			case '<':
				m.Tiles[y][x] = MakeStairsUp()
			case '>':
				m.Tiles[y][x] = MakeStairsDown()
			}
		}
	}
	return m
}

// Size returns the map dimensions.
func (m *GameMap) Size() (int, int) { return m.Width, m.Height }

// InBounds reports whether p is within the map boundaries.
func (m *GameMap) InBounds(p grid.Point) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// At returns a pointer to the tile at p. Panics if out of bounds.
func (m *GameMap) At(p grid.Point) *Tile {
	return &m.Tiles[p.Y][p.X]
}

// Set replaces the tile at p.
func (m *GameMap) Set(p grid.Point, t Tile) {
	m.Tiles[p.Y][p.X] = t
}

// IsWalkable returns true when p is in bounds and walkable.
func (m *GameMap) IsWalkable(p grid.Point) bool {
	if !m.InBounds(p) {
		return false
	}
	return m.Tiles[p.Y][p.X].Walkable
}

// IsTransparent returns true when p is in bounds and transparent.
func (m *GameMap) IsTransparent(p grid.Point) bool {
	if !m.InBounds(p) {
		return false
	}
	return m.Tiles[p.Y][p.X].Transparent
}

// BlocksSight is the inverse of IsTransparent; out-of-bounds blocks.
func (m *GameMap) BlocksSight(p grid.Point) bool { return !m.IsTransparent(p) }

// Lit reports whether p is in bounds and not dark.
func (m *GameMap) Lit(p grid.Point) bool {
	return m.InBounds(p) && !m.Tiles[p.Y][p.X].Dark
}
