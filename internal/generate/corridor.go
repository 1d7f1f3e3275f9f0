package generate

import (
	"roguecore/internal/gamemap"
	"roguecore/internal/grid"
)

// carveCorridor digs a tunnel between a and b in the configured style.
// Corridor tiles are always lit.
func carveCorridor(gmap *gamemap.GameMap, a, b grid.Point, cfg *Config) {
	switch cfg.CorridorStyle {
	case CorridorZShaped:
		carveZShaped(gmap, a, b)
	case CorridorStraight:
		carveH(gmap, a.X, b.X, a.Y)
		carveV(gmap, a.Y, b.Y, b.X)
	default: // LShaped
		if cfg.Rand.Intn(2) == 0 {
			carveH(gmap, a.X, b.X, a.Y)
			carveV(gmap, a.Y, b.Y, b.X)
		} else {
			carveV(gmap, a.Y, b.Y, a.X)
			carveH(gmap, a.X, b.X, b.Y)
		}
	}
}

func carveH(gmap *gamemap.GameMap, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		carve(gmap, grid.Point{X: x, Y: y})
	}
}

func carveV(gmap *gamemap.GameMap, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		carve(gmap, grid.Point{X: x, Y: y})
	}
}

// carve turns walls into floor and leaves existing floor (possibly dark)
// untouched.
func carve(gmap *gamemap.GameMap, p grid.Point) {
	if gmap.InBounds(p) && gmap.At(p).Kind == gamemap.TileWall {
		gmap.Set(p, gamemap.MakeFloor())
	}
}

func carveZShaped(gmap *gamemap.GameMap, a, b grid.Point) {
	midY := (a.Y + b.Y) / 2
	carveV(gmap, a.Y, midY, a.X)
	carveH(gmap, a.X, b.X, midY)
	carveV(gmap, midY, b.Y, b.X)
}
