package generate

import (
	"roguecore/internal/gamemap"
	"roguecore/internal/grid"
)

// Populate picks up to cfg.SentryCount distinct tiles for sentries, one per
// room in round-robin order. The first room (start) and the last room
// (stairs) are skipped when there are more than two rooms.
func Populate(gmap *gamemap.GameMap, cfg *Config) []grid.Point {
	rooms := gmap.Rooms
	if len(rooms) > 2 {
		rooms = rooms[1 : len(rooms)-1]
	}
	if len(rooms) == 0 || cfg.SentryCount <= 0 {
		return nil
	}

	occupied := make(map[grid.Point]bool)
	if len(gmap.Rooms) > 0 {
		occupied[gmap.Rooms[0].Center()] = true
	}
	var out []grid.Point
	for i := 0; i < cfg.SentryCount; i++ {
		room := rooms[i%len(rooms)]
		p, ok := pickFreeInRoom(room, cfg, occupied)
		if !ok {
			continue
		}
		occupied[p] = true
		out = append(out, p)
	}
	return out
}

// pickFreeInRoom tries up to 20 times to find an unoccupied walkable
// position inside room.
func pickFreeInRoom(room gamemap.Rect, cfg *Config, occupied map[grid.Point]bool) (grid.Point, bool) {
	const maxAttempts = 20
	for range maxAttempts {
		p := randomInRoom(room, cfg)
		if !occupied[p] {
			return p, true
		}
	}
	return grid.Point{}, false
}

func randomInRoom(room gamemap.Rect, cfg *Config) grid.Point {
	// Shrink by 1 from each edge so nothing blocks a corridor mouth.
	x1, y1 := room.X1+1, room.Y1+1
	x2, y2 := room.X2-1, room.Y2-1
	// Fall back to full room bounds for very small rooms.
	if x1 > x2 || y1 > y2 {
		x1, y1 = room.X1, room.Y1
		x2, y2 = room.X2, room.Y2
	}
	return grid.Point{
		X: x1 + cfg.Rand.Intn(max(1, x2-x1+1)),
		Y: y1 + cfg.Rand.Intn(max(1, y2-y1+1)),
	}
}
