package generate

import (
	"math/rand"
	"testing"

	"roguecore/internal/gamemap"
	"roguecore/internal/grid"
)

func defaultTestConfig(seed int64) *Config {
	return &Config{
		MapWidth:    60,
		MapHeight:   30,
		MinLeafSize:   8,
		MaxLeafSize:   20,
		MinRoomSize:   4,
		RoomPadding:   1,
		CorridorStyle: CorridorLShaped,
		Rand:          rand.New(rand.NewSource(seed)),
	}
}

// TestGenerateAllRoomsConnected verifies that every floor tile is reachable
// from the first floor tile via BFS (flood-fill).
func TestGenerateAllRoomsConnected(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		cfg := defaultTestConfig(seed)
		gmap, _ := Generate(cfg)

		// Find the first floor tile.
		var start grid.Point
		found := false
		for y := 0; y < gmap.Height && !found; y++ {
			for x := 0; x < gmap.Width && !found; x++ {
				p := grid.Point{X: x, Y: y}
				if k := gmap.At(p).Kind; k == gamemap.TileFloor || k == gamemap.TileStairsDown {
					start, found = p, true
				}
			}
		}
		if !found {
			t.Fatalf("seed=%d: no floor tiles found", seed)
		}

		// BFS from start.
		visited := make([][]bool, gmap.Height)
		for y := range visited {
			visited[y] = make([]bool, gmap.Width)
		}
		queue := []grid.Point{start}
		visited[start.Y][start.X] = true

		dirs := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, d := range dirs {
				n := cur.Add(d[0], d[1])
				if !gmap.InBounds(n) || visited[n.Y][n.X] {
					continue
				}
				if gmap.At(n).Walkable {
					visited[n.Y][n.X] = true
					queue = append(queue, n)
				}
			}
		}

		// Every walkable tile should have been visited.
		for y := 0; y < gmap.Height; y++ {
			for x := 0; x < gmap.Width; x++ {
				if gmap.At(grid.Point{X: x, Y: y}).Walkable && !visited[y][x] {
					t.Errorf("seed=%d: unreachable floor tile at (%d,%d)", seed, x, y)
				}
			}
		}
	}
}

// TestGenerateRoomsDoNotOverlap verifies that no two rooms share interior tiles.
func TestGenerateRoomsDoNotOverlap(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		cfg := defaultTestConfig(seed)
		gmap, _ := Generate(cfg)

		rooms := gmap.Rooms
		for i := 0; i < len(rooms); i++ {
			for j := i + 1; j < len(rooms); j++ {
				if rooms[i].Intersects(rooms[j]) {
					t.Errorf("seed=%d: room %d %v overlaps room %d %v",
						seed, i, rooms[i], j, rooms[j])
				}
			}
		}
	}
}

func TestGenerateStartInFirstRoom(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		gmap, start := Generate(defaultTestConfig(seed))
		if len(gmap.Rooms) == 0 {
			t.Fatalf("seed=%d: no rooms", seed)
		}
		if start != gmap.Rooms[0].Center() {
			t.Errorf("seed=%d: start %v is not the first room's center", seed, start)
		}
		if !gmap.IsWalkable(start) {
			t.Errorf("seed=%d: start %v is not walkable", seed, start)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, _ := Generate(defaultTestConfig(3))
	b, _ := Generate(defaultTestConfig(3))
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			p := grid.Point{X: x, Y: y}
			if *a.At(p) != *b.At(p) {
				t.Fatalf("same seed produced different tiles at %v", p)
			}
		}
	}
}

func TestGenerateBorderIsWall(t *testing.T) {
	gmap, _ := Generate(defaultTestConfig(5))
	for x := 0; x < gmap.Width; x++ {
		for _, y := range []int{0, gmap.Height - 1} {
			if gmap.IsWalkable(grid.Point{X: x, Y: y}) {
				t.Errorf("border tile (%d,%d) is walkable", x, y)
			}
		}
	}
}

func TestGenerateDarkRooms(t *testing.T) {
	cfg := defaultTestConfig(1)
	cfg.DarkRoomChance = 1
	gmap, start := Generate(cfg)
	if !gmap.Lit(start) {
		t.Error("the start room must stay lit")
	}
	dark := 0
	for _, r := range gmap.Rooms[1:] {
		if !gmap.Lit(r.Center()) {
			dark++
		}
	}
	if dark != len(gmap.Rooms)-1 {
		t.Errorf("expected %d dark rooms, got %d", len(gmap.Rooms)-1, dark)
	}
}
