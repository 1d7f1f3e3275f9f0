package fov

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roguecore/internal/grid"
)

// textTerrain is a terrain drawn with '#' for opaque tiles and anything else
// for open ones. Lowercase 'd' marks an open but dark tile.
type textTerrain struct{ rows []string }

func terrain(rows ...string) textTerrain { return textTerrain{rows: rows} }

func openTerrain(w, h int) textTerrain {
	rows := make([]string, h)
	for y := range rows {
		rows[y] = strings.Repeat(".", w)
	}
	return textTerrain{rows: rows}
}

func (t textTerrain) Size() (int, int) { return len(t.rows[0]), len(t.rows) }

func (t textTerrain) InBounds(p grid.Point) bool {
	w, h := t.Size()
	return p.X >= 0 && p.Y >= 0 && p.X < w && p.Y < h
}

func (t textTerrain) BlocksSight(p grid.Point) bool {
	return !t.InBounds(p) || t.rows[p.Y][p.X] == '#'
}

func (t textTerrain) Lit(p grid.Point) bool {
	return t.InBounds(p) && t.rows[p.Y][p.X] != 'd'
}

func randomTerrain(rng *rand.Rand, w, h int, wallChance float64) textTerrain {
	rows := make([]string, h)
	for y := range rows {
		var b strings.Builder
		for range w {
			if rng.Float64() < wallChance {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		rows[y] = b.String()
	}
	return textTerrain{rows: rows}
}

func visibleSet(t *testing.T, tr grid.Terrain, origin grid.Point, radius int) map[grid.Point]bool {
	t.Helper()
	seen := make(map[grid.Point]bool)
	require.NoError(t, Compute(tr, origin, radius, func(p grid.Point) { seen[p] = true }))
	return seen
}

func TestFOVOriginAlwaysVisible(t *testing.T) {
	seen := visibleSet(t, openTerrain(20, 20), grid.Point{X: 5, Y: 5}, 5)
	if !seen[grid.Point{X: 5, Y: 5}] {
		t.Error("observer's own tile must always be visible")
	}

	// Even inside a wall with radius 0.
	seen = visibleSet(t, terrain("###", "###", "###"), grid.Point{X: 1, Y: 1}, 0)
	assert.Equal(t, map[grid.Point]bool{{X: 1, Y: 1}: true}, seen)
}

func TestFOVOpenRoomAllVisible(t *testing.T) {
	seen := visibleSet(t, openTerrain(5, 5), grid.Point{X: 2, Y: 2}, 2)
	assert.Len(t, seen, 25)
}

func TestFOVWallHidesTileBehindIt(t *testing.T) {
	room := terrain(
		".....",
		"..#..",
		".....",
		".....",
		".....",
	)
	seen := visibleSet(t, room, grid.Point{X: 2, Y: 2}, 2)
	assert.True(t, seen[grid.Point{X: 2, Y: 1}], "the wall itself is seen")
	assert.False(t, seen[grid.Point{X: 2, Y: 0}], "the tile behind the wall is hidden")
}

func TestFOVWallBlocksLight(t *testing.T) {
	tr := openTerrain(20, 20)
	tr.rows[8] = tr.rows[8][:10] + "#" + tr.rows[8][11:]

	seen := visibleSet(t, tr, grid.Point{X: 10, Y: 10}, 8)
	if !seen[grid.Point{X: 10, Y: 8}] {
		t.Error("the wall tile at (10,8) should be visible")
	}
	if seen[grid.Point{X: 10, Y: 7}] {
		t.Error("tile (10,7) behind the wall at (10,8) should not be visible")
	}
}

func TestFOVNearbyTilesVisible(t *testing.T) {
	seen := visibleSet(t, openTerrain(20, 20), grid.Point{X: 10, Y: 10}, 5)
	for _, p := range []grid.Point{{X: 10, Y: 7}, {X: 10, Y: 13}, {X: 7, Y: 10}, {X: 13, Y: 10}} {
		if !seen[p] {
			t.Errorf("tile %v at distance 3 should be visible (radius=5)", p)
		}
	}
}

func TestFOVRadiusBoundaryInclusive(t *testing.T) {
	o := grid.Point{X: 10, Y: 10}
	const r = 4
	seen := visibleSet(t, openTerrain(21, 21), o, r)

	for _, p := range []grid.Point{{X: 14, Y: 10}, {X: 10, Y: 6}, {X: 14, Y: 14}, {X: 6, Y: 13}} {
		assert.True(t, seen[p], "%v at distance %d is inside radius", p, o.Chebyshev(p))
	}
	for _, p := range []grid.Point{{X: 15, Y: 10}, {X: 10, Y: 5}, {X: 15, Y: 15}, {X: 5, Y: 12}} {
		assert.False(t, seen[p], "%v at distance %d is outside radius", p, o.Chebyshev(p))
	}
	for p := range seen {
		assert.LessOrEqual(t, o.Chebyshev(p), r)
	}
	assert.Len(t, seen, (2*r+1)*(2*r+1))
}

func TestFOVDiagonalCornerDoesNotBlock(t *testing.T) {
	room := terrain(
		".....",
		"..#..",
		"...#.",
		".....",
		".....",
	)
	// Observer at (2,2) with walls north (2,1) and east (3,2): they touch
	// only at a corner, so the diagonal to the north-east stays open.
	seen := visibleSet(t, room, grid.Point{X: 2, Y: 2}, 2)

	assert.True(t, seen[grid.Point{X: 3, Y: 1}], "tile between corner-touching walls is visible")
	assert.True(t, seen[grid.Point{X: 4, Y: 0}], "diagonal line continues past the corner")
	assert.True(t, seen[grid.Point{X: 2, Y: 1}])
	assert.True(t, seen[grid.Point{X: 3, Y: 2}])
	assert.False(t, seen[grid.Point{X: 2, Y: 0}], "straight behind the north wall stays hidden")
	assert.False(t, seen[grid.Point{X: 4, Y: 2}], "straight behind the east wall stays hidden")
}

func TestFOVNeverRevealsOutOfBounds(t *testing.T) {
	tr := openTerrain(6, 4)
	seen := visibleSet(t, tr, grid.Point{X: 0, Y: 0}, 10)
	for p := range seen {
		assert.True(t, tr.InBounds(p), "%v revealed outside the map", p)
	}
	assert.Len(t, seen, 24)
}

func TestFOVObserverOutOfBounds(t *testing.T) {
	err := Compute(openTerrain(5, 5), grid.Point{X: 7, Y: 1}, 3, func(grid.Point) {})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestFOVSymmetricBetweenOpenTiles(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const radius = 7
	for trial := range 40 {
		tr := randomTerrain(rng, 18, 14, 0.25)
		w, h := tr.Size()
		var open []grid.Point
		for y := range h {
			for x := range w {
				if p := (grid.Point{X: x, Y: y}); !tr.BlocksSight(p) {
					open = append(open, p)
				}
			}
		}
		if len(open) < 2 {
			continue
		}
		cache := make(map[grid.Point]map[grid.Point]bool)
		from := func(p grid.Point) map[grid.Point]bool {
			if s, ok := cache[p]; ok {
				return s
			}
			s := visibleSet(t, tr, p, radius)
			cache[p] = s
			return s
		}

		for range 6 {
			a := open[rng.Intn(len(open))]
			for _, b := range open {
				if from(a)[b] != from(b)[a] {
					t.Fatalf("trial %d: %v sees %v = %v but reverse = %v", trial, a, b, from(a)[b], from(b)[a])
				}
			}
		}
	}
}

func TestFOVSymmetricOnOpenMap(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	tr := openTerrain(16, 16)
	for range 200 {
		a := grid.Point{X: rng.Intn(16), Y: rng.Intn(16)}
		b := grid.Point{X: rng.Intn(16), Y: rng.Intn(16)}
		assert.Equal(t, visibleSet(t, tr, a, 5)[b], visibleSet(t, tr, b, 5)[a], "%v <-> %v", a, b)
	}
}

// probingTerrain records the farthest tile Compute asks about.
type probingTerrain struct {
	textTerrain
	origin grid.Point
	far    int
}

func (t *probingTerrain) InBounds(p grid.Point) bool {
	t.far = max(t.far, t.origin.Chebyshev(p))
	return t.textTerrain.InBounds(p)
}

func (t *probingTerrain) BlocksSight(p grid.Point) bool {
	t.far = max(t.far, t.origin.Chebyshev(p))
	return t.textTerrain.BlocksSight(p)
}

func TestFOVNeverScansBeyondRadius(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for range 20 {
		origin := grid.Point{X: rng.Intn(25), Y: rng.Intn(25)}
		tr := &probingTerrain{textTerrain: randomTerrain(rng, 25, 25, 0.15), origin: origin}
		radius := 1 + rng.Intn(6)
		require.NoError(t, Compute(tr, origin, radius, func(grid.Point) {}))
		assert.LessOrEqual(t, tr.far, radius)
	}
}
