// Package fov computes field of view on a tile grid with symmetric
// shadowcasting and tracks what each viewer currently sees and remembers.
//
// Distance is Chebyshev and inclusive: with radius R every tile whose
// max(|dx|,|dy|) <= R is in range. A floor tile is visible when the line from
// the observer's centre to its centre is unobstructed, which makes
// visibility between floor tiles symmetric. Walls are visible when any part
// of them is lit. Two walls touching only at a corner do not block the
// diagonal between them.
package fov

import (
	"errors"

	"github.com/samber/oops"

	"roguecore/internal/grid"
)

// ErrOutOfBounds is returned when the observer stands outside the terrain.
var ErrOutOfBounds = errors.New("observer out of bounds")

// slope is an exact rational num/den with den > 0.
type slope struct{ num, den int }

type row struct {
	depth      int
	start, end slope
}

// minCol rounds depth*start to the nearest column, ties up.
func (r row) minCol() int {
	return floorDiv(2*r.depth*r.start.num+r.start.den, 2*r.start.den)
}

// maxCol rounds depth*end to the nearest column, ties down.
func (r row) maxCol() int {
	return ceilDiv(2*r.depth*r.end.num-r.end.den, 2*r.end.den)
}

// symmetric reports whether the centre of col lies inside the row's window.
func (r row) symmetric(col int) bool {
	return col*r.start.den >= r.depth*r.start.num && col*r.end.den <= r.depth*r.end.num
}

// tileSlope is the slope of the left edge of (depth, col).
func tileSlope(depth, col int) slope { return slope{2*col - 1, 2 * depth} }

type quadrant uint8

const (
	north quadrant = iota
	east
	south
	west
)

func (q quadrant) transform(o grid.Point, depth, col int) grid.Point {
	switch q {
	case north:
		return grid.Point{X: o.X + col, Y: o.Y - depth}
	case south:
		return grid.Point{X: o.X + col, Y: o.Y + depth}
	case east:
		return grid.Point{X: o.X + depth, Y: o.Y + col}
	default:
		return grid.Point{X: o.X - depth, Y: o.Y + col}
	}
}

// Compute calls reveal for every in-bounds tile visible from origin within
// radius, the origin included. A tile may be revealed more than once.
// The scan is iterative; rows beyond radius are never pushed, so the work
// stack only holds rows of depth 1..radius.
func Compute(t grid.Terrain, origin grid.Point, radius int, reveal func(grid.Point)) error {
	if !t.InBounds(origin) {
		return oops.
			Code("OBSERVER_OUT_OF_BOUNDS").
			With("x", origin.X, "y", origin.Y).
			Wrap(ErrOutOfBounds)
	}
	reveal(origin)
	if radius <= 0 {
		return nil
	}

	blocks := func(p grid.Point) bool { return !t.InBounds(p) || t.BlocksSight(p) }
	show := func(p grid.Point) {
		if t.InBounds(p) {
			reveal(p)
		}
	}

	stack := make([]row, 0, radius)
	for _, q := range [...]quadrant{north, east, south, west} {
		stack = append(stack[:0], row{depth: 1, start: slope{-1, 1}, end: slope{1, 1}})
		for len(stack) > 0 {
			r := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			deeper := r.depth < radius

			var prevWall, hasPrev bool
			for col := r.minCol(); col <= r.maxCol(); col++ {
				p := q.transform(origin, r.depth, col)
				wall := blocks(p)
				if wall || r.symmetric(col) {
					show(p)
				}
				if hasPrev && prevWall && !wall {
					r.start = tileSlope(r.depth, col)
				}
				if deeper && hasPrev && !prevWall && wall {
					stack = append(stack, row{depth: r.depth + 1, start: r.start, end: tileSlope(r.depth, col)})
				}
				prevWall, hasPrev = wall, true
			}
			if deeper && hasPrev && !prevWall {
				stack = append(stack, row{depth: r.depth + 1, start: r.start, end: r.end})
			}
		}
	}
	return nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}
	return q
}
