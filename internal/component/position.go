package component

import (
	"roguecore/internal/ecs"
	"roguecore/internal/grid"
)

const CPosition ecs.ComponentType = 1

type Position struct {
	X, Y int
}

func (Position) Type() ecs.ComponentType { return CPosition }

// Point returns the position as a grid coordinate.
func (p Position) Point() grid.Point { return grid.Point{X: p.X, Y: p.Y} }
