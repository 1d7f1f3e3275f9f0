package component

import (
	"roguecore/internal/ecs"
	"roguecore/internal/fov"
	"roguecore/internal/grid"
)

const CVision ecs.ComponentType = 2

// Vision lets an entity see. View holds what it currently sees and
// remembers; the visibility system allocates it on first update and
// replaces it when the map size changes.
type Vision struct {
	Radius     int
	SeeInDark  bool
	SkipMemory bool // keep only what is visible now
	Dirty      bool // recompute on the next dirty-only update
	View       *fov.View
}

func (Vision) Type() ecs.ComponentType { return CVision }

// NewVision returns a vision component that will be computed on the next
// update of either kind.
func NewVision(radius int) Vision {
	return Vision{Radius: radius, Dirty: true}
}

// TileState reports what the entity knows about a tile, Unknown before the
// first update.
func (v Vision) TileState(x, y int) fov.TileState {
	if v.View == nil {
		return fov.Unknown
	}
	return v.View.State(grid.Point{X: x, Y: y})
}
