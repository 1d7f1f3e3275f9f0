package event

import (
	"roguecore/internal/ecs"
	"roguecore/internal/grid"
)

// Event is an immutable record of something that happened.
type Event interface {
	Kind() Kind
}

type EntityCreated struct{ Entity ecs.Entity }

func (EntityCreated) Kind() Kind { return KindEntityCreated }

// EntityDestroyed is published before the entity's components are dropped,
// so handlers can still read them.
type EntityDestroyed struct{ Entity ecs.Entity }

func (EntityDestroyed) Kind() Kind { return KindEntityDestroyed }

type EntityMoved struct {
	Entity   ecs.Entity
	From, To grid.Point
}

func (EntityMoved) Kind() Kind { return KindEntityMoved }

// TilesDiscovered lists the tiles a viewer remembered for the first time
// during one visibility update.
type TilesDiscovered struct {
	Entity ecs.Entity
	Tiles  []grid.Point
}

func (TilesDiscovered) Kind() Kind { return KindTilesDiscovered }

type VisibilityReset struct{ Entity ecs.Entity }

func (VisibilityReset) Kind() Kind { return KindVisibilityReset }

type TurnAdvanced struct{ Turn uint64 }

func (TurnAdvanced) Kind() Kind { return KindTurnAdvanced }
