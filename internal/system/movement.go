package system

import (
	"roguecore/internal/component"
	"roguecore/internal/ecs"
	"roguecore/internal/event"
	"roguecore/internal/grid"
	"roguecore/internal/world"
)

// MoveResult describes the outcome of a TryMove call.
type MoveResult uint8

const (
	MoveOK      MoveResult = iota // position updated
	MoveBlocked                   // wall, out-of-bounds, or no position
	MoveBumped                    // destination held by a blocking entity
)

func (r MoveResult) String() string {
	switch r {
	case MoveOK:
		return "ok"
	case MoveBumped:
		return "bumped"
	default:
		return "blocked"
	}
}

// walkable is implemented by realms that distinguish walkability from
// opacity (closed doors block sight but not movement).
type walkable interface {
	IsWalkable(p grid.Point) bool
}

// TryMove attempts to move entity id by (dx, dy) in w's realm.
// Returns the outcome and, for MoveBumped, the blocking entity. A successful
// move publishes EntityMoved.
func TryMove(w *world.World, id ecs.Entity, dx, dy int) (MoveResult, ecs.Entity, error) {
	pos, ok, err := w.Positions.Get(id)
	if err != nil {
		return MoveBlocked, ecs.NilEntity, err
	}
	if !ok {
		return MoveBlocked, ecs.NilEntity, nil
	}
	from := pos.Point()
	to := from.Add(dx, dy)

	// Check for blocking entities at destination.
	for other := range w.Entities().Query(component.CTagBlocking, component.CPosition) {
		if other == id {
			continue
		}
		otherPos, _, _ := w.Positions.Get(other)
		if otherPos.Point() == to {
			return MoveBumped, other, nil
		}
	}

	// Check map walkability.
	realm := w.Realm()
	if wk, ok := realm.(walkable); ok {
		if !wk.IsWalkable(to) {
			return MoveBlocked, ecs.NilEntity, nil
		}
	} else if !realm.InBounds(to) || realm.BlocksSight(to) {
		return MoveBlocked, ecs.NilEntity, nil
	}

	// Move.
	if err := w.Positions.Insert(id, component.Position{X: to.X, Y: to.Y}); err != nil {
		return MoveBlocked, ecs.NilEntity, err
	}
	return MoveOK, ecs.NilEntity, w.Events().Publish(event.EntityMoved{Entity: id, From: from, To: to})
}
