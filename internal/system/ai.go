package system

import (
	"errors"

	"roguecore/internal/component"
	"roguecore/internal/ecs"
	"roguecore/internal/grid"
	"roguecore/internal/world"
)

// ProcessAI runs one turn for every entity with AI, Position and Vision.
// An entity reacts only when target is visible in its last computed view,
// so the caller should bring views up to date first. It returns the
// entities that saw the target. Moves go through TryMove and so mark the
// movers' visions dirty.
func ProcessAI(w *world.World, target ecs.Entity) ([]ecs.Entity, error) {
	tpos, ok, err := w.Positions.Get(target)
	if err != nil || !ok {
		return nil, err
	}
	goal := tpos.Point()

	var (
		seen []ecs.Entity
		errs []error
	)
	// Snapshot: moves below must not disturb the iteration.
	for _, id := range w.Entities().Snapshot(component.CAI, component.CPosition, component.CVision) {
		if id == target {
			continue
		}
		vis, _, _ := w.Visions.Get(id)
		if vis.View == nil || !vis.View.IsVisible(goal) {
			continue
		}
		seen = append(seen, id)

		ai, _, _ := w.AIs.Get(id)
		pos, _, _ := w.Positions.Get(id)
		switch ai.Behavior {
		case component.BehaviorStationary:
			// never moves
		case component.BehaviorCowardly:
			errs = append(errs, fleeMove(w, id, pos.Point(), goal))
		default:
			errs = append(errs, chaseMove(w, id, pos.Point(), goal))
		}
	}
	return seen, errors.Join(errs...)
}

// chaseMove steps toward goal, horizontally first. It stops once adjacent.
func chaseMove(w *world.World, id ecs.Entity, from, goal grid.Point) error {
	if from.Chebyshev(goal) <= 1 {
		return nil
	}
	dx, dy := sign(goal.X-from.X), sign(goal.Y-from.Y)
	return stepEither(w, id, dx, dy)
}

// fleeMove steps directly away from goal.
func fleeMove(w *world.World, id ecs.Entity, from, goal grid.Point) error {
	dx, dy := -sign(goal.X-from.X), -sign(goal.Y-from.Y)
	return stepEither(w, id, dx, dy)
}

// stepEither tries the x step, then the y step.
func stepEither(w *world.World, id ecs.Entity, dx, dy int) error {
	if dx != 0 {
		res, _, err := TryMove(w, id, dx, 0)
		if err != nil || res == MoveOK {
			return err
		}
	}
	if dy != 0 {
		_, _, err := TryMove(w, id, 0, dy)
		return err
	}
	return nil
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
