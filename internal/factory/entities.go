// Package factory assembles entities from components on a World.
package factory

import (
	"errors"

	"github.com/gdamore/tcell/v2"

	"roguecore/internal/component"
	"roguecore/internal/ecs"
	"roguecore/internal/grid"
	"roguecore/internal/world"
)

// NewPlayer creates the player-controlled viewer at p.
func NewPlayer(w *world.World, p grid.Point, radius int) (ecs.Entity, error) {
	id, err := w.Spawn()
	if err != nil {
		return id, err
	}
	return id, errors.Join(
		w.Positions.Insert(id, component.Position{X: p.X, Y: p.Y}),
		w.Visions.Insert(id, component.NewVision(radius)),
		w.Renderables.Insert(id, component.Renderable{
			Glyph:       "🧙",
			FGColor:     tcell.ColorYellow,
			BGColor:     tcell.ColorDefault,
			RenderOrder: 10,
		}),
		w.Players.Insert(id, component.TagPlayer{}),
		w.Blockers.Insert(id, component.TagBlocking{}),
	)
}

// NewSentry creates an AI viewer at p. Sentries see in the dark and keep no
// memory of what they saw.
func NewSentry(w *world.World, p grid.Point, radius int, behavior component.AIBehavior) (ecs.Entity, error) {
	id, err := w.Spawn()
	if err != nil {
		return id, err
	}
	vis := component.NewVision(radius)
	vis.SeeInDark = true
	vis.SkipMemory = true
	return id, errors.Join(
		w.Positions.Insert(id, component.Position{X: p.X, Y: p.Y}),
		w.Visions.Insert(id, vis),
		w.AIs.Insert(id, component.AI{Behavior: behavior}),
		w.Renderables.Insert(id, component.Renderable{
			Glyph:       "👁",
			FGColor:     tcell.ColorRed,
			BGColor:     tcell.ColorDefault,
			RenderOrder: 5,
		}),
		w.Blockers.Insert(id, component.TagBlocking{}),
	)
}

// NewMarker creates a drawable entity without vision, such as a stairs
// marker.
func NewMarker(w *world.World, p grid.Point, glyph string) (ecs.Entity, error) {
	id, err := w.Spawn()
	if err != nil {
		return id, err
	}
	return id, errors.Join(
		w.Positions.Insert(id, component.Position{X: p.X, Y: p.Y}),
		w.Renderables.Insert(id, component.Renderable{
			Glyph:       glyph,
			FGColor:     tcell.ColorWhite,
			BGColor:     tcell.ColorDefault,
			RenderOrder: 1,
		}),
	)
}
