// Package world holds the composition root systems operate on: one entity
// registry, one event bus, and the active realm. There is no package-level
// world; every system receives one explicitly.
package world

import (
	"errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"roguecore/internal/component"
	"roguecore/internal/ecs"
	"roguecore/internal/event"
	"roguecore/internal/grid"
)

// World owns its registry and bus exclusively. The realm is shared and
// read-only here; it belongs to whoever generated it.
type World struct {
	id       ulid.ULID
	entities *ecs.Registry
	events   *event.Bus
	realm    grid.Terrain
	turn     uint64
	log      *zap.Logger

	Positions   *ecs.Store[component.Position]
	Visions     *ecs.Store[component.Vision]
	Renderables *ecs.Store[component.Renderable]
	AIs         *ecs.Store[component.AI]
	Players     *ecs.Store[component.TagPlayer]
	Blockers    *ecs.Store[component.TagBlocking]
}

type options struct {
	log     *zap.Logger
	busOpts []event.Option
}

// Option configures a World.
type Option func(*options)

// WithLogger sets the logger for the world and its bus.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMaxEventDepth bounds nested event publication.
func WithMaxEventDepth(n int) Option {
	return func(o *options) { o.busOpts = append(o.busOpts, event.WithMaxDepth(n)) }
}

// New creates a world with an empty registry, a fresh bus and the core
// component stores registered.
func New(realm grid.Terrain, opts ...Option) *World {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	id := ulid.Make()
	log := o.log.With(zap.String("world", id.String()))
	reg := ecs.NewRegistry()
	w := &World{
		id:       id,
		entities: reg,
		events:   event.NewBus(append([]event.Option{event.WithLogger(log)}, o.busOpts...)...),
		realm:    realm,
		log:      log,

		Positions:   mustRegister[component.Position](reg),
		Visions:     mustRegister[component.Vision](reg),
		Renderables: mustRegister[component.Renderable](reg),
		AIs:         mustRegister[component.AI](reg),
		Players:     mustRegister[component.TagPlayer](reg),
		Blockers:    mustRegister[component.TagBlocking](reg),
	}
	return w
}

func mustRegister[T ecs.Component](r *ecs.Registry) *ecs.Store[T] {
	s, err := ecs.RegisterComponent[T](r)
	if err != nil {
		panic(err)
	}
	return s
}

// ID distinguishes independent worlds in one process.
func (w *World) ID() ulid.ULID { return w.id }

// Entities returns the world's registry.
func (w *World) Entities() *ecs.Registry { return w.entities }

// Events returns the world's bus.
func (w *World) Events() *event.Bus { return w.events }

// Realm returns the active map.
func (w *World) Realm() grid.Terrain { return w.realm }

// Logger returns the world-scoped logger.
func (w *World) Logger() *zap.Logger { return w.log }

// SetRealm switches the active map, e.g. on a level transition. Viewer
// memories sized for the old map are reset on their next update.
func (w *World) SetRealm(r grid.Terrain) {
	w.realm = r
	width, height := r.Size()
	w.log.Info("realm changed", zap.Int("width", width), zap.Int("height", height))
}

// Turn returns the number of completed turns.
func (w *World) Turn() uint64 { return w.turn }

// AdvanceTurn increments the turn counter and publishes TurnAdvanced.
func (w *World) AdvanceTurn() error {
	w.turn++
	return w.events.Publish(event.TurnAdvanced{Turn: w.turn})
}

// Spawn creates an entity and publishes EntityCreated. The entity exists
// even when a handler fails.
func (w *World) Spawn() (ecs.Entity, error) {
	e := w.entities.Create()
	return e, w.events.Publish(event.EntityCreated{Entity: e})
}

// Destroy publishes EntityDestroyed while the entity's components are still
// readable, then removes it. Stale entities fail without publishing.
func (w *World) Destroy(e ecs.Entity) error {
	if !w.entities.Alive(e) {
		return w.entities.Destroy(e)
	}
	pubErr := w.events.Publish(event.EntityDestroyed{Entity: e})
	return errors.Join(pubErr, w.entities.Destroy(e))
}
