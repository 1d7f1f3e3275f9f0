package system

import (
	"errors"

	"github.com/samber/oops"
	"go.uber.org/zap"

	"roguecore/internal/component"
	"roguecore/internal/ecs"
	"roguecore/internal/event"
	"roguecore/internal/fov"
	"roguecore/internal/grid"
	"roguecore/internal/world"
)

// Visibility recomputes what every entity with a Position and a Vision can
// see and folds it into that entity's memory.
type Visibility struct {
	log     *zap.Logger
	metrics *Metrics
	tokens  []event.Token
}

// VisibilityOption configures the visibility system.
type VisibilityOption func(*Visibility)

// WithLogger sets the system logger. The default discards.
func WithLogger(l *zap.Logger) VisibilityOption {
	return func(s *Visibility) { s.log = l }
}

// WithMetrics records recomputations and discoveries on m.
func WithMetrics(m *Metrics) VisibilityOption {
	return func(s *Visibility) { s.metrics = m }
}

// NewVisibility creates the system and subscribes it to w's bus: movement
// marks the mover's vision dirty, destruction wipes its memory.
func NewVisibility(w *world.World, opts ...VisibilityOption) (*Visibility, error) {
	s := &Visibility{log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	moved, err := event.On(w.Events(), func(ev event.EntityMoved) error {
		return s.markDirty(w, ev.Entity)
	})
	if err != nil {
		return nil, err
	}
	destroyed, err := event.On(w.Events(), func(ev event.EntityDestroyed) error {
		return s.Reset(w, ev.Entity)
	})
	if err != nil {
		w.Events().Unsubscribe(moved)
		return nil, err
	}
	s.tokens = []event.Token{moved, destroyed}
	return s, nil
}

// Detach removes the system's subscriptions from w's bus.
func (s *Visibility) Detach(w *world.World) {
	for _, tok := range s.tokens {
		w.Events().Unsubscribe(tok)
	}
	s.tokens = nil
}

// Update recomputes every viewer.
func (s *Visibility) Update(w *world.World) error { return s.update(w, false) }

// UpdateDirty recomputes only viewers marked dirty or never computed.
func (s *Visibility) UpdateDirty(w *world.World) error { return s.update(w, true) }

// update visits viewers in unspecified order. A viewer outside the realm is
// skipped and reported; the others are still updated. Newly remembered tiles
// are published as one TilesDiscovered per viewer.
func (s *Visibility) update(w *world.World, dirtyOnly bool) error {
	realm := w.Realm()
	lighting, _ := realm.(grid.Lighting)

	var errs []error
	for _, e := range w.Entities().Snapshot(component.CPosition, component.CVision) {
		if !w.Entities().Alive(e) {
			continue // destroyed by a handler earlier in this update
		}
		pos, okPos, _ := w.Positions.Get(e)
		vis, okVis, _ := w.Visions.Get(e)
		if !okPos || !okVis {
			continue
		}
		if dirtyOnly && !vis.Dirty && viewMatches(vis, realm) {
			continue
		}
		if vis.View != nil && !viewMatches(vis, realm) {
			// Memory sized for another realm cannot carry over.
			if err := s.Reset(w, e); err != nil {
				s.fail("handler")
				errs = append(errs, err)
			}
			if !w.Entities().Alive(e) {
				continue
			}
			if vis, okVis, _ = w.Visions.Get(e); !okVis {
				continue
			}
		}
		if vis.View == nil {
			if vis.SkipMemory {
				vis.View = fov.NewTransientView(realm.Size())
			} else {
				vis.View = fov.NewView(realm.Size())
			}
		}

		var canSee func(grid.Point) bool
		if lighting != nil && !vis.SeeInDark {
			canSee = lighting.Lit
		}
		discovered, err := vis.View.Update(realm, pos.Point(), vis.Radius, canSee)
		if err != nil {
			s.log.Warn("viewer outside realm",
				zap.Stringer("entity", e), zap.Int("x", pos.X), zap.Int("y", pos.Y))
			s.fail("out_of_bounds")
			errs = append(errs, oops.With("entity", e.String()).Wrap(err))
			continue
		}

		vis.Dirty = false
		if err := w.Visions.Insert(e, vis); err != nil {
			errs = append(errs, err)
			continue
		}
		s.log.Debug("visibility recomputed",
			zap.Stringer("entity", e),
			zap.Int("visible", vis.View.VisibleCount()),
			zap.Int("discovered", len(discovered)))
		if s.metrics != nil {
			s.metrics.Recomputes.Inc()
			s.metrics.TilesDiscovered.Add(float64(len(discovered)))
		}

		if len(discovered) > 0 {
			if err := w.Events().Publish(event.TilesDiscovered{Entity: e, Tiles: discovered}); err != nil {
				s.fail("handler")
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Reset forgets everything e has seen and publishes VisibilityReset. A view
// that no longer matches the realm or the vision is dropped and rebuilt on
// the next update. An entity without Vision is left alone; a stale entity
// is an error.
func (s *Visibility) Reset(w *world.World, e ecs.Entity) error {
	vis, ok, err := w.Visions.Get(e)
	if err != nil || !ok {
		return err
	}
	if viewMatches(vis, w.Realm()) {
		vis.View.Reset()
	} else {
		vis.View = nil
	}
	vis.Dirty = true
	if err := w.Visions.Insert(e, vis); err != nil {
		return err
	}
	return w.Events().Publish(event.VisibilityReset{Entity: e})
}

// TileState reports what e knows about p, Unknown for entities without
// Vision.
func (s *Visibility) TileState(w *world.World, e ecs.Entity, p grid.Point) (fov.TileState, error) {
	vis, ok, err := w.Visions.Get(e)
	if err != nil || !ok {
		return fov.Unknown, err
	}
	return vis.TileState(p.X, p.Y), nil
}

// viewMatches reports whether vis has a view sized for realm in the memory
// mode the vision asks for.
func viewMatches(vis component.Vision, realm grid.Terrain) bool {
	return vis.View != nil && vis.View.Fits(realm) && vis.View.Remembers() != vis.SkipMemory
}

func (s *Visibility) markDirty(w *world.World, e ecs.Entity) error {
	vis, ok, err := w.Visions.Get(e)
	if err != nil || !ok {
		return err
	}
	vis.Dirty = true
	return w.Visions.Insert(e, vis)
}

func (s *Visibility) fail(reason string) {
	if s.metrics != nil {
		s.metrics.Failures.WithLabelValues(reason).Inc()
	}
}
