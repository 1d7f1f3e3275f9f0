package ecs

import (
	"iter"
	"math"
	"slices"

	"github.com/samber/oops"
)

// Registry owns entity lifecycles and the component stores attached to it.
//
// Destroying an entity bumps its slot generation on the next Create, so any
// identifier held past Destroy is detectably stale.
type Registry struct {
	generations []uint32
	alive       []bool
	free        []uint32
	live        int
	stores      map[ComponentType]AnyStore
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{stores: make(map[ComponentType]AnyStore)}
}

// Register binds a store to the registry. Only one store may exist per kind.
func (r *Registry) Register(s AnyStore) error {
	if _, dup := r.stores[s.Type()]; dup {
		return oops.Code("KIND_REGISTERED").With("kind", s.Type()).Wrap(ErrKindRegistered)
	}
	s.bind(r)
	r.stores[s.Type()] = s
	return nil
}

// Register creates a typed store for kind and binds it to r.
func Register[T any](r *Registry, kind ComponentType) (*Store[T], error) {
	s := NewStore[T](kind)
	if err := r.Register(s); err != nil {
		return nil, err
	}
	return s, nil
}

// MustRegister is Register for setup code where a duplicate kind is a bug.
func MustRegister[T any](r *Registry, kind ComponentType) *Store[T] {
	s, err := Register[T](r, kind)
	if err != nil {
		panic(err)
	}
	return s
}

// Store returns the store registered for kind.
func (r *Registry) Store(kind ComponentType) (AnyStore, bool) {
	s, ok := r.stores[kind]
	return s, ok
}

// Create mints a new entity, recycling a free slot when one exists.
func (r *Registry) Create() Entity {
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		idx = uint32(len(r.generations))
		r.generations = append(r.generations, 0)
		r.alive = append(r.alive, false)
	}
	r.generations[idx]++
	r.alive[idx] = true
	r.live++
	return Entity{index: idx, generation: r.generations[idx]}
}

// Alive reports whether e refers to a live entity.
func (r *Registry) Alive(e Entity) bool {
	i := int(e.index)
	return i < len(r.alive) && r.alive[i] && r.generations[i] == e.generation
}

// Destroy drops every component of e and invalidates the identifier.
func (r *Registry) Destroy(e Entity) error {
	if !r.Alive(e) {
		return oops.Code("STALE_ENTITY").With("entity", e.String(), "op", "destroy").Wrap(ErrStaleEntity)
	}
	for _, s := range r.stores {
		s.drop(e)
	}
	r.alive[e.index] = false
	// A slot whose generation is exhausted is retired: recycling it would
	// wrap the counter and revive old handles.
	if r.generations[e.index] < math.MaxUint32 {
		r.free = append(r.free, e.index)
	}
	r.live--
	return nil
}

// Len returns the number of live entities.
func (r *Registry) Len() int { return r.live }

// Entities yields every live entity in slot order.
func (r *Registry) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for i, ok := range r.alive {
			if !ok {
				continue
			}
			if !yield(Entity{index: uint32(i), generation: r.generations[i]}) {
				return
			}
		}
	}
}

// Clear destroys every entity. Generations are kept so identifiers issued
// before Clear stay stale.
func (r *Registry) Clear() {
	for _, s := range r.stores {
		s.clear()
	}
	for i, ok := range r.alive {
		if ok {
			r.alive[i] = false
			if r.generations[i] < math.MaxUint32 {
				r.free = append(r.free, uint32(i))
			}
		}
	}
	r.live = 0
}

// Query yields the entities holding every listed kind, walking the smallest
// store and probing the others. The sequence is lazy: adding or removing
// components of the queried kinds while ranging is unspecified. Use Snapshot
// when the loop body mutates.
func (r *Registry) Query(kinds ...ComponentType) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		if len(kinds) == 0 {
			return
		}
		stores := make([]AnyStore, 0, len(kinds))
		for _, k := range kinds {
			s, ok := r.stores[k]
			if !ok {
				return
			}
			stores = append(stores, s)
		}
		slices.SortFunc(stores, func(a, b AnyStore) int { return a.Len() - b.Len() })

		for e := range stores[0].Entities() {
			match := true
			for _, s := range stores[1:] {
				if !s.Has(e) {
					match = false
					break
				}
			}
			if match && !yield(e) {
				return
			}
		}
	}
}

// Snapshot collects Query into a slice that is safe to hold while mutating.
func (r *Registry) Snapshot(kinds ...ComponentType) []Entity {
	return slices.Collect(r.Query(kinds...))
}

// RegisterComponent registers a store for T using the kind T reports.
func RegisterComponent[T Component](r *Registry) (*Store[T], error) {
	var zero T
	return Register[T](r, zero.Type())
}
