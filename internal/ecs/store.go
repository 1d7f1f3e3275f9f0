package ecs

import (
	"iter"

	"github.com/samber/oops"
)

// AnyStore is the type-erased view of a Store the Registry uses for
// lifecycle work (destruction, queries) without knowing the value type.
type AnyStore interface {
	Type() ComponentType
	Has(e Entity) bool
	Len() int
	Entities() iter.Seq[Entity]
	drop(e Entity)
	clear()
	bind(r *Registry)
}

// Store holds the components of one kind, keyed by entity. An entity appears
// at most once. A Store created with NewStore and never registered accepts
// any entity; once registered, operations on dead entities fail with
// ErrStaleEntity.
type Store[T any] struct {
	kind   ComponentType
	owner  *Registry
	values map[Entity]T
	dense  []Entity       // insertion order, compacted by swap-remove
	slot   map[Entity]int // position in dense
}

// NewStore creates an empty store for the given kind.
func NewStore[T any](kind ComponentType) *Store[T] {
	return &Store[T]{
		kind:   kind,
		values: make(map[Entity]T),
		dense:  make([]Entity, 0, 16),
		slot:   make(map[Entity]int),
	}
}

// Type returns the component kind held by the store.
func (s *Store[T]) Type() ComponentType { return s.kind }

func (s *Store[T]) checkLive(e Entity, op string) error {
	if s.owner == nil || s.owner.Alive(e) {
		return nil
	}
	return oops.
		Code("STALE_ENTITY").
		With("entity", e.String(), "kind", s.kind, "op", op).
		Wrap(ErrStaleEntity)
}

// Insert attaches v to e, overwriting any previous value.
func (s *Store[T]) Insert(e Entity, v T) error {
	if err := s.checkLive(e, "insert"); err != nil {
		return err
	}
	if _, ok := s.values[e]; !ok {
		s.slot[e] = len(s.dense)
		s.dense = append(s.dense, e)
	}
	s.values[e] = v
	return nil
}

// Remove detaches the component from e. Removing an absent component is a
// no-op.
func (s *Store[T]) Remove(e Entity) error {
	if err := s.checkLive(e, "remove"); err != nil {
		return err
	}
	s.drop(e)
	return nil
}

// Get returns the component for e. ok is false when e has none; err is only
// set for stale entities.
func (s *Store[T]) Get(e Entity) (v T, ok bool, err error) {
	if err = s.checkLive(e, "get"); err != nil {
		return v, false, err
	}
	v, ok = s.values[e]
	return v, ok, nil
}

// Has reports whether e currently holds this component. It is the
// predicate form used by queries: a stale entity holds nothing, so Has
// reports false instead of an error. Use Get to tell stale from absent.
func (s *Store[T]) Has(e Entity) bool {
	if s.owner != nil && !s.owner.Alive(e) {
		return false
	}
	_, ok := s.values[e]
	return ok
}

// Len returns the number of entities holding this component.
func (s *Store[T]) Len() int { return len(s.dense) }

// All yields every (entity, value) pair. The sequence is lazy and can be
// ranged over again; order is stable for one pass. Inserting or removing
// while ranging is forbidden: collect the entities first.
func (s *Store[T]) All() iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		for _, e := range s.dense {
			if !yield(e, s.values[e]) {
				return
			}
		}
	}
}

// Entities yields the entities holding this component, under the same
// rules as All.
func (s *Store[T]) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for _, e := range s.dense {
			if !yield(e) {
				return
			}
		}
	}
}

func (s *Store[T]) drop(e Entity) {
	i, ok := s.slot[e]
	if !ok {
		return
	}
	last := len(s.dense) - 1
	if i != last {
		moved := s.dense[last]
		s.dense[i] = moved
		s.slot[moved] = i
	}
	s.dense = s.dense[:last]
	delete(s.slot, e)
	delete(s.values, e)
}

func (s *Store[T]) clear() {
	clear(s.values)
	clear(s.slot)
	s.dense = s.dense[:0]
}

func (s *Store[T]) bind(r *Registry) { s.owner = r }
