package ecs

import (
	"errors"
	"fmt"
)

// Entity identifies one game object. The generation distinguishes a recycled
// slot from a stale reference to its previous occupant.
type Entity struct {
	index      uint32
	generation uint32
}

// NilEntity is the zero value. No live entity ever has this identifier.
var NilEntity Entity

// Index returns the slot index of the entity.
func (e Entity) Index() uint32 { return e.index }

// Generation returns the generation counter of the entity.
func (e Entity) Generation() uint32 { return e.generation }

// IsNil reports whether e is the zero identifier.
func (e Entity) IsNil() bool { return e == NilEntity }

func (e Entity) String() string {
	return fmt.Sprintf("Entity(%d:%d)", e.index, e.generation)
}

// ComponentType is a small integer key naming one component kind.
type ComponentType uint8

// ErrStaleEntity is returned when an operation references a destroyed entity.
var ErrStaleEntity = errors.New("stale entity")

// ErrKindRegistered is returned when a second store is registered for a kind.
var ErrKindRegistered = errors.New("component kind already registered")

// Component is implemented by component structs that carry their own kind.
type Component interface {
	Type() ComponentType
}
