package world

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roguecore/internal/component"
	"roguecore/internal/ecs"
	"roguecore/internal/event"
	"roguecore/internal/gamemap"
)

func TestNewWorldIsEmpty(t *testing.T) {
	m := gamemap.New(4, 4)
	w := New(m)

	assert.Equal(t, 0, w.Entities().Len())
	assert.Same(t, m, w.Realm())
	assert.Zero(t, w.Turn())
	for _, k := range event.Kinds() {
		assert.Zero(t, w.Events().Subscribers(k))
	}
}

func TestCoreStoresRegistered(t *testing.T) {
	w := New(gamemap.New(2, 2))
	for _, k := range []ecs.ComponentType{
		component.CPosition, component.CVision, component.CAI,
		component.CRenderable, component.CTagPlayer, component.CTagBlocking,
	} {
		_, ok := w.Entities().Store(k)
		assert.True(t, ok, "kind %d", k)
	}
}

func TestWorldsAreIndependent(t *testing.T) {
	a, b := New(gamemap.New(3, 3)), New(gamemap.New(3, 3))
	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotSame(t, a.Entities(), b.Entities())
	assert.NotSame(t, a.Events(), b.Events())

	e, err := a.Spawn()
	require.NoError(t, err)
	require.NoError(t, a.Positions.Insert(e, component.Position{X: 1, Y: 1}))
	assert.Equal(t, 0, b.Positions.Len())
}

func TestSpawnAndDestroyPublish(t *testing.T) {
	w := New(gamemap.New(3, 3))
	var created, destroyed []ecs.Entity
	var posAtDestroy component.Position
	_, err := event.On(w.Events(), func(ev event.EntityCreated) error {
		created = append(created, ev.Entity)
		return nil
	})
	require.NoError(t, err)
	_, err = event.On(w.Events(), func(ev event.EntityDestroyed) error {
		destroyed = append(destroyed, ev.Entity)
		p, _, err := w.Positions.Get(ev.Entity)
		posAtDestroy = p
		return err
	})
	require.NoError(t, err)

	e, err := w.Spawn()
	require.NoError(t, err)
	require.NoError(t, w.Positions.Insert(e, component.Position{X: 2, Y: 1}))
	require.NoError(t, w.Destroy(e))

	assert.Equal(t, []ecs.Entity{e}, created)
	assert.Equal(t, []ecs.Entity{e}, destroyed)
	assert.Equal(t, component.Position{X: 2, Y: 1}, posAtDestroy, "components readable during EntityDestroyed")
	assert.False(t, w.Entities().Alive(e))
	assert.False(t, w.Positions.Has(e))
}

func TestDestroyStaleEntity(t *testing.T) {
	w := New(gamemap.New(3, 3))
	e, err := w.Spawn()
	require.NoError(t, err)
	require.NoError(t, w.Destroy(e))

	calls := 0
	_, err = event.On(w.Events(), func(event.EntityDestroyed) error { calls++; return nil })
	require.NoError(t, err)

	assert.ErrorIs(t, w.Destroy(e), ecs.ErrStaleEntity)
	assert.Zero(t, calls)
	assert.ErrorIs(t, w.Positions.Insert(e, component.Position{}), ecs.ErrStaleEntity)
}

func TestDestroyStillRemovesWhenHandlerFails(t *testing.T) {
	w := New(gamemap.New(3, 3))
	boom := errors.New("boom")
	_, err := w.Events().Subscribe(event.KindEntityDestroyed, func(event.Event) error { return boom })
	require.NoError(t, err)

	e, err := w.Spawn()
	require.NoError(t, err)
	err = w.Destroy(e)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, event.ErrHandlerFailed)
	assert.False(t, w.Entities().Alive(e))
}

func TestAdvanceTurn(t *testing.T) {
	w := New(gamemap.New(3, 3))
	var seen []uint64
	_, err := event.On(w.Events(), func(ev event.TurnAdvanced) error {
		seen = append(seen, ev.Turn)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, w.AdvanceTurn())
	require.NoError(t, w.AdvanceTurn())
	assert.Equal(t, uint64(2), w.Turn())
	assert.Equal(t, []uint64{1, 2}, seen)
}

func TestWithMaxEventDepth(t *testing.T) {
	w := New(gamemap.New(3, 3), WithMaxEventDepth(2))
	_, err := event.On(w.Events(), func(ev event.TurnAdvanced) error {
		return w.Events().Publish(ev)
	})
	require.NoError(t, err)
	assert.ErrorIs(t, w.AdvanceTurn(), event.ErrPublishDepth)
}

func TestSetRealm(t *testing.T) {
	w := New(gamemap.New(3, 3))
	next := gamemap.New(8, 6)
	w.SetRealm(next)
	assert.Same(t, next, w.Realm())
}
