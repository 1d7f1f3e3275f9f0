package fov

import "roguecore/internal/grid"

// TileState is what a viewer knows about one tile.
type TileState uint8

const (
	Unknown    TileState = iota // never seen
	Remembered                  // seen before, not in view now
	Visible                     // in view this update
)

func (s TileState) String() string {
	switch s {
	case Visible:
		return "visible"
	case Remembered:
		return "remembered"
	default:
		return "unknown"
	}
}

// View is one viewer's visibility memory over a terrain of fixed size.
// After every Update the visible set is a subset of the remembered set, and
// the remembered set only grows until Reset.
type View struct {
	visible    *grid.Mask
	remembered *grid.Mask
	transient  bool
}

// NewView returns an empty view for a width x height terrain.
func NewView(width, height int) *View {
	return &View{
		visible:    grid.NewMask(width, height),
		remembered: grid.NewMask(width, height),
	}
}

// NewTransientView returns a view that keeps no memory: its remembered set
// is always the current visible set and Update discovers nothing.
func NewTransientView(width, height int) *View {
	v := NewView(width, height)
	v.remembered = v.visible
	v.transient = true
	return v
}

// Remembers reports whether the view accumulates memory.
func (v *View) Remembers() bool { return !v.transient }

// Fits reports whether the view was sized for t.
func (v *View) Fits(t grid.Terrain) bool {
	w, h := t.Size()
	vw, vh := v.visible.Size()
	return w == vw && h == vh
}

// Update replaces the visible set with a fresh computation from origin and
// merges it into the remembered set. canSee, when non-nil, filters which
// reached tiles count as seen (darkness); the origin always counts. It
// returns the tiles remembered for the first time.
func (v *View) Update(t grid.Terrain, origin grid.Point, radius int, canSee func(grid.Point) bool) ([]grid.Point, error) {
	next := grid.NewMask(v.visible.Size())
	err := Compute(t, origin, radius, func(p grid.Point) {
		if p == origin || canSee == nil || canSee(p) {
			next.Set(p)
		}
	})
	if err != nil {
		return nil, err
	}
	if v.transient {
		v.visible, v.remembered = next, next
		return nil, nil
	}

	var discovered []grid.Point
	next.Each(func(p grid.Point) {
		if !v.remembered.Get(p) {
			v.remembered.Set(p)
			discovered = append(discovered, p)
		}
	})
	v.visible = next
	return discovered, nil
}

// State returns the viewer's knowledge of p.
func (v *View) State(p grid.Point) TileState {
	switch {
	case v.visible.Get(p):
		return Visible
	case v.remembered.Get(p):
		return Remembered
	default:
		return Unknown
	}
}

// IsVisible reports whether p is in view.
func (v *View) IsVisible(p grid.Point) bool { return v.visible.Get(p) }

// IsRemembered reports whether p has ever been seen.
func (v *View) IsRemembered(p grid.Point) bool { return v.remembered.Get(p) }

// VisibleCount returns the number of tiles in view.
func (v *View) VisibleCount() int { return v.visible.Count() }

// RememberedCount returns the number of tiles ever seen.
func (v *View) RememberedCount() int { return v.remembered.Count() }

// EachVisible calls fn for every tile in view.
func (v *View) EachVisible(fn func(grid.Point)) { v.visible.Each(fn) }

// Consistent reports whether visible ⊆ remembered.
func (v *View) Consistent() bool { return v.visible.SubsetOf(v.remembered) }

// Reset forgets everything. It cannot be undone.
func (v *View) Reset() {
	v.visible.Reset()
	v.remembered.Reset()
}
