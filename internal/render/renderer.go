// Package render draws a realm as one viewer knows it: visible tiles in full,
// remembered tiles dimmed, unknown tiles blank.
package render

import (
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"roguecore/internal/component"
	"roguecore/internal/ecs"
	"roguecore/internal/fov"
	"roguecore/internal/gamemap"
	"roguecore/internal/grid"
	"roguecore/internal/world"
)

// hudRows is the number of screen rows reserved below the map.
const hudRows = 4

// Renderer draws the world onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	theme  Theme
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen, theme Theme) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(grid.Point{}, w, max(h-hudRows, 1), theme.CellWidth),
		theme:  theme,
	}
}

// Resize refits the viewport after the terminal size changed.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.ViewWidth, r.camera.ViewHeight = w, max(h-hudRows, 1)
}

// CenterOn recenters the camera on world position p.
func (r *Renderer) CenterOn(p grid.Point) { r.camera.Center(p) }

// WorldToScreen converts world coordinates to screen coordinates.
// visible is false when the position falls outside the viewport.
func (r *Renderer) WorldToScreen(p grid.Point) (sx, sy int, visible bool) {
	return r.camera.WorldToScreen(p)
}

// DrawFrame renders gmap and the entities on it as viewer sees them. A
// viewer without a computed Vision sees nothing.
func (r *Renderer) DrawFrame(w *world.World, gmap *gamemap.GameMap, viewer ecs.Entity) error {
	vis, ok, err := w.Visions.Get(viewer)
	if err != nil {
		return err
	}
	r.screen.Clear()
	if !ok || vis.View == nil {
		return nil
	}
	r.drawMap(gmap, vis.View)
	r.drawEntities(w, vis.View)
	return nil
}

// drawMap renders all visible and remembered tiles.
func (r *Renderer) drawMap(gmap *gamemap.GameMap, view *fov.View) {
	style := tcell.StyleDefault.Background(tcell.ColorBlack)

	for y := 0; y < gmap.Height; y++ {
		for x := 0; x < gmap.Width; x++ {
			p := grid.Point{X: x, Y: y}
			state := view.State(p)
			if state == fov.Unknown {
				continue
			}
			sx, sy, onScreen := r.camera.WorldToScreen(p)
			if !onScreen {
				continue
			}
			tileStyle := style
			if state == fov.Remembered {
				tileStyle = style.Foreground(tcell.ColorGray)
			}
			r.putGlyph(sx, sy, r.theme.Glyph(*gmap.At(p), state == fov.Visible), tileStyle)
		}
	}
}

// renderableEntity holds sorting info for entity rendering.
type renderableEntity struct {
	order int
	pos   component.Position
	rend  component.Renderable
}

// drawEntities renders entities with Renderable + Position standing on
// tiles the viewer currently sees, ordered by RenderOrder.
func (r *Renderer) drawEntities(w *world.World, view *fov.View) {
	var entities []renderableEntity
	for id := range w.Entities().Query(component.CRenderable, component.CPosition) {
		pos, _, _ := w.Positions.Get(id)
		rend, _, _ := w.Renderables.Get(id)
		if !view.IsVisible(pos.Point()) {
			continue
		}
		entities = append(entities, renderableEntity{order: rend.RenderOrder, pos: pos, rend: rend})
	}

	// Sort ascending by render order (lower = drawn first / behind).
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].order < entities[j].order
	})

	for _, e := range entities {
		sx, sy, onScreen := r.camera.WorldToScreen(e.pos.Point())
		if !onScreen {
			continue
		}
		style := tcell.StyleDefault.Foreground(e.rend.FGColor).Background(tcell.ColorBlack)
		r.putGlyph(sx, sy, e.rend.Glyph, style)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) == 2 && r.theme.CellWidth == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
