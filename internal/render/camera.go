package render

import "roguecore/internal/grid"

// Camera translates between world coordinates and screen coordinates.
// World X is multiplied by CellWidth because emoji occupy 2 terminal columns.
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
	CellWidth  int
}

// NewCamera creates a camera centered on c.
func NewCamera(c grid.Point, viewW, viewH, cellW int) *Camera {
	cam := &Camera{ViewWidth: viewW, ViewHeight: viewH, CellWidth: max(cellW, 1)}
	cam.Center(c)
	return cam
}

// Center repositions the camera so that world position c is in the middle.
func (c *Camera) Center(p grid.Point) {
	c.OffsetX = p.X - (c.ViewWidth/2)/c.CellWidth
	c.OffsetY = p.Y - c.ViewHeight/2
}

// WorldToScreen converts world p to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(p grid.Point) (sx, sy int, visible bool) {
	sx = (p.X - c.OffsetX) * c.CellWidth
	sy = p.Y - c.OffsetY
	visible = sx >= 0 && sx+c.CellWidth <= c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy int) grid.Point {
	return grid.Point{X: sx/c.CellWidth + c.OffsetX, Y: sy + c.OffsetY}
}
