package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"roguecore/internal/ecs"
	"roguecore/internal/world"
)

// DrawHUD renders the status bar and message log at the bottom of the screen.
func (r *Renderer) DrawHUD(w *world.World, viewer ecs.Entity, messages []string) {
	_, screenH := r.screen.Size()
	hudY := screenH - hudRows

	// Separator line.
	r.drawHLine(hudY, tcell.ColorGray)

	posText := "pos: ?"
	if pos, ok, _ := w.Positions.Get(viewer); ok {
		posText = fmt.Sprintf("pos: %d,%d", pos.X, pos.Y)
	}
	sightText := ""
	if vis, ok, _ := w.Visions.Get(viewer); ok && vis.View != nil {
		sightText = fmt.Sprintf("  seen: %d  known: %d", vis.View.VisibleCount(), vis.View.RememberedCount())
	}
	statusLine := fmt.Sprintf("turn %d  %s%s", w.Turn(), posText, sightText)
	r.drawText(0, hudY+1, statusLine, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	// Message log (last hudRows-2 messages).
	start := max(len(messages)-(hudRows-2), 0)
	for i, msg := range messages[start:] {
		r.drawText(0, hudY+2+i, msg, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
}
