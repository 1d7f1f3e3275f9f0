package render

import (
	"io"
	"strings"

	"roguecore/internal/fov"
	"roguecore/internal/gamemap"
	"roguecore/internal/grid"
)

// Dump writes gmap as view knows it, one line per row, using the ASCII
// theme. The observer is drawn at observer; unknown tiles are blank and
// trailing blanks are trimmed.
func Dump(out io.Writer, gmap *gamemap.GameMap, view *fov.View, observer grid.Point) error {
	var b strings.Builder
	for y := 0; y < gmap.Height; y++ {
		var line strings.Builder
		for x := 0; x < gmap.Width; x++ {
			p := grid.Point{X: x, Y: y}
			switch state := view.State(p); {
			case p == observer:
				line.WriteString(ASCII.Observer)
			case state == fov.Unknown:
				line.WriteByte(' ')
			default:
				line.WriteString(ASCII.Glyph(*gmap.At(p), state == fov.Visible))
			}
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(out, b.String())
	return err
}
